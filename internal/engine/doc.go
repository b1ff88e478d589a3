// Package engine coordinates a long-running UCI chess engine process over
// its line-oriented text protocol. It is structured into small files by
// concern:
//
//   - manager.go: core Manager type, constructor, handshake sequencing,
//     command gating, configuration operations, Quit/Stop, Snapshot.
//   - config.go: Config and package defaults; NewWithConfig applies defaults.
//   - process.go: subprocess spawn, pipe wiring, line readers, exit watcher.
//   - parse.go: pure per-line classification of engine output.
//   - queue.go: FIFO buffer for commands issued before the engine is ready.
//   - request.go: BestMove/Evaluate request correlation and timeouts.
//   - types.go: session state types.
//   - errors.go: error types and helpers (IsNotReady, IsSearchTimeout, ...).
//   - events.go: Event and EventPublisher; eventpub_memory.go and
//     eventpub_chan.go provide the test and streaming implementations.
//
// One Manager owns one engine process. Construct one Manager per active
// engine session; there are no package-level singletons.
package engine
