package engine

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"ucid/pkg/types"
)

// Manager owns one engine session: the process, the handshake state, the
// pre-ready command queue, the current evaluation and the pending request
// table. All mutable state is guarded by mu; the stdout reader, the exit
// watcher and request timers are the only event sources.
type Manager struct {
	cfg       Config
	log       zerolog.Logger
	publisher EventPublisher

	mu       sync.Mutex
	proc     *engineProcess
	state    State
	ready    bool
	uciAcked bool
	queue    commandQueue
	eval     *types.Evaluation // latest evaluation of the current search
	pendMove *movePending
	pendEval *evalPending
	skill    int
	multiPV  int
	binPath  string
	started  time.Time
	lastErr  string
}

// SetEventPublisher installs an EventPublisher for session events.
func (m *Manager) SetEventPublisher(p EventPublisher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p == nil {
		m.publisher = noopPublisher{}
		return
	}
	m.publisher = p
}

func (m *Manager) publish(e Event) {
	m.mu.Lock()
	pub := m.publisher
	m.mu.Unlock()
	pub.Publish(e)
}

// Initialize verifies the engine binary, tears down any prior process, and
// spawns a fresh one with the first handshake command already sent. The
// failure is also published as an "error" event so event-only subscribers
// observe it.
func (m *Manager) Initialize(path string) error {
	if fi, err := os.Stat(path); err != nil || fi.IsDir() {
		nfErr := ErrEngineNotFound(path)
		m.log.Error().Str("path", path).Msg("engine: binary not found")
		m.publish(Event{Name: "error", Fields: map[string]any{"error": nfErr.Error()}})
		return nfErr
	}

	m.mu.Lock()
	running := m.proc != nil
	m.mu.Unlock()
	if running {
		// A prior session must be fully torn down before respawning.
		m.Quit()
	}

	p, err := spawnEngine(path, m.handleLine, m.handleStderr, m.handleExit)
	if err != nil {
		perr := ErrProcess("spawn engine: " + err.Error())
		m.log.Error().Err(err).Str("path", path).Msg("engine: spawn failed")
		m.publish(Event{Name: "error", Fields: map[string]any{"error": perr.Error()}})
		return perr
	}

	m.mu.Lock()
	m.proc = p
	m.state = StateStarting
	m.ready = false
	m.uciAcked = false
	m.queue = commandQueue{}
	m.eval = nil
	m.binPath = path
	m.started = time.Now()
	m.lastErr = ""
	m.mu.Unlock()

	m.log.Info().Str("path", path).Int("pid", p.pid).Msg("engine: spawned")
	m.publish(Event{Name: "spawn", Fields: map[string]any{"path": path, "pid": p.pid}})

	m.send("uci") // handshake step 1
	return nil
}

// send writes one newline-terminated protocol command. With no process it
// drops the command (diagnostic only). While the handshake is incomplete,
// every command except the two handshake commands is redirected to the
// queue and flushed on the first readyok.
func (m *Manager) send(cmd string) {
	m.mu.Lock()
	p := m.proc
	if p == nil {
		m.mu.Unlock()
		m.log.Debug().Str("cmd", cmd).Msg("engine: dropped command, no process")
		return
	}
	if !m.ready && cmd != "uci" && cmd != "isready" {
		m.queue.enqueue(cmd)
		n := m.queue.len()
		m.mu.Unlock()
		m.log.Debug().Str("cmd", cmd).Int("queued", n).Msg("engine: queued until ready")
		return
	}
	m.mu.Unlock()
	if err := p.writeLine(cmd); err != nil {
		m.log.Warn().Err(err).Str("cmd", cmd).Msg("engine: write failed")
	}
}

// handleLine dispatches one complete stdout line. Lines from a process that
// has since been torn down are ignored.
func (m *Manager) handleLine(p *engineProcess, line string) {
	m.mu.Lock()
	if m.proc != p {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	pl := parseLine(line)
	switch pl.kind {
	case lineUCIOK:
		m.onUCIOK()
	case lineReadyOK:
		m.onReadyOK()
	case lineBestMove:
		m.onBestMove(pl.move)
	case lineInfo:
		m.onInfo(pl.info)
	default:
		m.log.Debug().Str("line", line).Msg("engine: unrecognized output")
	}
}

// handleStderr logs diagnostic output; it never affects control flow.
func (m *Manager) handleStderr(_ *engineProcess, line string) {
	m.log.Debug().Str("stderr", line).Msg("engine: stderr")
}

// onUCIOK advances the handshake: identify acknowledged, query readiness.
func (m *Manager) onUCIOK() {
	m.mu.Lock()
	if m.uciAcked {
		m.mu.Unlock()
		return
	}
	m.uciAcked = true
	m.mu.Unlock()
	m.send("isready") // handshake step 2
}

// onReadyOK completes the handshake exactly once per process lifetime.
// Later readyok lines, which occur after every setoption/isready cycle,
// must not re-emit the ready event or re-flush the queue.
func (m *Manager) onReadyOK() {
	m.mu.Lock()
	if m.ready {
		m.mu.Unlock()
		return
	}
	m.ready = true
	m.state = StateReady
	cmds := m.queue.drain()
	m.mu.Unlock()

	m.log.Info().Int("flushed", len(cmds)).Msg("engine: ready")
	m.publish(Event{Name: "ready", Fields: map[string]any{}})
	for _, c := range cmds {
		m.send(c) // FIFO, original arrival order
	}
}

// onBestMove terminates the current search cycle regardless of parser
// state: it resolves whichever request is pending and always publishes a
// move_result event carrying the last recorded evaluation (possibly nil).
func (m *Manager) onBestMove(move string) {
	m.mu.Lock()
	eval := m.eval
	pm := m.pendMove
	pe := m.pendEval
	m.pendMove = nil
	m.pendEval = nil
	m.mu.Unlock()

	fields := map[string]any{"move": move}
	if eval != nil {
		fields["evaluation"] = eval
	}
	if pm != nil {
		fields["request_id"] = pm.id
		pm.ch <- moveOutcome{res: types.BestMoveResult{Move: move, Evaluation: eval}}
	}
	if pe != nil {
		fields["request_id"] = pe.id
		pe.ch <- evalOutcome{eval: pe.last}
	}
	m.publish(Event{Name: "move_result", Fields: fields})
}

// onInfo folds one info line into the evaluation slot. The slot is updated
// whenever the line carries a score; an eval_update event fires only when a
// score and at least one of depth/nodes arrive together.
func (m *Manager) onInfo(inf infoFields) {
	ev := inf.evaluation()
	if ev == nil {
		return
	}
	m.mu.Lock()
	m.eval = ev
	if pe := m.pendEval; pe != nil && inf.depth >= 0 && inf.depth >= pe.target {
		// Last qualifying update wins; shallower earlier ones are discarded.
		pe.last = ev
	}
	m.mu.Unlock()

	if inf.depth >= 0 || inf.nodes >= 0 {
		m.publish(Event{Name: "eval_update", Fields: map[string]any{"evaluation": ev}})
	}
}

// handleExit reacts to process termination: readiness drops, pending
// requests fail with a process error, and a process_closed event is
// emitted. The manager never restarts the engine on its own.
func (m *Manager) handleExit(p *engineProcess, werr error) {
	m.mu.Lock()
	if m.proc != p {
		// Deliberate teardown already reset the session.
		m.mu.Unlock()
		return
	}
	m.proc = nil
	m.ready = false
	m.uciAcked = false
	m.state = StateClosed
	pm := m.pendMove
	pe := m.pendEval
	m.pendMove = nil
	m.pendEval = nil
	if werr != nil {
		m.lastErr = werr.Error()
	}
	m.mu.Unlock()

	code := p.exitCode()
	perr := ErrProcess(fmt.Sprintf("engine process exited (code %d)", code))
	if pm != nil {
		pm.ch <- moveOutcome{err: perr}
	}
	if pe != nil {
		pe.ch <- evalOutcome{err: perr}
	}
	if werr != nil {
		m.log.Warn().Err(werr).Int("code", code).Msg("engine: process exited")
		m.publish(Event{Name: "error", Fields: map[string]any{"error": perr.Error()}})
	} else {
		m.log.Info().Int("code", code).Msg("engine: process closed")
	}
	m.publish(Event{Name: "process_closed", Fields: map[string]any{"code": code}})
}

// SetSkillLevel clamps level to the UCI 0..20 range and reconfigures the
// engine. The trailing isready keeps the protocol in lockstep; its readyok
// reply is inert after the first handshake.
func (m *Manager) SetSkillLevel(level int) {
	if level < 0 {
		level = 0
	}
	if level > 20 {
		level = 20
	}
	m.mu.Lock()
	m.skill = level
	m.mu.Unlock()
	m.send(fmt.Sprintf("setoption name Skill Level value %d", level))
	m.send("isready")
}

// SetMultiPV clamps n to >= 1 and reconfigures the engine.
func (m *Manager) SetMultiPV(n int) {
	if n < 1 {
		n = 1
	}
	m.mu.Lock()
	m.multiPV = n
	m.mu.Unlock()
	m.send(fmt.Sprintf("setoption name MultiPV value %d", n))
	m.send("isready")
}

// Stop aborts the current search without tearing down the session. The
// engine answers with a bestmove line that concludes the cycle.
func (m *Manager) Stop() {
	m.send("stop")
}

// Quit ends the session: pending requests fail, the quit command is sent
// and the process handle is released (force-killed after QuitGrace).
func (m *Manager) Quit() {
	m.mu.Lock()
	p := m.proc
	m.proc = nil
	m.ready = false
	m.uciAcked = false
	m.state = StateIdle
	pm := m.pendMove
	pe := m.pendEval
	m.pendMove = nil
	m.pendEval = nil
	m.mu.Unlock()
	if p == nil {
		return
	}
	perr := ErrProcess("engine session closed")
	if pm != nil {
		pm.ch <- moveOutcome{err: perr}
	}
	if pe != nil {
		pe.ch <- evalOutcome{err: perr}
	}
	if err := p.writeLine("quit"); err != nil {
		m.log.Debug().Err(err).Msg("engine: quit write failed")
	}
	p.terminate(m.cfg.QuitGrace)
	m.log.Info().Int("pid", p.pid).Msg("engine: session closed")
}

// Ready reports whether the handshake has completed for the live process.
func (m *Manager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}

// Snapshot returns a read-only projection of the session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Snapshot{
		State:          m.state,
		Ready:          m.ready,
		EnginePath:     m.binPath,
		SkillLevel:     m.skill,
		MultiPV:        m.multiPV,
		QueueLen:       m.queue.len(),
		SearchInFlight: m.pendMove != nil || m.pendEval != nil,
		LastError:      m.lastErr,
		StartedAt:      m.started,
	}
	if m.proc != nil {
		s.PID = m.proc.pid
	}
	return s
}
