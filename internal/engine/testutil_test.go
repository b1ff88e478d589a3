package engine

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncWriter captures engine stdin writes from multiple goroutines.
type syncWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *syncWriter) Close() error { return nil }

func (w *syncWriter) lines() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := strings.TrimRight(w.buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func (w *syncWriter) count(cmd string) int {
	n := 0
	for _, l := range w.lines() {
		if l == cmd {
			n++
		}
	}
	return n
}

// newTestSession attaches a fake process so tests can feed protocol lines
// through handleLine and observe written commands, without spawning a real
// binary.
func newTestSession(t *testing.T, cfg Config) (*Manager, *engineProcess, *syncWriter) {
	t.Helper()
	m := NewWithConfig(cfg)
	w := &syncWriter{}
	p := &engineProcess{stdin: w, done: make(chan struct{})}
	m.mu.Lock()
	m.proc = p
	m.state = StateStarting
	m.mu.Unlock()
	return m, p, w
}

// completeHandshake drives uciok/readyok through the manager.
func completeHandshake(t *testing.T, m *Manager, p *engineProcess) {
	t.Helper()
	m.handleLine(p, "uciok")
	m.handleLine(p, "readyok")
	if !m.Ready() {
		t.Fatal("manager not ready after handshake")
	}
}

// waitForLine polls until the given command has been written to stdin.
func waitForLine(t *testing.T, w *syncWriter, cmd string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if w.count(cmd) > 0 {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("command %q never written; lines: %v", cmd, w.lines())
}

func countEvents(events []Event, name string) int {
	n := 0
	for _, e := range events {
		if e.Name == name {
			n++
		}
	}
	return n
}
