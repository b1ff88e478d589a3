package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ucid/pkg/types"
)

// moveOutcome delivers the single terminal result of a best-move request.
type moveOutcome struct {
	res types.BestMoveResult
	err error
}

// evalOutcome delivers the single terminal result of an evaluate request.
type evalOutcome struct {
	eval *types.Evaluation
	err  error
}

// movePending is an in-flight best-move request. ch is buffered so the
// stdout reader never blocks on delivery.
type movePending struct {
	id string
	ch chan moveOutcome
}

// evalPending is an in-flight evaluate request. last retains the most
// recent evaluation whose reported depth reached the target.
type evalPending struct {
	id     string
	target int
	last   *types.Evaluation
	ch     chan evalOutcome
}

// admit registers a pending request. The two request kinds are serialized:
// one in-flight search per session, a second request of either kind fails
// fast with a busy error.
func (m *Manager) admit(kind string, pm *movePending, pe *evalPending) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ready {
		return ErrNotReady()
	}
	if m.pendMove != nil || m.pendEval != nil {
		return ErrSearchBusy(kind)
	}
	m.eval = nil // fresh search, fresh evaluation slot
	m.pendMove = pm
	m.pendEval = pe
	return nil
}

// abandon unregisters a pending request so a late bestmove line cannot
// resolve it. No-op when the request already resolved.
func (m *Manager) abandon(pm *movePending, pe *evalPending) {
	m.mu.Lock()
	if pm != nil && m.pendMove == pm {
		m.pendMove = nil
	}
	if pe != nil && m.pendEval == pe {
		m.pendEval = nil
	}
	m.mu.Unlock()
}

// BestMove runs a time-bounded search on the given FEN position and waits
// for the terminal bestmove line. Fails immediately with a not-ready error
// before the handshake completes, issuing no commands. A cancellation
// timer is armed at budget plus the configured grace; on expiry the abort
// command is sent exactly once and the request fails with a timeout.
func (m *Manager) BestMove(ctx context.Context, fen string, budget time.Duration) (types.BestMoveResult, error) {
	if budget <= 0 {
		budget = time.Second
	}
	p := &movePending{id: uuid.NewString(), ch: make(chan moveOutcome, 1)}
	if err := m.admit("bestmove", p, nil); err != nil {
		return types.BestMoveResult{}, err
	}
	m.log.Debug().Str("request_id", p.id).Dur("budget", budget).Msg("engine: bestmove start")
	m.send("position fen " + fen)
	m.send(fmt.Sprintf("go movetime %d", budget.Milliseconds()))

	timer := time.NewTimer(budget + m.cfg.Grace)
	defer timer.Stop()
	select {
	case out := <-p.ch:
		return out.res, out.err
	case <-timer.C:
		m.abandon(p, nil)
		m.send("stop") // force the engine to conclude the search
		m.log.Warn().Str("request_id", p.id).Msg("engine: bestmove timed out")
		return types.BestMoveResult{}, ErrSearchTimeout("bestmove")
	case <-ctx.Done():
		m.abandon(p, nil)
		m.send("stop")
		return types.BestMoveResult{}, ctx.Err()
	}
}

// Evaluate runs a depth-bounded search on the given FEN position and
// resolves with the last evaluation that reached targetDepth, or nil when
// the engine concluded before reaching it (a valid outcome). A configured
// ceiling bounds the wait so a stalled search cannot hang the caller.
func (m *Manager) Evaluate(ctx context.Context, fen string, targetDepth int) (*types.Evaluation, error) {
	if targetDepth < 1 {
		targetDepth = 1
	}
	p := &evalPending{id: uuid.NewString(), target: targetDepth, ch: make(chan evalOutcome, 1)}
	if err := m.admit("evaluate", nil, p); err != nil {
		return nil, err
	}
	m.log.Debug().Str("request_id", p.id).Int("depth", targetDepth).Msg("engine: evaluate start")
	m.send("position fen " + fen)
	m.send(fmt.Sprintf("go depth %d", targetDepth))

	timer := time.NewTimer(m.cfg.EvalTimeout)
	defer timer.Stop()
	select {
	case out := <-p.ch:
		return out.eval, out.err
	case <-timer.C:
		m.abandon(nil, p)
		m.send("stop")
		m.log.Warn().Str("request_id", p.id).Msg("engine: evaluate timed out")
		return nil, ErrSearchTimeout("evaluate")
	case <-ctx.Done():
		m.abandon(nil, p)
		m.send("stop")
		return nil, ctx.Err()
	}
}
