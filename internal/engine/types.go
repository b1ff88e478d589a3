package engine

import "time"

// State represents the lifecycle state of the engine session.
type State string

const (
	StateIdle     State = "idle"     // no process
	StateStarting State = "starting" // spawned, handshake in progress
	StateReady    State = "ready"    // handshake complete
	StateClosed   State = "closed"   // process exited; no auto-restart
)

// Snapshot is a read-only projection of the manager state.
type Snapshot struct {
	State          State
	Ready          bool
	EnginePath     string
	PID            int
	SkillLevel     int
	MultiPV        int
	QueueLen       int
	SearchInFlight bool
	LastError      string
	StartedAt      time.Time
}
