package types

// BestMoveRequest asks for a time-bounded search on a position.
type BestMoveRequest struct {
	// Position to analyze, in FEN.
	// example: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1
	FEN string `json:"fen" example:"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"`
	// Search time budget in milliseconds.
	// example: 1000
	MovetimeMs int `json:"movetime_ms" example:"1000"`
}

// EvaluateRequest asks for an evaluation to a target depth.
type EvaluateRequest struct {
	// Position to analyze, in FEN.
	// example: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1
	FEN string `json:"fen" example:"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"`
	// Target search depth in plies.
	// example: 12
	Depth int `json:"depth" example:"12"`
}

// EvaluateResponse wraps the evaluation returned by POST /evaluate.
// Evaluation is null when the engine concluded its search before reaching
// the requested depth; that is a valid outcome, not an error.
type EvaluateResponse struct {
	Evaluation *Evaluation `json:"evaluation"`
}

// SkillRequest sets the engine strength.
type SkillRequest struct {
	// Skill level, clamped to the UCI 0..20 range.
	// example: 15
	Level int `json:"level" example:"15"`
}

// MultiPVRequest sets the number of principal variations reported.
type MultiPVRequest struct {
	// Number of lines, clamped to >= 1.
	// example: 3
	Value int `json:"value" example:"3"`
}

// EnginesResponse wraps the list of engines returned by GET /engines.
type EnginesResponse struct {
	// List of discovered engine binaries.
	Engines []Engine `json:"engines"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall session state (idle, starting, ready, closed).
	// example: ready
	State string `json:"state" example:"ready"`
	// True once the engine handshake has completed.
	// example: true
	Ready bool `json:"ready" example:"true"`
	// Path of the running engine binary.
	// example: /usr/games/stockfish
	EnginePath string `json:"engine_path,omitempty" example:"/usr/games/stockfish"`
	// Process ID of the engine (when running).
	// example: 12345
	PID int `json:"pid,omitempty" example:"12345"`
	// Currently configured skill level.
	// example: 20
	SkillLevel int `json:"skill_level" example:"20"`
	// Currently configured MultiPV value.
	// example: 1
	MultiPV int `json:"multipv" example:"1"`
	// Number of commands buffered while waiting for readiness.
	// example: 0
	QueueLen int `json:"queue_len" example:"0"`
	// True while a search request is outstanding.
	// example: false
	SearchInFlight bool `json:"search_in_flight" example:"false"`
	// Last error observed by the manager (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the engine session in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
