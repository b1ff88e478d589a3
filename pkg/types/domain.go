package types

// Engine represents a discoverable UCI engine binary on disk.
type Engine struct {
	// Stable identifier for the engine (the binary filename).
	// example: stockfish
	ID string `json:"id" example:"stockfish"`
	// Human-friendly name.
	// example: stockfish
	Name string `json:"name" example:"stockfish"`
	// Absolute path to the engine binary on disk.
	// example: /usr/games/stockfish
	Path string `json:"path" example:"/usr/games/stockfish"`
}

// ScoreKind discriminates how an evaluation value is expressed.
type ScoreKind string

const (
	// ScoreCentipawn means Value is hundredths of a pawn from the side to move.
	ScoreCentipawn ScoreKind = "cp"
	// ScoreMate means Value is the number of moves until mate (signed).
	ScoreMate ScoreKind = "mate"
)

// Evaluation is the engine's current numeric assessment of a position.
// Depth, Nodes and TimeMs are optional; zero means the engine did not
// report the field.
type Evaluation struct {
	// example: cp
	Kind ScoreKind `json:"kind" example:"cp"`
	// example: 34
	Value int `json:"value" example:"34"`
	// example: 12
	Depth int `json:"depth,omitempty" example:"12"`
	// example: 1000
	Nodes int64 `json:"nodes,omitempty" example:"1000"`
	// example: 50
	TimeMs int64 `json:"time_ms,omitempty" example:"50"`
}

// BestMoveResult is the terminal outcome of a time-bounded search.
type BestMoveResult struct {
	// Best move in UCI coordinate notation.
	// example: e2e4
	Move string `json:"move" example:"e2e4"`
	// Last evaluation recorded during the search; null when the engine
	// produced no scored info line before concluding.
	Evaluation *Evaluation `json:"evaluation,omitempty"`
}
