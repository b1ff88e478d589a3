package engine

import (
	"strconv"
	"strings"

	"ucid/pkg/types"
)

// lineKind classifies one engine output line.
type lineKind int

const (
	lineUnknown lineKind = iota
	lineUCIOK
	lineReadyOK
	lineBestMove
	lineInfo
)

// infoFields carries the optional fields of an info line. Numeric fields
// are -1 when absent; score presence is explicit because 0 is a valid score.
type infoFields struct {
	hasScore  bool
	scoreKind types.ScoreKind
	score     int
	depth     int
	nodes     int64
	timeMs    int64
}

// parsedLine is the structured form of one engine output line.
type parsedLine struct {
	kind lineKind
	move string // bestmove lines only
	info infoFields
}

// parseLine classifies one engine output line. Classification is purely
// content-based, never positional; unrecognized lines map to lineUnknown.
func parseLine(line string) parsedLine {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return parsedLine{kind: lineUnknown}
	}
	switch fields[0] {
	case "uciok":
		return parsedLine{kind: lineUCIOK}
	case "readyok":
		return parsedLine{kind: lineReadyOK}
	case "bestmove":
		// "bestmove <move> [ponder <move>]"; the move is the first token
		// after the marker. "(none)" passes through as-is.
		if len(fields) < 2 {
			return parsedLine{kind: lineUnknown}
		}
		return parsedLine{kind: lineBestMove, move: fields[1]}
	case "info":
		return parsedLine{kind: lineInfo, info: parseInfo(fields[1:])}
	}
	return parsedLine{kind: lineUnknown}
}

// parseInfo extracts the optional score/depth/nodes/time fields from an
// info line. Fields are located by token search; every field is optional
// and malformed values leave the field absent. "score cp" and "score mate"
// are mutually exclusive per line.
func parseInfo(fields []string) infoFields {
	inf := infoFields{depth: -1, nodes: -1, timeMs: -1}
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "score":
			if i+2 >= len(fields) {
				continue
			}
			kind := fields[i+1]
			v, err := strconv.Atoi(fields[i+2])
			if err != nil {
				continue
			}
			switch kind {
			case "cp":
				inf.hasScore = true
				inf.scoreKind = types.ScoreCentipawn
				inf.score = v
				i += 2
			case "mate":
				inf.hasScore = true
				inf.scoreKind = types.ScoreMate
				inf.score = v
				i += 2
			}
		case "depth":
			if i+1 < len(fields) {
				if v, err := strconv.Atoi(fields[i+1]); err == nil && v >= 0 {
					inf.depth = v
					i++
				}
			}
		case "nodes":
			if i+1 < len(fields) {
				if v, err := strconv.ParseInt(fields[i+1], 10, 64); err == nil && v >= 0 {
					inf.nodes = v
					i++
				}
			}
		case "time":
			if i+1 < len(fields) {
				if v, err := strconv.ParseInt(fields[i+1], 10, 64); err == nil && v >= 0 {
					inf.timeMs = v
					i++
				}
			}
		}
	}
	return inf
}

// evaluation builds the public Evaluation carried by a scored info line.
// Returns nil when the line carries no score.
func (inf infoFields) evaluation() *types.Evaluation {
	if !inf.hasScore {
		return nil
	}
	ev := &types.Evaluation{Kind: inf.scoreKind, Value: inf.score}
	if inf.depth >= 0 {
		ev.Depth = inf.depth
	}
	if inf.nodes >= 0 {
		ev.Nodes = inf.nodes
	}
	if inf.timeMs >= 0 {
		ev.TimeMs = inf.timeMs
	}
	return ev
}
