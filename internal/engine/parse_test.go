package engine

import (
	"testing"

	"ucid/pkg/types"
)

func TestParseLine_Classification(t *testing.T) {
	cases := []struct {
		line string
		kind lineKind
	}{
		{"uciok", lineUCIOK},
		{"readyok", lineReadyOK},
		{"bestmove e2e4", lineBestMove},
		{"bestmove e2e4 ponder e7e5", lineBestMove},
		{"info depth 3 score cp 10", lineInfo},
		{"id name Stockfish 16", lineUnknown},
		{"option name Hash type spin default 16", lineUnknown},
		{"", lineUnknown},
		{"   ", lineUnknown},
		{"bestmove", lineUnknown},
	}
	for _, tc := range cases {
		if got := parseLine(tc.line).kind; got != tc.kind {
			t.Errorf("parseLine(%q).kind = %v, want %v", tc.line, got, tc.kind)
		}
	}
}

func TestParseLine_BestMoveToken(t *testing.T) {
	pl := parseLine("bestmove e2e4 ponder e7e5")
	if pl.move != "e2e4" {
		t.Fatalf("move = %q, want e2e4", pl.move)
	}
	if pl := parseLine("bestmove (none)"); pl.move != "(none)" {
		t.Fatalf("move = %q, want (none)", pl.move)
	}
}

func TestParseInfo_AllFields(t *testing.T) {
	pl := parseLine("info depth 12 score cp 34 nodes 1000 time 50")
	inf := pl.info
	if !inf.hasScore || inf.scoreKind != types.ScoreCentipawn || inf.score != 34 {
		t.Fatalf("score = %+v, want cp 34", inf)
	}
	if inf.depth != 12 || inf.nodes != 1000 || inf.timeMs != 50 {
		t.Fatalf("fields = %+v, want depth 12 nodes 1000 time 50", inf)
	}
}

func TestParseInfo_MateScore(t *testing.T) {
	inf := parseLine("info score mate -3").info
	if !inf.hasScore || inf.scoreKind != types.ScoreMate || inf.score != -3 {
		t.Fatalf("score = %+v, want mate -3", inf)
	}
	if inf.depth != -1 || inf.nodes != -1 || inf.timeMs != -1 {
		t.Fatalf("expected absent depth/nodes/time, got %+v", inf)
	}
}

func TestParseInfo_NoScore(t *testing.T) {
	inf := parseLine("info depth 5 nodes 200").info
	if inf.hasScore {
		t.Fatalf("expected no score, got %+v", inf)
	}
	if inf.depth != 5 || inf.nodes != 200 {
		t.Fatalf("fields = %+v, want depth 5 nodes 200", inf)
	}
	if inf.evaluation() != nil {
		t.Fatal("evaluation() should be nil without a score")
	}
}

func TestParseInfo_FieldOrderIrrelevant(t *testing.T) {
	inf := parseLine("info nodes 7 score cp -15 depth 2").info
	if !inf.hasScore || inf.score != -15 || inf.depth != 2 || inf.nodes != 7 {
		t.Fatalf("fields = %+v", inf)
	}
}

func TestParseInfo_MalformedValuesIgnored(t *testing.T) {
	inf := parseLine("info depth x score cp notanint nodes -5").info
	if inf.hasScore {
		t.Fatalf("malformed score must stay absent: %+v", inf)
	}
	if inf.depth != -1 || inf.nodes != -1 {
		t.Fatalf("malformed numerics must stay absent: %+v", inf)
	}
}

func TestInfoEvaluation_CarriesOptionalFields(t *testing.T) {
	ev := parseLine("info depth 12 score cp 34 nodes 1000 time 50").info.evaluation()
	if ev == nil {
		t.Fatal("expected evaluation")
	}
	want := types.Evaluation{Kind: types.ScoreCentipawn, Value: 34, Depth: 12, Nodes: 1000, TimeMs: 50}
	if *ev != want {
		t.Fatalf("evaluation = %+v, want %+v", *ev, want)
	}
}
