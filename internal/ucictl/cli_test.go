package ucictl

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ucid/pkg/types"
)

func newFakeDaemon(t *testing.T) (*httptest.Server, *map[string]int) {
	t.Helper()
	calls := map[string]int{}
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		calls["/status"]++
		json.NewEncoder(w).Encode(types.StatusResponse{State: "ready", Ready: true})
	})
	mux.HandleFunc("/bestmove", func(w http.ResponseWriter, r *http.Request) {
		calls["/bestmove"]++
		var req types.BestMoveRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.FEN)
		json.NewEncoder(w).Encode(types.BestMoveResult{Move: "e2e4"})
	})
	mux.HandleFunc("/evaluate", func(w http.ResponseWriter, r *http.Request) {
		calls["/evaluate"]++
		json.NewEncoder(w).Encode(types.EvaluateResponse{Evaluation: &types.Evaluation{Kind: types.ScoreCentipawn, Value: 20}})
	})
	mux.HandleFunc("/options/skill", func(w http.ResponseWriter, r *http.Request) {
		calls["/options/skill"]++
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/stop", func(w http.ResponseWriter, r *http.Request) {
		calls["/stop"]++
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &calls
}

func runCLI(t *testing.T, addr string, args ...string) (string, error) {
	t.Helper()
	root := buildRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--addr", addr}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestStatusCommand(t *testing.T) {
	srv, calls := newFakeDaemon(t)
	out, err := runCLI(t, srv.URL, "status")
	require.NoError(t, err)
	assert.Contains(t, out, `"state": "ready"`)
	assert.Equal(t, 1, (*calls)["/status"])
}

func TestBestMoveCommand(t *testing.T) {
	srv, calls := newFakeDaemon(t)
	out, err := runCLI(t, srv.URL, "bestmove", "8/8/8/8/8/8/8/K6k w - - 0 1", "--movetime-ms", "250")
	require.NoError(t, err)
	assert.Contains(t, out, "e2e4")
	assert.Equal(t, 1, (*calls)["/bestmove"])
}

func TestBestMoveRequiresFEN(t *testing.T) {
	srv, _ := newFakeDaemon(t)
	_, err := runCLI(t, srv.URL, "bestmove")
	require.Error(t, err)
}

func TestEvaluateCommand(t *testing.T) {
	srv, _ := newFakeDaemon(t)
	out, err := runCLI(t, srv.URL, "evaluate", "8/8/8/8/8/8/8/K6k w - - 0 1", "--depth", "8")
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "cp"`)
}

func TestSkillAndStopCommands(t *testing.T) {
	srv, calls := newFakeDaemon(t)
	_, err := runCLI(t, srv.URL, "skill", "--level", "5")
	require.NoError(t, err)
	_, err = runCLI(t, srv.URL, "stop")
	require.NoError(t, err)
	assert.Equal(t, 1, (*calls)["/options/skill"])
	assert.Equal(t, 1, (*calls)["/stop"])
}

func TestErrorEnvelopeSurfaced(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bestmove", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(types.ErrorResponse{Error: "engine not ready", Code: 503})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := runCLI(t, srv.URL, "bestmove", "8/8/8/8/8/8/8/K6k w - - 0 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine not ready")
	assert.Contains(t, err.Error(), "503")
}
