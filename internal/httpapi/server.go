package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ucid/internal/engine"
	"ucid/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	BestMove(ctx context.Context, fen string, budget time.Duration) (types.BestMoveResult, error)
	Evaluate(ctx context.Context, fen string, targetDepth int) (*types.Evaluation, error)
	SetSkillLevel(level int)
	SetMultiPV(n int)
	Stop()
	Ready() bool
	Snapshot() engine.Snapshot
}

// EventSource hands out live event feeds for /events consumers.
type EventSource interface {
	Subscribe() (<-chan engine.Event, func())
}

// eventSource backs GET /events; nil disables the endpoint.
var eventSource EventSource

// SetEventSource installs the event feed used by GET /events.
func SetEventSource(src EventSource) { eventSource = src }

// engineList backs GET /engines with the registry discovered at startup.
var engineList []types.Engine

// SetEngines installs the engine registry served by GET /engines.
func SetEngines(engines []types.Engine) { engineList = engines }

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	r.Use(MetricsMiddleware)

	r.Post("/bestmove", handleBestMove(svc))
	r.Post("/evaluate", handleEvaluate(svc))

	r.Post("/options/skill", func(w http.ResponseWriter, r *http.Request) {
		var req types.SkillRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		svc.SetSkillLevel(req.Level)
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/options/multipv", func(w http.ResponseWriter, r *http.Request) {
		var req types.MultiPVRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		svc.SetMultiPV(req.Value)
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/stop", func(w http.ResponseWriter, r *http.Request) {
		svc.Stop()
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/engines", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.EnginesResponse{Engines: engineList}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(statusFromSnapshot(svc.Snapshot())); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Get("/events", handleEvents)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("starting"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// handleBestMove godoc
// @Summary  Time-bounded best-move search
// @Accept   json
// @Produce  json
// @Param    request body types.BestMoveRequest true "position and budget"
// @Success  200 {object} types.BestMoveResult
// @Failure  429 {object} types.ErrorResponse "search already in flight"
// @Failure  503 {object} types.ErrorResponse "engine not ready"
// @Failure  504 {object} types.ErrorResponse "search timed out"
// @Router   /bestmove [post]
func handleBestMove(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.BestMoveRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.FEN) == "" {
			writeJSONError(w, http.StatusBadRequest, "fen is required")
			return
		}
		if req.MovetimeMs <= 0 {
			writeJSONError(w, http.StatusBadRequest, "movetime_ms must be positive")
			return
		}
		// Join server base context with request context so shutdown cancels
		// in-flight searches too.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()

		start := time.Now()
		res, err := svc.BestMove(ctx, req.FEN, time.Duration(req.MovetimeMs)*time.Millisecond)
		logSearch(r, "bestmove", start, err)
		if err != nil {
			observeSearch("bestmove", outcomeLabel(err), time.Since(start))
			writeEngineError(w, r, err)
			return
		}
		observeSearch("bestmove", "ok", time.Since(start))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}
}

// handleEvaluate godoc
// @Summary  Depth-bounded position evaluation
// @Accept   json
// @Produce  json
// @Param    request body types.EvaluateRequest true "position and target depth"
// @Success  200 {object} types.EvaluateResponse
// @Failure  429 {object} types.ErrorResponse "search already in flight"
// @Failure  503 {object} types.ErrorResponse "engine not ready"
// @Router   /evaluate [post]
func handleEvaluate(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.EvaluateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.FEN) == "" {
			writeJSONError(w, http.StatusBadRequest, "fen is required")
			return
		}
		if req.Depth <= 0 {
			writeJSONError(w, http.StatusBadRequest, "depth must be positive")
			return
		}
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()

		start := time.Now()
		ev, err := svc.Evaluate(ctx, req.FEN, req.Depth)
		logSearch(r, "evaluate", start, err)
		if err != nil {
			observeSearch("evaluate", outcomeLabel(err), time.Since(start))
			writeEngineError(w, r, err)
			return
		}
		observeSearch("evaluate", "ok", time.Since(start))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.EvaluateResponse{Evaluation: ev})
	}
}

// handleEvents streams session events as NDJSON until the client leaves.
func handleEvents(w http.ResponseWriter, r *http.Request) {
	if eventSource == nil {
		writeJSONError(w, http.StatusNotFound, "event streaming not enabled")
		return
	}
	flusher, _ := w.(http.Flusher)
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	if flusher != nil {
		flusher.Flush()
	}

	events, cancel := eventSource.Subscribe()
	defer cancel()
	ctx, cancelJoin := joinContexts(serverBaseCtx, r.Context())
	defer cancelJoin()
	enc := json.NewEncoder(w)
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return
			}
			payload := map[string]any{"event": e.Name}
			for k, v := range e.Fields {
				payload[k] = v
			}
			if err := enc.Encode(payload); err != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		case <-ctx.Done():
			return
		}
	}
}

// decodeJSON enforces content type and body size, then decodes into dst.
// Writes the error response itself and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		// Oversized bodies also land here; return 400 without size details.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeEngineError maps well-known engine errors to HTTP status codes.
func writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	// Client disconnect or shutdown: nothing useful to write.
	if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
		return
	}
	switch {
	case engine.IsNotReady(err):
		writeJSONError(w, http.StatusServiceUnavailable, err.Error())
	case engine.IsSearchBusy(err):
		IncrementBackpressure("search_inflight")
		writeJSONError(w, http.StatusTooManyRequests, err.Error())
	case engine.IsSearchTimeout(err):
		writeJSONError(w, http.StatusGatewayTimeout, err.Error())
	case engine.IsEngineNotFound(err):
		writeJSONError(w, http.StatusNotFound, err.Error())
	default:
		if he, ok := err.(HTTPError); ok {
			writeJSONError(w, he.StatusCode(), he.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case engine.IsNotReady(err):
		return "not_ready"
	case engine.IsSearchBusy(err):
		return "busy"
	case engine.IsSearchTimeout(err):
		return "timeout"
	default:
		return "error"
	}
}

// logSearch emits one structured line per search request when enabled.
func logSearch(r *http.Request, kind string, start time.Time, err error) {
	if zlog == nil || defaultLogLevel < LevelInfo {
		return
	}
	z := zlog.Info().Str("kind", kind).Dur("dur", time.Since(start))
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		z = z.Str("request_id", rid)
	}
	if err != nil {
		z = z.Str("outcome", outcomeLabel(err))
	}
	z.Msg("search request")
}

func statusFromSnapshot(s engine.Snapshot) types.StatusResponse {
	resp := types.StatusResponse{
		State:          string(s.State),
		Ready:          s.Ready,
		EnginePath:     s.EnginePath,
		PID:            s.PID,
		SkillLevel:     s.SkillLevel,
		MultiPV:        s.MultiPV,
		QueueLen:       s.QueueLen,
		SearchInFlight: s.SearchInFlight,
		LastError:      s.LastError,
		ServerTimeUnix: time.Now().Unix(),
	}
	if !s.StartedAt.IsZero() {
		resp.UptimeSeconds = int64(time.Since(s.StartedAt).Seconds())
	}
	return resp
}
