package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"ucid/internal/config"
	"ucid/internal/engine"
	"ucid/internal/httpapi"
	"ucid/internal/registry"
	"ucid/pkg/types"
)

func main() {
	// Flags with environment variable defaults
	defaultAddr := ":8080"
	if v := os.Getenv("UCID_ADDR"); v != "" {
		defaultAddr = v
	}
	defaultEnginesDir := "~/engines"
	if v := os.Getenv("UCID_ENGINES_DIR"); v != "" {
		defaultEnginesDir = v
	}
	addr := flag.String("addr", defaultAddr, "HTTP listen address, e.g. :8080")
	engineBin := flag.String("engine", os.Getenv("UCID_ENGINE"), "Path to a UCI engine binary (overrides registry lookup)")
	enginesDir := flag.String("engines-dir", defaultEnginesDir, "Directory to scan for engine binaries")
	engineID := flag.String("engine-id", "", "Engine id to pick from the registry (filename)")
	configPath := flag.String("config", os.Getenv("UCID_CONFIG"), "Optional config file (.yaml/.json/.toml)")
	graceMs := flag.Int("grace-ms", 0, "Extra grace beyond a best-move budget before timing out (ms)")
	evalTimeoutMs := flag.Int("eval-timeout-ms", 0, "Ceiling for depth-bounded evaluations (ms)")
	skill := flag.Int("skill", -1, "Initial Skill Level 0..20 (-1 leaves the engine default)")
	multiPV := flag.Int("multipv", 0, "Initial MultiPV (0 leaves the engine default)")
	corsOrigins := flag.String("cors-origins", os.Getenv("UCID_CORS_ORIGINS"), "Comma-separated allowed CORS origins (empty disables CORS)")
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Str("svc", "ucid").Logger()

	// Config file fills in anything the flags left at their zero values.
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("load config")
		}
		if *addr == defaultAddr && cfg.Addr != "" {
			*addr = cfg.Addr
		}
		if *engineBin == "" && cfg.EngineBin != "" {
			*engineBin = cfg.EngineBin
		}
		if *enginesDir == defaultEnginesDir && cfg.EnginesDir != "" {
			*enginesDir = cfg.EnginesDir
		}
		if *engineID == "" && cfg.DefaultEngine != "" {
			*engineID = cfg.DefaultEngine
		}
		if *graceMs == 0 && cfg.GraceMs > 0 {
			*graceMs = cfg.GraceMs
		}
		if *evalTimeoutMs == 0 && cfg.EvalTimeoutMs > 0 {
			*evalTimeoutMs = cfg.EvalTimeoutMs
		}
		if *multiPV == 0 && cfg.MultiPV > 0 {
			*multiPV = cfg.MultiPV
		}
	}

	// Resolve the engine binary: explicit path wins, else registry scan.
	binPath := *engineBin
	if binPath == "" {
		engines, err := registry.LoadDir(*enginesDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", *enginesDir).Msg("scan engines dir")
		}
		eng, err := registry.Resolve(engines, *engineID)
		if err != nil {
			log.Fatal().Err(err).Msg("resolve engine")
		}
		binPath = eng.Path
		httpapi.SetEngines(engines)
	} else {
		id := filepath.Base(binPath)
		httpapi.SetEngines([]types.Engine{{ID: id, Name: id, Path: binPath}})
	}

	pub := engine.NewChanPublisher()
	mgr := engine.NewWithConfig(engine.Config{
		Grace:       time.Duration(*graceMs) * time.Millisecond,
		EvalTimeout: time.Duration(*evalTimeoutMs) * time.Millisecond,
		Publisher:   pub,
		Logger:      &log,
	})

	httpapi.SetLogger(log)
	httpapi.SetEventSource(pub)
	if origins := splitCSV(*corsOrigins); len(origins) > 0 {
		httpapi.SetCORSOptions(true, origins, nil, nil)
	}
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	if err := mgr.Initialize(binPath); err != nil {
		log.Fatal().Err(err).Str("engine", binPath).Msg("start engine")
	}
	// Options set before readyok are queued and flushed after the handshake.
	if *skill >= 0 {
		mgr.SetSkillLevel(*skill)
	}
	if *multiPV > 0 {
		mgr.SetMultiPV(*multiPV)
	}

	srv := &http.Server{Addr: *addr, Handler: httpapi.NewMux(mgr)}

	go func() {
		log.Info().Str("addr", *addr).Str("engine", binPath).Msg("ucid listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
	mgr.Quit()
}

// splitCSV splits a comma separated list, trimming blanks.
func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
