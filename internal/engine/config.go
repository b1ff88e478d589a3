package engine

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied when corresponding Config fields are unset.
const (
	// defaultGrace absorbs engine overhead beyond a requested best-move
	// budget before the request is declared timed out.
	defaultGrace = time.Second
	// defaultEvalTimeout caps a depth-bounded evaluation so a stalled
	// search cannot hang its caller indefinitely.
	defaultEvalTimeout = 2 * time.Minute
	// defaultQuitGrace bounds how long Quit waits for a voluntary exit
	// before escalating to SIGTERM and Kill.
	defaultQuitGrace = 2 * time.Second

	defaultSkillLevel = 20
	defaultMultiPV    = 1
)

// Config encapsulates all tunables for Manager construction.
// Zero values mean "unspecified" and are replaced by package defaults.
type Config struct {
	Grace       time.Duration
	EvalTimeout time.Duration
	QuitGrace   time.Duration
	Publisher   EventPublisher
	Logger      *zerolog.Logger
}

// NewWithConfig constructs a Manager from Config.
func NewWithConfig(cfg Config) *Manager {
	m := &Manager{
		cfg:       cfg,
		state:     StateIdle,
		publisher: noopPublisher{},
		skill:     defaultSkillLevel,
		multiPV:   defaultMultiPV,
		log:       zerolog.Nop(),
	}
	if cfg.Grace <= 0 {
		m.cfg.Grace = defaultGrace
	}
	if cfg.EvalTimeout <= 0 {
		m.cfg.EvalTimeout = defaultEvalTimeout
	}
	if cfg.QuitGrace <= 0 {
		m.cfg.QuitGrace = defaultQuitGrace
	}
	if cfg.Publisher != nil {
		m.publisher = cfg.Publisher
	}
	if cfg.Logger != nil {
		m.log = *cfg.Logger
	}
	return m
}

// New constructs a Manager with package defaults.
func New() *Manager { return NewWithConfig(Config{}) }
