package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the daemon.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr          string `json:"addr" yaml:"addr" toml:"addr"`
	EngineBin     string `json:"engine_bin" yaml:"engine_bin" toml:"engine_bin"`
	EnginesDir    string `json:"engines_dir" yaml:"engines_dir" toml:"engines_dir"`
	DefaultEngine string `json:"default_engine" yaml:"default_engine" toml:"default_engine"`
	GraceMs       int    `json:"grace_ms" yaml:"grace_ms" toml:"grace_ms"`
	EvalTimeoutMs int    `json:"eval_timeout_ms" yaml:"eval_timeout_ms" toml:"eval_timeout_ms"`
	MultiPV       int    `json:"multipv" yaml:"multipv" toml:"multipv"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
