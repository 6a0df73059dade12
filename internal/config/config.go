package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/agentic-research/slidescope/internal/introspect"
	"github.com/agentic-research/slidescope/internal/render"
	"github.com/agentic-research/slidescope/internal/tree"
)

// Environment variables read by Load.
const (
	EnvMaxDepth  = "SLIDESCOPE_MAX_DEPTH"
	EnvTreeDepth = "SLIDESCOPE_TREE_DEPTH"
	EnvFormat    = "SLIDESCOPE_FORMAT"
	EnvExpand    = "SLIDESCOPE_EXPAND"
	EnvLLM       = "SLIDESCOPE_LLM"
)

// Config holds CLI defaults. Flags override these values.
type Config struct {
	MaxDepth          int
	TreeDepth         int
	Format            render.Format
	ExpandCollections bool
	FormatForLLM      bool
}

// Default mirrors introspect.DefaultOptions and tree.DefaultMaxDepth.
func Default() Config {
	opts := introspect.DefaultOptions()
	return Config{
		MaxDepth:          opts.MaxDepth,
		TreeDepth:         tree.DefaultMaxDepth,
		Format:            render.JSON,
		ExpandCollections: opts.ExpandCollections,
		FormatForLLM:      opts.FormatForLLM,
	}
}

// Load reads a .env file if present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, starting from Default. Unset or blank
// variables keep their defaults.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	var err error
	if cfg.MaxDepth, err = intVar(getenv, EnvMaxDepth, cfg.MaxDepth); err != nil {
		return cfg, err
	}
	if cfg.TreeDepth, err = intVar(getenv, EnvTreeDepth, cfg.TreeDepth); err != nil {
		return cfg, err
	}
	if cfg.ExpandCollections, err = boolVar(getenv, EnvExpand, cfg.ExpandCollections); err != nil {
		return cfg, err
	}
	if cfg.FormatForLLM, err = boolVar(getenv, EnvLLM, cfg.FormatForLLM); err != nil {
		return cfg, err
	}
	if raw := strings.TrimSpace(getenv(EnvFormat)); raw != "" {
		if cfg.Format, err = render.ParseFormat(raw); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvFormat, err)
		}
	}
	return cfg, nil
}

// Options converts the config to introspection options.
func (c Config) Options() introspect.Options {
	opts := introspect.DefaultOptions()
	opts.MaxDepth = c.MaxDepth
	opts.ExpandCollections = c.ExpandCollections
	opts.FormatForLLM = c.FormatForLLM
	return opts
}

func intVar(getenv func(string) string, key string, def int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	if n < 0 {
		return def, fmt.Errorf("%s: depth must be non-negative, got %d", key, n)
	}
	return n, nil
}

func boolVar(getenv func(string) string, key string, def bool) (bool, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
