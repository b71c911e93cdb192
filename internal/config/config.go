// Package config handles meshwup configuration: defaults, the YAML file and
// MESHWUP_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/meshwup/meshwup/internal/download"
	"github.com/meshwup/meshwup/internal/sampler"
	"github.com/meshwup/meshwup/internal/taxonomy"
	"github.com/meshwup/meshwup/internal/treenum"
	"gopkg.in/yaml.v3"
)

// Config is the effective configuration of a run.
type Config struct {
	Source            string `yaml:"source" json:"source"`                         // MeSH N-Triples dump, plain or .gz
	Output            string `yaml:"output" json:"output"`                         // Dataset CSV
	Runs              string `yaml:"runs" json:"runs"`                             // Run ledger (JSONL)
	Samples           int    `yaml:"samples" json:"samples"`                       // Pairs requested per run
	Seed              uint64 `yaml:"seed" json:"seed"`                             // 0 picks a time-based seed
	Precision         int    `yaml:"precision" json:"precision"`                   // Decimal places of scores
	AttemptMultiplier int    `yaml:"attempt_multiplier" json:"attempt_multiplier"` // Attempt budget per requested pair
	Root              string `yaml:"root" json:"root"`
	RootFallbackRef   string `yaml:"root_fallback_ref" json:"root_fallback_ref"`
	RootFallbackTerm  string `yaml:"root_fallback_term" json:"root_fallback_term"`
	DownloadURL       string `yaml:"download_url" json:"download_url"`
	LogLevel          string `yaml:"log_level" json:"log_level"`
}

// Environment variables that override file values.
const (
	EnvSource      = "MESHWUP_SOURCE"
	EnvOutput      = "MESHWUP_OUTPUT"
	EnvSamples     = "MESHWUP_SAMPLES"
	EnvSeed        = "MESHWUP_SEED"
	EnvLogLevel    = "MESHWUP_LOG_LEVEL"
	EnvDownloadURL = "MESHWUP_DOWNLOAD_URL"
)

// MaxPrecision bounds the number of decimal places a score is rounded to.
const MaxPrecision = 15

// ErrInvalidValue is returned for configuration values that cannot be used.
var ErrInvalidValue = errors.New("invalid configuration value")

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source:            filepath.Join("nt_data", "mesh2025.nt.gz"),
		Output:            "mesh_dataset.csv",
		Runs:              filepath.Join(".meshwup", "runs.jsonl"),
		Samples:           5000,
		Precision:         sampler.DefaultPrecision,
		AttemptMultiplier: sampler.DefaultAttemptMultiplier,
		Root:              treenum.DefaultRoot,
		RootFallbackRef:   taxonomy.DefaultRootRef,
		RootFallbackTerm:  taxonomy.DefaultRootTerm,
		DownloadURL:       download.DefaultURL,
		LogLevel:          "info",
	}
}

// Load builds the configuration from defaults, the YAML file at path and the
// environment, in increasing precedence. A missing file is only an error
// when required is true.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case os.IsNotExist(err) && !required:
		default:
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.Source = ExpandPath(cfg.Source)
	cfg.Output = ExpandPath(cfg.Output)
	cfg.Runs = ExpandPath(cfg.Runs)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvSource); v != "" {
		c.Source = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvDownloadURL); v != "" {
		c.DownloadURL = v
	}
	if v := os.Getenv(EnvSamples); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, EnvSamples, v)
		}
		c.Samples = n
	}
	if v := os.Getenv(EnvSeed); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, EnvSeed, v)
		}
		c.Seed = n
	}
	return nil
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.Samples <= 0 {
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalidValue, c.Samples)
	}
	if c.AttemptMultiplier <= 0 {
		return fmt.Errorf("%w: attempt_multiplier must be positive, got %d", ErrInvalidValue, c.AttemptMultiplier)
	}
	if c.Precision < 0 || c.Precision > MaxPrecision {
		return fmt.Errorf("%w: precision must be in [0, %d], got %d", ErrInvalidValue, MaxPrecision, c.Precision)
	}
	if len(c.Root) != 1 {
		return fmt.Errorf("%w: root must be a single category letter, got %q", ErrInvalidValue, c.Root)
	}
	if err := treenum.Validate(c.Root); err != nil {
		return fmt.Errorf("%w: root: %v", ErrInvalidValue, err)
	}
	if c.Source == "" {
		return fmt.Errorf("%w: source is empty", ErrInvalidValue)
	}
	return nil
}

// SamplerConfig maps the run settings onto a sampler configuration.
func (c *Config) SamplerConfig() sampler.Config {
	cfg := sampler.DefaultConfig(c.Samples)
	cfg.AttemptMultiplier = c.AttemptMultiplier
	cfg.Precision = c.Precision
	cfg.Seed = c.Seed
	return cfg
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
