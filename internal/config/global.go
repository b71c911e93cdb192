package config

import (
	"os"
	"sync"
)

const (
	// DefaultFile is read from the working directory when no path is given.
	DefaultFile = "meshwup.yml"
	// EnvConfig names the config file when --config is not set.
	EnvConfig = "MESHWUP_CONFIG"
)

var (
	cacheMu   sync.Mutex
	cache     *Config
	cachePath string
)

// ResolvePath picks the config file: the flag value, then $MESHWUP_CONFIG,
// then DefaultFile. Only an explicitly named file is required to exist.
func ResolvePath(flag string) (path string, required bool) {
	if flag != "" {
		return flag, true
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, true
	}
	return DefaultFile, false
}

// LoadCached loads the configuration for the given --config flag value once
// per process.
func LoadCached(flag string) (*Config, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	path, required := ResolvePath(flag)
	if cache != nil && cachePath == path {
		return cache, nil
	}
	cfg, err := Load(path, required)
	if err != nil {
		return nil, err
	}
	cache, cachePath = cfg, path
	return cfg, nil
}

// ResetCache clears the cached configuration.
// Useful for testing.
func ResetCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache, cachePath = nil, ""
}
