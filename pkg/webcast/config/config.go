// Package config loads the immutable Configuration value the root
// livefeed package is constructed from, following a load-from-file-then-
// env pattern with godotenv.Load handling optional environment-file
// overrides.
package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Configuration is the immutable value passed to livefeed.New. It is
// constructed once and never mutated afterwards; every Client built
// from it gets its own copy of any derived maps.
type Configuration struct {
	SignAPIBase    string        `yaml:"sign_api_base" json:"sign_api_base"`
	SessionID      string        `yaml:"session_id" json:"session_id"`
	TTTargetIDC    string        `yaml:"tt_target_idc" json:"tt_target_idc"`
	Proxy          string        `yaml:"proxy" json:"proxy"`
	PollInterval   time.Duration `yaml:"poll_interval" json:"poll_interval"`
	HeartbeatEvery time.Duration `yaml:"heartbeat_every" json:"heartbeat_every"`
	Debug          bool          `yaml:"debug" json:"debug"`
}

// Defaults returns a Configuration carrying the session's baseline
// values, as a fresh value rather than a shared global.
func Defaults() Configuration {
	return Configuration{
		SignAPIBase:    "https://tiktok.eulerstream.com",
		TTTargetIDC:    "useast1a",
		HeartbeatEvery: 5 * time.Second,
	}
}

// Load reads a YAML configuration file at path, falling back to
// Defaults() for any field the file omits.
func Load(path string) (Configuration, error) {
	cfg := Defaults()

	b, err := ioutil.ReadFile(path)
	if err != nil {
		return Configuration{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Configuration{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadEnvFile loads a .env-style file into the process environment
// ahead of an EnvOverride call, the same way a local development
// environment loads overrides before reading its configuration. A
// missing file is not an error, matching godotenv's own convention for
// optional env files.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// EnvOverride layers environment variables onto cfg, letting deployment
// environments override session id and proxy without touching a
// checked-in YAML file.
func EnvOverride(cfg Configuration) Configuration {
	if v := os.Getenv("LIVEFEED_SESSION_ID"); v != "" {
		cfg.SessionID = v
	}
	if v := os.Getenv("LIVEFEED_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LIVEFEED_SIGN_API_BASE"); v != "" {
		cfg.SignAPIBase = v
	}
	return cfg
}
