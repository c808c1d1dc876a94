// Package config loads the service configuration from YAML with sane
// defaults for every knob.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/timing"
)

// DefaultPath is probed when no --config flag is given; a missing file at
// the default path simply means "all defaults".
const DefaultPath = "oracle.yaml"

// APIKeyEnv names the environment variable carrying the Groq credential.
// Secrets never live in the config file.
const APIKeyEnv = "GROQ_API_KEY"

// Config is the root of oracle.yaml.
type Config struct {
	Server  Server  `yaml:"server"`
	Timing  Timing  `yaml:"timing"`
	Groq    Groq    `yaml:"groq"`
	Redis   Redis   `yaml:"redis"`
	Logging Logging `yaml:"logging"`
}

// Server configures the HTTP transport.
type Server struct {
	Addr string `yaml:"addr"`
}

// Timing configures the pacing window, in seconds to match the original
// deployment knobs.
type Timing struct {
	ContemplationMin    float64 `yaml:"contemplation_min"`
	ContemplationMax    float64 `yaml:"contemplation_max"`
	CompleteToIdleHint  float64 `yaml:"complete_to_idle_hint"`
	ExternalCallTimeout float64 `yaml:"external_call_timeout"`
}

// Groq configures the response-generation collaborator.
type Groq struct {
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
}

// Redis configures the optional event archive backend.
type Redis struct {
	Enabled    bool   `yaml:"enabled"`
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	HistoryCap int64  `yaml:"history_cap"`
}

// Logging configures the application logger.
type Logging struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	d := timing.DefaultConfig()
	return Config{
		Server: Server{Addr: ":8000"},
		Timing: Timing{
			ContemplationMin:    d.ContemplationMin.Seconds(),
			ContemplationMax:    d.ContemplationMax.Seconds(),
			CompleteToIdleHint:  d.CompleteToIdleHint.Seconds(),
			ExternalCallTimeout: d.ExternalCallTimeout.Seconds(),
		},
		Groq: Groq{
			Temperature: 0.7,
		},
		Redis: Redis{
			Addr:       "localhost:6379",
			HistoryCap: 1000,
		},
		Logging: Logging{Level: "info"},
	}
}

// Load reads the config at path, layered over Default. An empty path probes
// DefaultPath and tolerates its absence; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.TimingConfig().Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// TimingConfig converts the float seconds to the core's durations.
func (c Config) TimingConfig() timing.Config {
	return timing.Config{
		ContemplationMin:    secondsToDuration(c.Timing.ContemplationMin),
		ContemplationMax:    secondsToDuration(c.Timing.ContemplationMax),
		CompleteToIdleHint:  secondsToDuration(c.Timing.CompleteToIdleHint),
		ExternalCallTimeout: secondsToDuration(c.Timing.ExternalCallTimeout),
	}
}

// APIKey reads the Groq credential from the environment.
func (c Config) APIKey() string {
	return os.Getenv(APIKeyEnv)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
