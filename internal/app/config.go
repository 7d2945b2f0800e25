package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/dasmanifest/internal/dataset"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath  string // dataset list, one identifier per line
	Process    string // copied into every manifest entry
	OutputPath string

	Redirector      string
	Naming          string // dataset.SimulationPolicy or dataset.DataPolicy
	ResolverCommand string
	Timeout         time.Duration // per query, zero means none
	Workers         int

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputPath == "" {
		return nil, errors.New("OutputPath is a required configuration field and cannot be empty")
	}
	if _, err := dataset.PolicyByName(cfg.Naming); err != nil {
		return nil, err
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative, got %s", cfg.Timeout)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}

	return &cfg, nil
}
