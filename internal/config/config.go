package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ProjectID       string        `env:"PROJECTID"`
	Region          string        `env:"REGION"`
	LogLevel        string        `env:"LOGLEVEL" envDefault:"info"`
	Port            string        `env:"PORT" envDefault:"8080"`
	CORSOrigins     []string      `env:"CORSORIGINS" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWNTIMEOUT" envDefault:"10s"`
}

func New() (*Config, error) {
	cfg := new(Config)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// CLIConfig configures the overview command line client. Flags override
// these values.
type CLIConfig struct {
	APIURL        string        `env:"OVERVIEW_API_URL" envDefault:"http://localhost:8080"`
	Token         string        `env:"OVERVIEW_TOKEN"`
	CachePath     string        `env:"OVERVIEW_CACHE_PATH"`
	ViewportWidth int           `env:"OVERVIEW_VIEWPORT_WIDTH" envDefault:"1400"`
	Timeout       time.Duration `env:"OVERVIEW_TIMEOUT" envDefault:"15s"`
	LogLevel      string        `env:"OVERVIEW_LOGLEVEL" envDefault:"warn"`
	Roles         []string      `env:"OVERVIEW_ROLES" envSeparator:","`
}

func NewCLI() (*CLIConfig, error) {
	cfg := new(CLIConfig)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
