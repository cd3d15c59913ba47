package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
func Load[T any](cfg T) error {
	if err := godotenv.Load(); err != nil {
		return err // Return error if .env file loading fails
	}

	if err := env.Parse(cfg); err != nil {
		return err // Return error if environment variable parsing fails
	}

	return nil // Return nil if everything is successful
}

// Config holds the configuration for the application
type Config struct {
	AppConfig      `envPrefix:"APP_"`      // Application-wide settings
	ScenarioConfig `envPrefix:"SCENARIO_"` // Scenario input settings
	ReportConfig   `envPrefix:"REPORT_"`   // Report rendering settings
	MatcherConfig  `envPrefix:"MATCHER_"`  // Matching run settings
}

// AppConfig holds application-wide settings.
type AppConfig struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// ScenarioConfig holds the scenario input settings.
type ScenarioConfig struct {
	Path     string        `env:"PATH" envDefault:""` // Empty path serves the built-in sample scenario
	Watch    bool          `env:"WATCH" envDefault:"false"`
	Cooldown time.Duration `env:"COOLDOWN" envDefault:"500ms"`
}

// ReportConfig holds the report rendering settings.
type ReportConfig struct {
	Format    string `env:"FORMAT" envDefault:"text"`   // text or json
	Output    string `env:"OUTPUT" envDefault:"stdout"` // stdout, stderr or a file path
	Precision int    `env:"PRECISION" envDefault:"8"`
}

// MatcherConfig holds the matching run settings.
type MatcherConfig struct {
	ScanWorkers int `env:"SCAN_WORKERS" envDefault:"1"`
}
