package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings are the runtime settings read from the environment
type Settings struct {
	Env        string `env:"ROSTER_ENV" envDefault:"dev"`
	ConfigPath string `env:"ROSTER_CONFIG"`
	Verbose    bool   `env:"ROSTER_VERBOSE"`
	Workers    int    `env:"ROSTER_WORKERS" envDefault:"0"`

	Database struct {
		URL      string `env:"URL"`
		MaxConns int32  `env:"MAX_CONNS" envDefault:"4"`
	} `envPrefix:"ROSTER_DATABASE_"`

	Pushgateway struct {
		URL string `env:"URL"`
		Job string `env:"JOB" envDefault:"duty_roster"`
	} `envPrefix:"ROSTER_PUSHGATEWAY_"`
}

// LoadSettings reads the runtime settings from the process environment
func LoadSettings() (*Settings, error) {
	return parseSettings(env.Options{})
}

// LoadSettingsFrom reads the runtime settings from the given variables only
func LoadSettingsFrom(vars map[string]string) (*Settings, error) {
	return parseSettings(env.Options{Environment: vars})
}

func parseSettings(opts env.Options) (*Settings, error) {
	settings := &Settings{}
	if err := env.ParseWithOptions(settings, opts); err != nil {
		var aggErr env.AggregateError
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			return nil, fmt.Errorf("failed to parse environment: %w", aggErr.Errors[0])
		}
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return settings, nil
}

// RequireDatabase returns an error if no database URL is configured
func (s *Settings) RequireDatabase() error {
	if s.Database.URL == "" {
		return errors.New("ROSTER_DATABASE_URL is not set")
	}
	return nil
}
