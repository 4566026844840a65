// Package config loads observer and converter settings from the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/litescript/ls-altaz/internal/astro"
	"github.com/litescript/ls-altaz/internal/sidereal"
)

// Prefix is prepended to every environment variable, e.g. ALTAZ_LATITUDE.
const Prefix = "ALTAZ"

// DefaultEnvFile is loaded by Load when no files are given. It is optional.
const DefaultEnvFile = ".env"

// Config holds the settings read from the environment. Every field maps to
// Prefix + "_" + its envconfig tag.
type Config struct {
	ObserverConfig
	Sidereal string        `envconfig:"SIDEREAL" default:"mean"`
	RAPolicy string        `envconfig:"RA_POLICY" default:"legacy"`
	LogLevel string        `envconfig:"LOG_LEVEL" default:"info"`
	Refresh  time.Duration `envconfig:"REFRESH" default:"1s"`
}

// ObserverConfig is the observer site. It is embedded in Config so its keys
// carry no extra prefix.
type ObserverConfig struct {
	Latitude  float64 `envconfig:"LATITUDE" default:"15.39187"`
	Longitude float64 `envconfig:"LONGITUDE" default:"73.88103"`
	Name      string  `envconfig:"SITE_NAME" default:"Goa"`
}

// Load reads the given dotenv files (or DefaultEnvFile if none), then the
// environment. Variables already set in the environment win over files.
// A missing DefaultEnvFile is not an error; a missing explicit file is.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", DefaultEnvFile, err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("loading env files: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// AstroObserver returns the configured observer.
func (c *Config) AstroObserver() astro.Observer {
	return astro.Observer{
		LatDeg: c.Latitude,
		LonDeg: c.Longitude,
		Name:   c.Name,
	}
}

// Converter builds a converter from the configuration. Extra options are
// applied after the configured ones.
func (c *Config) Converter(opts ...astro.Option) (astro.Converter, error) {
	mode, err := sidereal.ParseMode(c.Sidereal)
	if err != nil {
		return astro.Converter{}, fmt.Errorf("%w: %w", astro.ErrInvalidConfiguration, err)
	}
	policy, err := astro.ParseRAPolicy(c.RAPolicy)
	if err != nil {
		return astro.Converter{}, err
	}

	all := append([]astro.Option{
		astro.WithSource(sidereal.Meeus{Mode: mode}),
		astro.WithRAPolicy(policy),
	}, opts...)

	return astro.NewConverter(c.AstroObserver(), all...)
}
