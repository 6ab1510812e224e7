// Package config loads wyrand command-line tool settings from the
// environment.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/opd-ai/go-wyrand"
)

// Prefix is prepended to every environment variable name.
const Prefix = "WYRAND"

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// ErrInvalidConfig is returned when a configuration value cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds tool settings. Each field maps to WYRAND_<NAME>.
type Config struct {
	Environment string `envconfig:"ENV" default:"prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Revision    string `envconfig:"REVISION" default:"current"`
	Seed        uint64 `envconfig:"SEED" default:"0"`

	// SecretSeed selects a derived secret; empty means the default secret.
	SecretSeed string `envconfig:"SECRET_SEED"`

	// Workers bounds concurrent file hashing; 0 means one per CPU.
	Workers int `envconfig:"WORKERS" default:"0"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values that envconfig cannot check by type.
func (c Config) Validate() error {
	if c.Environment != EnvDev && c.Environment != EnvProd {
		return fmt.Errorf("%w: environment %q (want %q or %q)", ErrInvalidConfig, c.Environment, EnvDev, EnvProd)
	}
	if _, err := c.ParsedRevision(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, _, err := c.ParsedSecretSeed(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level: %w", ErrInvalidConfig, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// ParsedRevision returns the configured revision.
func (c Config) ParsedRevision() (wyrand.Revision, error) {
	return wyrand.ParseRevision(c.Revision)
}

// ParsedSecretSeed returns the secret seed and whether one is set.
// Decimal and 0x-prefixed hexadecimal values are accepted.
func (c Config) ParsedSecretSeed() (seed uint64, ok bool, err error) {
	s := strings.TrimSpace(c.SecretSeed)
	if s == "" {
		return 0, false, nil
	}
	seed, err = strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: secret seed: %w", ErrInvalidConfig, err)
	}
	return seed, true, nil
}

// Secret returns the secret the configuration selects.
func (c Config) Secret() (wyrand.Secret, error) {
	rev, err := c.ParsedRevision()
	if err != nil {
		return wyrand.Secret{}, err
	}
	seed, ok, err := c.ParsedSecretSeed()
	if err != nil {
		return wyrand.Secret{}, err
	}
	if !ok {
		return wyrand.DefaultSecret(rev), nil
	}
	return wyrand.MakeSecret(rev, seed), nil
}

// WorkerCount returns the effective number of workers.
func (c Config) WorkerCount() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// NewLogger builds a development logger for the dev environment and a
// production logger otherwise, at the configured level.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: log level: %w", ErrInvalidConfig, err)
	}

	var zc zap.Config
	if c.Environment == EnvDev {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}
