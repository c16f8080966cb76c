package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names read directly by the loader.
const (
	envPrefix   = "MEDASSIST_"
	envConfig   = "MEDASSIST_CONFIG"
	envDotEnv   = "MEDASSIST_ENV_FILE"
	defaultDotE = ".env"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// The .env file (MEDASSIST_ENV_FILE, default ./.env) is merged into the
// process env before anything else is read.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if MEDASSIST_CONFIG is set
//  3. env (prefix MEDASSIST_), including values from .env
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// godotenv never overrides variables that are already set.
	// It runs first so MEDASSIST_CONFIG may come from the .env file.
	dotenv := os.Getenv(envDotEnv)
	if dotenv == "" {
		dotenv = defaultDotE
	}
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, dotenv, err)
	}

	if path := os.Getenv(envConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// MEDASSIST_MODEL_DIR -> model_dir (flat keys, underscores preserved).
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants the services rely on.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.HoldoutRatio < 0 || c.HoldoutRatio >= 1:
		return fmt.Errorf("%w: holdout_ratio must be in [0,1), got %v", ErrInvalidConfig, c.HoldoutRatio)
	case c.PredictionTimeoutMS < 0:
		return fmt.Errorf("%w: prediction_timeout_ms must not be negative", ErrInvalidConfig)
	}
	switch c.ArtifactBackend {
	case BackendLocal:
		if strings.TrimSpace(c.ModelDir) == "" {
			return fmt.Errorf("%w: model_dir must not be empty", ErrInvalidConfig)
		}
	case BackendS3:
		if strings.TrimSpace(c.S3Bucket) == "" {
			return fmt.Errorf("%w: s3_bucket must not be empty", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown artifact_backend %q", ErrInvalidConfig, c.ArtifactBackend)
	}
	return nil
}
