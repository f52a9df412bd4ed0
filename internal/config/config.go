package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"digitdraw/internal/round"
)

// Environment keys.
const (
	EnvSecret      = "SECRET_KEY"
	EnvPort        = "PORT"
	EnvPolicy      = "REVEAL_POLICY"
	EnvPrefixWidth = "HASH_PREFIX_WIDTH"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"

	DefaultPort = "8080"
)

var (
	ErrMissingSecret = errors.New("SECRET_KEY must be set")
	ErrPrefixWidth   = errors.New("HASH_PREFIX_WIDTH must be 8 or 12")
)

// Config is the resolved process configuration.
type Config struct {
	Secret      string
	Port        string
	Policy      round.Policy
	PrefixWidth int
	LogLevel    string
	LogFormat   string
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set win over the file.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	secret := getenv(EnvSecret)
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}

	policy, err := round.ParsePolicy(getenv(EnvPolicy))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvPolicy, err)
	}

	width := round.DefaultPrefixWidth
	if raw := strings.TrimSpace(getenv(EnvPrefixWidth)); raw != "" {
		width, err = strconv.Atoi(raw)
		if err != nil || (width != round.DefaultPrefixWidth && width != round.LegacyPrefixWidth) {
			return nil, fmt.Errorf("%w: got %q", ErrPrefixWidth, raw)
		}
	}

	return &Config{
		Secret:      secret,
		Port:        envOr(getenv, EnvPort, DefaultPort),
		Policy:      policy,
		PrefixWidth: width,
		LogLevel:    envOr(getenv, EnvLogLevel, "info"),
		LogFormat:   envOr(getenv, EnvLogFormat, "json"),
	}, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
