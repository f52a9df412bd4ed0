package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digitdraw/internal/round"
)

func lookup(vals map[string]string) func(string) string {
	return func(k string) string { return vals[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{EnvSecret: "s3cret"}))
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Secret)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, round.ThreePhase, cfg.Policy)
	assert.Equal(t, round.DefaultPrefixWidth, cfg.PrefixWidth)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestFromEnv_MissingSecretFails(t *testing.T) {
	_, err := FromEnv(lookup(map[string]string{EnvPort: "9000"}))
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = FromEnv(lookup(map[string]string{EnvSecret: "   "}))
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{
		EnvSecret:      "k",
		EnvPort:        "3000",
		EnvPolicy:      "two-phase",
		EnvPrefixWidth: "8",
		EnvLogLevel:    "debug",
		EnvLogFormat:   "console",
	}))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, round.TwoPhase, cfg.Policy)
	assert.Equal(t, round.LegacyPrefixWidth, cfg.PrefixWidth)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestFromEnv_InvalidValues(t *testing.T) {
	_, err := FromEnv(lookup(map[string]string{EnvSecret: "k", EnvPrefixWidth: "10"}))
	assert.ErrorIs(t, err, ErrPrefixWidth)

	_, err = FromEnv(lookup(map[string]string{EnvSecret: "k", EnvPrefixWidth: "twelve"}))
	assert.ErrorIs(t, err, ErrPrefixWidth)

	_, err = FromEnv(lookup(map[string]string{EnvSecret: "k", EnvPolicy: "hourly"}))
	assert.ErrorIs(t, err, round.ErrUnknownPolicy)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SECRET_KEY=from-file\nREVEAL_POLICY=instant\n"), 0o600))

	t.Setenv(EnvSecret, "")
	t.Setenv(EnvPolicy, "")
	require.NoError(t, os.Unsetenv(EnvSecret))
	require.NoError(t, os.Unsetenv(EnvPolicy))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Secret)
	assert.Equal(t, round.Instant, cfg.Policy)
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SECRET_KEY=from-file\n"), 0o600))

	t.Setenv(EnvSecret, "from-env")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Secret)
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	t.Setenv(EnvSecret, "k")
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}
