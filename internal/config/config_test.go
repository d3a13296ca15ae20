package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := Load(home)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".rhc", "state"), cfg.Storage.Path)
	assert.Equal(t, filepath.Join(home, ".rhc", "bookings.toml"), cfg.BookingsPath())
	assert.True(t, cfg.Session.AllowRoleSwitch)
	assert.False(t, cfg.Guard.StrictRoles)
	assert.False(t, cfg.Booking.RequireSymptomNotes)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.Log.Format)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `
[session]
allow_role_switch = false

[guard]
strict_roles = true

[booking]
require_symptom_notes = true

[log]
level = "debug"
format = "json"
`)

	cfg, err := Load(home)
	require.NoError(t, err)

	assert.False(t, cfg.Session.AllowRoleSwitch)
	assert.True(t, cfg.Guard.StrictRoles)
	assert.True(t, cfg.Booking.RequireSymptomNotes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "[guard]\nstrict_roles = false\n")
	t.Setenv("RHC_GUARD_STRICT_ROLES", "true")
	t.Setenv("RHC_SERVER_ADDR", "127.0.0.1:9999")

	cfg, err := Load(home)
	require.NoError(t, err)

	assert.True(t, cfg.Guard.StrictRoles)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "[log]\nformat = \"xml\"\n")

	_, err := Load(home)
	require.Error(t, err)
	assert.ErrorContains(t, err, "log.format")
}

func TestLoadMalformedConfigFileReturnsError(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "[guard\n")

	_, err := Load(home)
	require.Error(t, err)
	assert.ErrorContains(t, err, "read config file")
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("RHC_LOG_LEVEL=trace\n"), 0o600))
	t.Setenv("RHC_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("RHC_LOG_LEVEL"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "trace", os.Getenv("RHC_LOG_LEVEL"))
}

func writeConfig(t *testing.T, home, body string) {
	t.Helper()

	dir := filepath.Join(home, ".rhc")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0o600))
}
