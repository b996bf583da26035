package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/racket_hero_test")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "./backups", cfg.BackupDir)
	assert.Equal(t, 24*time.Hour, cfg.BackupInterval)
	assert.False(t, cfg.R2Enabled())
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadInvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "70000")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadCORSOriginsSplit(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CORS_ORIGINS", "https://rackethero.app, https://staging.rackethero.app")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://rackethero.app", "https://staging.rackethero.app"}, cfg.CORSOrigins)
}

func TestLoadBackupIntervalTooShort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BACKUP_INTERVAL", "10s")

	_, err := Load()
	require.Error(t, err)
}

func TestR2EnabledRequiresAllFields(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("R2_ACCOUNT_ID", "acct")
	t.Setenv("R2_ACCESS_KEY_ID", "key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.R2Enabled())

	t.Setenv("R2_SECRET_ACCESS_KEY", "secret")
	t.Setenv("R2_BUCKET_NAME", "backups")

	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.R2Enabled())
}
