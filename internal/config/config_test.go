package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.DatabaseDSN, "file:bookit.db")
	assert.Equal(t, c.SnapshotPath, "bookit-session.json")
	assert.Equal(t, c.SessionSecret, "secretKey")
	assert.Equal(t, c.SessionTokenValidityDuration, 24*time.Hour)
	assert.Equal(t, c.MaxLoginAttempts, 5)
	assert.Equal(t, c.LockoutDuration, 15*time.Minute)
	assert.Equal(t, c.OpeningHour, 9)
	assert.Equal(t, c.ClosingHour, 19)
	assert.Equal(t, c.SlotIntervalMinutes, 30)
	assert.Equal(t, c.AdminEmail, "admin@book.it")
	assert.Equal(t, c.ProfessionalEmail, "pro@book.it")
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, c.DatabaseDSN, "file:bookit.db")
	assert.Equal(t, c.MaxLoginAttempts, 5)
	assert.Equal(t, c.LockoutDuration, 15*time.Minute)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("BOOKIT_DATABASE_DSN", "file:other.db")
	t.Setenv("BOOKIT_MAX_LOGIN_ATTEMPTS", "3")
	t.Setenv("BOOKIT_LOCKOUT_DURATION", "1m")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "file:other.db", c.DatabaseDSN)
	assert.Equal(t, 3, c.MaxLoginAttempts)
	assert.Equal(t, time.Minute, c.LockoutDuration)
}

func TestParseEnv_MalformedValuesIgnored(t *testing.T) {
	t.Setenv("BOOKIT_MAX_LOGIN_ATTEMPTS", "many")
	t.Setenv("BOOKIT_LOCKOUT_DURATION", "soon")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, 5, c.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, c.LockoutDuration)
}

func TestParseJson_OverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	data := []byte(`{
		"database_dsn": "file:json.db",
		"lockout_duration": "2m",
		"session_token_validity_duration": "1h",
		"max_login_attempts": 7
	}`)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	t.Setenv("BOOKIT_CONFIG", path)

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "file:json.db", c.DatabaseDSN)
	assert.Equal(t, 2*time.Minute, c.LockoutDuration)
	assert.Equal(t, time.Hour, c.SessionTokenValidityDuration)
	assert.Equal(t, 7, c.MaxLoginAttempts)
	// untouched fields keep defaults
	assert.Equal(t, 9, c.OpeningHour)
}

func TestParseJson_NoFileConfigured(t *testing.T) {
	t.Setenv("BOOKIT_CONFIG", "")

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "file:bookit.db", c.DatabaseDSN)
}
