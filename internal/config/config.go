// Package config handles configuration for the BookIt persistence layer,
// including defaults, JSON overlay, and environment variables.
package config

import "time"

// Config holds runtime settings for the BookIt domain-state layer.
//
// Fields:
//   - DatabaseDSN: SQLite DSN of the durable object store.
//   - SnapshotPath: file path of the lightweight session snapshot.
//   - SessionSecret: HMAC secret for signing session restore tokens (HS256).
//     Do not use the test default in production.
//   - SessionTokenValidityDuration: lifetime of a session restore token.
//   - MaxLoginAttempts / LockoutDuration: login rate limiting; the counter
//     resets once LockoutDuration has elapsed since the last attempt.
//   - OpeningHour / ClosingHour: daily bookable window, ClosingHour exclusive.
//   - SlotIntervalMinutes: granularity of the booking grid.
//   - AdminEmail / AdminPassword, ProfessionalEmail / ProfessionalPassword:
//     fixed bootstrap credential pairs recognised by the login path.
type Config struct {
	DatabaseDSN  string
	SnapshotPath string

	SessionSecret                string
	SessionTokenValidityDuration time.Duration

	MaxLoginAttempts int
	LockoutDuration  time.Duration

	OpeningHour         int
	ClosingHour         int
	SlotIntervalMinutes int

	AdminEmail           string
	AdminPassword        string
	ProfessionalEmail    string
	ProfessionalPassword string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: SessionSecret and the bootstrap passwords are insecure for
// production and should be overridden.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "file:bookit.db"
	c.SnapshotPath = "bookit-session.json"
	c.SessionSecret = "secretKey"
	c.SessionTokenValidityDuration = 24 * time.Hour
	c.MaxLoginAttempts = 5
	c.LockoutDuration = 15 * time.Minute
	c.OpeningHour = 9
	c.ClosingHour = 19
	c.SlotIntervalMinutes = 30
	c.AdminEmail = "admin@book.it"
	c.AdminPassword = "admin123"
	c.ProfessionalEmail = "pro@book.it"
	c.ProfessionalPassword = "pro123"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file (path taken from BOOKIT_CONFIG) and finally
// from individual environment variables. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	return cfg
}
