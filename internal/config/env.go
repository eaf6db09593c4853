package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays cfg with values from individual environment variables.
// Unset or malformed variables leave the existing value in place.
func parseEnv(cfg *Config) {
	setString := func(name string, target *string) {
		if v := os.Getenv(name); v != "" {
			*target = v
		}
	}
	setInt := func(name string, target *int) {
		if v := os.Getenv(name); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*target = n
			}
		}
	}
	setDuration := func(name string, target *time.Duration) {
		if v := os.Getenv(name); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*target = d
			}
		}
	}

	setString("BOOKIT_DATABASE_DSN", &cfg.DatabaseDSN)
	setString("BOOKIT_SNAPSHOT_PATH", &cfg.SnapshotPath)
	setString("BOOKIT_SESSION_SECRET", &cfg.SessionSecret)
	setDuration("BOOKIT_SESSION_TOKEN_VALIDITY", &cfg.SessionTokenValidityDuration)
	setInt("BOOKIT_MAX_LOGIN_ATTEMPTS", &cfg.MaxLoginAttempts)
	setDuration("BOOKIT_LOCKOUT_DURATION", &cfg.LockoutDuration)
	setInt("BOOKIT_OPENING_HOUR", &cfg.OpeningHour)
	setInt("BOOKIT_CLOSING_HOUR", &cfg.ClosingHour)
	setInt("BOOKIT_SLOT_INTERVAL_MINUTES", &cfg.SlotIntervalMinutes)
	setString("BOOKIT_ADMIN_EMAIL", &cfg.AdminEmail)
	setString("BOOKIT_ADMIN_PASSWORD", &cfg.AdminPassword)
	setString("BOOKIT_PROFESSIONAL_EMAIL", &cfg.ProfessionalEmail)
	setString("BOOKIT_PROFESSIONAL_PASSWORD", &cfg.ProfessionalPassword)
}
