package config

import (
	"encoding/json"
	"os"
	"time"
)

// jsonDuration lets JSON specify durations either as strings like "15m"
// or as integer nanoseconds.
type jsonDuration struct {
	time.Duration
}

func (d *jsonDuration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
	}
	return nil
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After
// parsing, non-zero values are copied into the runtime Config.
type JsonConfig struct {
	DatabaseDSN  string `json:"database_dsn"`
	SnapshotPath string `json:"snapshot_path"`

	SessionSecret                string       `json:"session_secret"`
	SessionTokenValidityDuration jsonDuration `json:"session_token_validity_duration"`

	MaxLoginAttempts int          `json:"max_login_attempts"`
	LockoutDuration  jsonDuration `json:"lockout_duration"`

	OpeningHour         int `json:"opening_hour"`
	ClosingHour         int `json:"closing_hour"`
	SlotIntervalMinutes int `json:"slot_interval_minutes"`

	AdminEmail           string `json:"admin_email"`
	AdminPassword        string `json:"admin_password"`
	ProfessionalEmail    string `json:"professional_email"`
	ProfessionalPassword string `json:"professional_password"`
}

// parseJson overlays cfg with values from the JSON file named by the
// BOOKIT_CONFIG environment variable. If the variable is empty, no JSON is
// loaded. Panics on read or unmarshal errors (caller should recover if
// desired). Zero-valued JSON fields leave the existing value in place.
func parseJson(cfg *Config) {
	jsonConfigFile := os.Getenv("BOOKIT_CONFIG")
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SnapshotPath != "" {
		cfg.SnapshotPath = jc.SnapshotPath
	}
	if jc.SessionSecret != "" {
		cfg.SessionSecret = jc.SessionSecret
	}
	if jc.SessionTokenValidityDuration.Duration != 0 {
		cfg.SessionTokenValidityDuration = jc.SessionTokenValidityDuration.Duration
	}
	if jc.MaxLoginAttempts != 0 {
		cfg.MaxLoginAttempts = jc.MaxLoginAttempts
	}
	if jc.LockoutDuration.Duration != 0 {
		cfg.LockoutDuration = jc.LockoutDuration.Duration
	}
	if jc.OpeningHour != 0 {
		cfg.OpeningHour = jc.OpeningHour
	}
	if jc.ClosingHour != 0 {
		cfg.ClosingHour = jc.ClosingHour
	}
	if jc.SlotIntervalMinutes != 0 {
		cfg.SlotIntervalMinutes = jc.SlotIntervalMinutes
	}
	if jc.AdminEmail != "" {
		cfg.AdminEmail = jc.AdminEmail
	}
	if jc.AdminPassword != "" {
		cfg.AdminPassword = jc.AdminPassword
	}
	if jc.ProfessionalEmail != "" {
		cfg.ProfessionalEmail = jc.ProfessionalEmail
	}
	if jc.ProfessionalPassword != "" {
		cfg.ProfessionalPassword = jc.ProfessionalPassword
	}
}
