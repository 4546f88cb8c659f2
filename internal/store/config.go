package store

import (
	"database/sql"
	"fmt"
)

// Config keys used by the creation flows.
const (
	// ConfigLeadTime is the minimum receiving lead time as HH:MM:SS.
	ConfigLeadTime = "receiving_lead_time"
)

// GetConfig returns one configuration value.
func (s *Store) GetConfig(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("config key not found: %s", key)
		}
		return "", err
	}
	return value, nil
}

// SetConfig upserts one configuration value.
func (s *Store) SetConfig(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	return err
}

// GetLeadTime returns the configured receiving lead time, or the
// empty string when unset (callers fall back to the default).
func (s *Store) GetLeadTime() string {
	value, err := s.GetConfig(ConfigLeadTime)
	if err != nil {
		return ""
	}
	return value
}

// SeedLeadTime writes the lead time only when no value exists yet,
// so a config-file default never clobbers an operator edit.
func (s *Store) SeedLeadTime(value string) error {
	if _, err := s.GetConfig(ConfigLeadTime); err == nil {
		return nil
	}
	return s.SetConfig(ConfigLeadTime, value)
}
