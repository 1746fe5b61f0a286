package store

import (
	"database/sql"
	"fmt"
)

// The settings table is a small key/value side store for choices that should
// survive the session. Only the launcher command lives there today.
const openCmdKey = "open_cmd"

// OpenCmd returns the saved launcher command template, "" when none has been
// saved yet.
func OpenCmd(db *sql.DB) (string, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM settings WHERE key = ?`, openCmdKey).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", openCmdKey, err)
	}
	return value, nil
}

// SetOpenCmd saves the launcher command template for later sessions.
func SetOpenCmd(db *sql.DB, cmd string) error {
	upsert := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := db.Exec(upsert, openCmdKey, cmd); err != nil {
		return fmt.Errorf("failed to save %s: %w", openCmdKey, err)
	}
	return nil
}
