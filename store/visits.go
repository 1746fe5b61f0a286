package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Visit is one navigated-to result.
type Visit struct {
	Permalink   string
	Frequency   int
	LastVisited time.Time
}

// RecordVisit bumps the visit count and timestamp for a permalink, inserting
// it on first visit.
func RecordVisit(db *sql.DB, permalink string) error {
	query := `
		INSERT INTO visits (permalink, frequency, last_visited)
		VALUES (?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(permalink) DO UPDATE SET
			frequency = frequency + 1,
			last_visited = CURRENT_TIMESTAMP
	`
	_, err := db.Exec(query, permalink)
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// GetRecentVisits returns the most recently visited permalinks, newest first.
func GetRecentVisits(db *sql.DB, limit int) ([]Visit, error) {
	query := `SELECT permalink, frequency, last_visited FROM visits ORDER BY last_visited DESC LIMIT ?`
	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.Permalink, &v.Frequency, &v.LastVisited); err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, nil
}
