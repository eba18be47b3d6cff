package store

import (
	"database/sql"
	"fmt"
	"time"
)

// RecordLearningTime adds seconds to the accumulated total for the current
// local calendar day. Additive, never overwriting.
func (db *DB) RecordLearningTime(seconds int64) error {
	query := `
		INSERT INTO daily_learning (date, duration_seconds) VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET duration_seconds = duration_seconds + excluded.duration_seconds`
	if _, err := db.Exec(query, today(), seconds); err != nil {
		return fmt.Errorf("failed to record learning time: %w", err)
	}
	return nil
}

// TodayLearningTime returns today's accumulated seconds, 0 if no row yet.
func (db *DB) TodayLearningTime() (int64, error) {
	var seconds int64
	err := db.Get(&seconds, "SELECT duration_seconds FROM daily_learning WHERE date = ?", today())
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get learning time: %w", err)
	}
	return seconds, nil
}

func today() string {
	return time.Now().Format("2006-01-02")
}
