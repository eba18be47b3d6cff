package store

import (
	"database/sql"
	"fmt"

	"coursetrack/internal/domain"
)

// UpdateProgress upserts the playback state for one video. current_time is
// always overwritten (seeking backward is allowed) while is_completed only
// ever rises: a late tick with isCompleted=false must not un-complete a
// finished video. Called at sub-second frequency during playback; the
// conflict resolution is a single statement so rapid repeats stay safe.
func (db *DB) UpdateProgress(videoID, courseID string, currentTime float64, isCompleted bool) error {
	query := `
		INSERT INTO progress (video_id, course_id, current_time, is_completed, last_watched_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(video_id) DO UPDATE SET
			current_time = excluded.current_time,
			is_completed = MAX(is_completed, excluded.is_completed),
			last_watched_at = CURRENT_TIMESTAMP`
	if _, err := db.Exec(query, videoID, courseID, currentTime, isCompleted); err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	return nil
}

// MarkVideoComplete forces is_completed without touching an existing
// current_time, so the resume position survives.
func (db *DB) MarkVideoComplete(videoID, courseID string) error {
	query := `
		INSERT INTO progress (video_id, course_id, current_time, is_completed, last_watched_at)
		VALUES (?, ?, 0, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(video_id) DO UPDATE SET
			is_completed = 1,
			last_watched_at = CURRENT_TIMESTAMP`
	if _, err := db.Exec(query, videoID, courseID); err != nil {
		return fmt.Errorf("failed to mark video complete: %w", err)
	}
	return nil
}

// GetProgress returns the progress row for a video, or nil if the video has
// never been watched.
func (db *DB) GetProgress(videoID string) (*domain.Progress, error) {
	var p domain.Progress
	err := db.Get(&p,
		`SELECT video_id, course_id, "current_time", is_completed, last_watched_at FROM progress WHERE video_id = ?`,
		videoID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return &p, nil
}

// ResetVideoProgress deletes the progress row for one video. A no-op when
// none exists.
func (db *DB) ResetVideoProgress(videoID string) error {
	if _, err := db.Exec("DELETE FROM progress WHERE video_id = ?", videoID); err != nil {
		return fmt.Errorf("failed to reset video progress: %w", err)
	}
	return nil
}

// ResetCourseProgress deletes every progress row belonging to a course.
func (db *DB) ResetCourseProgress(courseID string) error {
	if _, err := db.Exec("DELETE FROM progress WHERE course_id = ?", courseID); err != nil {
		return fmt.Errorf("failed to reset course progress: %w", err)
	}
	return nil
}
