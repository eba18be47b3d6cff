package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"coursetrack/internal/domain"
)

// AddCourse inserts a course with its full scanned hierarchy in one
// transaction. order_index is one global counter per course: root videos
// first, then each section's videos in section order. Returns the new
// course id.
func (db *DB) AddCourse(title, coursePath string, structure *domain.CourseStructure) (string, error) {
	tx, err := db.Beginx()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op once committed

	courseID := uuid.NewString()
	if _, err := tx.Exec(
		"INSERT INTO courses (id, title, path) VALUES (?, ?, ?)",
		courseID, title, coursePath,
	); err != nil {
		return "", fmt.Errorf("failed to insert course: %w", err)
	}

	videoOrder := 0
	insertVideo := func(sectionID *string, v domain.ScannedVideo) error {
		_, err := tx.Exec(
			"INSERT INTO videos (id, course_id, section_id, title, path, order_index) VALUES (?, ?, ?, ?, ?, ?)",
			uuid.NewString(), courseID, sectionID, v.Name, v.Path, videoOrder,
		)
		videoOrder++
		return err
	}

	for _, v := range structure.Videos {
		if err := insertVideo(nil, v); err != nil {
			return "", fmt.Errorf("failed to insert root video %q: %w", v.Name, err)
		}
	}

	for sectionOrder, section := range structure.Sections {
		sectionID := uuid.NewString()
		if _, err := tx.Exec(
			"INSERT INTO sections (id, course_id, title, order_index) VALUES (?, ?, ?, ?)",
			sectionID, courseID, section.Name, sectionOrder,
		); err != nil {
			return "", fmt.Errorf("failed to insert section %q: %w", section.Name, err)
		}

		for _, v := range section.Videos {
			if err := insertVideo(&sectionID, v); err != nil {
				return "", fmt.Errorf("failed to insert video %q in section %q: %w", v.Name, section.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit course import: %w", err)
	}
	return courseID, nil
}

type courseSummaryRow struct {
	domain.CourseSummary
	LastAccessedRaw sql.NullString `db:"last_accessed"`
}

// ListCourses returns every course with aggregate watch counts, most recent
// activity first. Courses with no progress fall back to their creation time.
func (db *DB) ListCourses() ([]domain.CourseSummary, error) {
	query := `
		SELECT
			c.id, c.title, c.path, c.created_at,
			COUNT(v.id) AS total_videos,
			COUNT(p.video_id) AS started_videos,
			COALESCE(SUM(CASE WHEN p.is_completed = 1 THEN 1 ELSE 0 END), 0) AS completed_videos,
			MAX(p.last_watched_at) AS last_accessed
		FROM courses c
		LEFT JOIN videos v ON v.course_id = c.id
		LEFT JOIN progress p ON p.video_id = v.id
		GROUP BY c.id
		ORDER BY COALESCE(MAX(p.last_watched_at), c.created_at) DESC`

	var rows []courseSummaryRow
	if err := db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	summaries := make([]domain.CourseSummary, 0, len(rows))
	for _, row := range rows {
		summary := row.CourseSummary
		if row.LastAccessedRaw.Valid {
			ts, err := parseTimestamp(row.LastAccessedRaw.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse last_accessed for course %s: %w", summary.ID, err)
			}
			summary.LastAccessed = &ts
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetCourseDetails returns the course with its root videos and sections,
// each video joined with its progress. Returns nil for an unknown id.
func (db *DB) GetCourseDetails(courseID string) (*domain.CourseDetail, error) {
	var course domain.Course
	err := db.Get(&course, "SELECT id, title, path, created_at FROM courses WHERE id = ?", courseID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	var sections []domain.Section
	if err := db.Select(&sections,
		"SELECT id, course_id, title, order_index FROM sections WHERE course_id = ? ORDER BY order_index",
		courseID,
	); err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}

	var videos []domain.VideoWithProgress
	videoQuery := `
		SELECT
			v.id, v.course_id, v.section_id, v.title, v.path, v.duration, v.order_index,
			p.current_time, p.is_completed, p.last_watched_at
		FROM videos v
		LEFT JOIN progress p ON p.video_id = v.id
		WHERE v.course_id = ?
		ORDER BY v.order_index`
	if err := db.Select(&videos, videoQuery, courseID); err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}

	detail := &domain.CourseDetail{
		Course:     course,
		RootVideos: []domain.VideoWithProgress{},
		Sections:   make([]domain.SectionWithVideos, 0, len(sections)),
	}

	sectionIndex := make(map[string]int, len(sections))
	for i, s := range sections {
		sectionIndex[s.ID] = i
		detail.Sections = append(detail.Sections, domain.SectionWithVideos{
			Section: s,
			Videos:  []domain.VideoWithProgress{},
		})
	}

	for _, v := range videos {
		if v.SectionID == nil {
			detail.RootVideos = append(detail.RootVideos, v)
			continue
		}
		if i, ok := sectionIndex[*v.SectionID]; ok {
			detail.Sections[i].Videos = append(detail.Sections[i].Videos, v)
		}
	}

	return detail, nil
}

// DeleteCourse removes the course; sections, videos, and progress go with it
// via cascade. A no-op for an unknown id.
func (db *DB) DeleteCourse(courseID string) error {
	if _, err := db.Exec("DELETE FROM courses WHERE id = ?", courseID); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}
