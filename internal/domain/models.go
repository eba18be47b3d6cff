package domain

import (
	"time"
)

// Course is an imported folder of videos, the top-level organizational unit.
type Course struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Path      string    `json:"path" db:"path"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Section is a subdirectory of a course containing videos.
type Section struct {
	ID         string `json:"id" db:"id"`
	CourseID   string `json:"course_id" db:"course_id"`
	Title      string `json:"title" db:"title"`
	OrderIndex int    `json:"order_index" db:"order_index"`
}

// Video is a single video file belonging to a course. SectionID is nil for
// videos living directly in the course root. OrderIndex is assigned once at
// import time as one global counter per course and fixes autoplay order.
type Video struct {
	ID         string  `json:"id" db:"id"`
	CourseID   string  `json:"course_id" db:"course_id"`
	SectionID  *string `json:"section_id" db:"section_id"`
	Title      string  `json:"title" db:"title"`
	Path       string  `json:"path" db:"path"`
	Duration   float64 `json:"duration" db:"duration"`
	OrderIndex int     `json:"order_index" db:"order_index"`
}

// Progress is the last known playback position and completion flag for one
// video. Absent until the first playback tick.
type Progress struct {
	VideoID       string    `json:"video_id" db:"video_id"`
	CourseID      string    `json:"course_id" db:"course_id"`
	CurrentTime   float64   `json:"current_time" db:"current_time"`
	IsCompleted   bool      `json:"is_completed" db:"is_completed"`
	LastWatchedAt time.Time `json:"last_watched_at" db:"last_watched_at"`
}

// VideoWithProgress is a video joined with its optional progress row. The
// progress fields are nil when the video has never been watched.
type VideoWithProgress struct {
	Video
	CurrentTime   *float64   `json:"current_time" db:"current_time"`
	IsCompleted   *bool      `json:"is_completed" db:"is_completed"`
	LastWatchedAt *time.Time `json:"last_watched_at" db:"last_watched_at"`
}

// Started reports whether the video has a progress row.
func (v *VideoWithProgress) Started() bool {
	return v.CurrentTime != nil
}

// Completed reports whether the video has been watched to completion.
func (v *VideoWithProgress) Completed() bool {
	return v.IsCompleted != nil && *v.IsCompleted
}

// SectionWithVideos is a section with its videos in order.
type SectionWithVideos struct {
	Section
	Videos []VideoWithProgress `json:"videos"`
}

// CourseSummary is a course with aggregate watch statistics.
type CourseSummary struct {
	Course
	TotalVideos     int        `json:"total_videos" db:"total_videos"`
	StartedVideos   int        `json:"started_videos" db:"started_videos"`
	CompletedVideos int        `json:"completed_videos" db:"completed_videos"`
	LastAccessed    *time.Time `json:"last_accessed" db:"-"`
}

// Percent returns the completed fraction of the course as 0-100.
func (s *CourseSummary) Percent() float64 {
	if s.TotalVideos == 0 {
		return 0
	}
	return float64(s.CompletedVideos) / float64(s.TotalVideos) * 100
}

// CourseDetail is the full course hierarchy with per-video progress.
type CourseDetail struct {
	Course
	RootVideos []VideoWithProgress `json:"root_videos"`
	Sections   []SectionWithVideos `json:"sections"`
}

// ScannedVideo is one video file discovered by the folder scanner. Name is
// the filename without extension; Path is absolute.
type ScannedVideo struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ScannedSection is one immediate subdirectory with at least one video.
type ScannedSection struct {
	Name   string         `json:"name"`
	Path   string         `json:"path"`
	Videos []ScannedVideo `json:"videos"`
}

// CourseStructure is the scanner's view of a course folder: root videos plus
// one level of sections, all naturally sorted.
type CourseStructure struct {
	Videos   []ScannedVideo   `json:"videos"`
	Sections []ScannedSection `json:"sections"`
}

// VideoCount returns the total number of videos in the structure.
func (s *CourseStructure) VideoCount() int {
	n := len(s.Videos)
	for _, sec := range s.Sections {
		n += len(sec.Videos)
	}
	return n
}

// DailyLearning is one calendar day's accumulated learning time.
type DailyLearning struct {
	Date            string `json:"date" db:"date"`
	DurationSeconds int64  `json:"duration_seconds" db:"duration_seconds"`
}
