package dto

import (
	"path/filepath"

	"coursetrack/internal/domain"
)

// ImportCourseRequest asks the server to scan a local folder and register it
// as a course. The folder is read in place, never copied.
type ImportCourseRequest struct {
	Path string `json:"path"`
}

func (r *ImportCourseRequest) Validate() []ValidationError {
	errs := validateRequired("path", r.Path)
	if len(errs) == 0 && !filepath.IsAbs(r.Path) {
		errs = append(errs, ValidationError{Field: "path", Message: "must be an absolute path"})
	}
	return errs
}

// SaveProgressRequest is one playback tick from the video player.
type SaveProgressRequest struct {
	VideoID     string  `json:"video_id"`
	CourseID    string  `json:"course_id"`
	CurrentTime float64 `json:"current_time"`
	IsCompleted bool    `json:"is_completed"`
}

func (r *SaveProgressRequest) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateRequired("video_id", r.VideoID)...)
	errs = append(errs, validateRequired("course_id", r.CourseID)...)
	if r.CurrentTime < 0 {
		errs = append(errs, ValidationError{Field: "current_time", Message: "cannot be negative"})
	}
	return errs
}

type MarkCompleteRequest struct {
	CourseID string `json:"course_id"`
}

func (r *MarkCompleteRequest) Validate() []ValidationError {
	return validateRequired("course_id", r.CourseID)
}

type SetSettingRequest struct {
	Value string `json:"value"`
}

type RecordLearningRequest struct {
	Seconds int64 `json:"seconds"`
}

func (r *RecordLearningRequest) Validate() []ValidationError {
	if r.Seconds <= 0 {
		return []ValidationError{{Field: "seconds", Message: "must be positive"}}
	}
	return nil
}

// Responses

type ImportCourseResponse struct {
	CourseID  string                  `json:"course_id"`
	Title     string                  `json:"title"`
	Structure *domain.CourseStructure `json:"structure"`
}

type SettingResponse struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

type LearningTimeResponse struct {
	Seconds int64 `json:"seconds"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
