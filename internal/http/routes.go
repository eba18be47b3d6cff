package httpapp

import (
	"errors"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"coursetrack/internal/http/dto"
	"coursetrack/internal/scanner"
)

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Post("/courses", h.ImportCourse)
		r.Get("/courses", h.ListCourses)
		r.Get("/courses/{id}", h.GetCourse)
		r.Delete("/courses/{id}", h.DeleteCourse)
		r.Delete("/courses/{id}/progress", h.ResetCourseProgress)

		r.Post("/progress", h.SaveProgress)
		r.Post("/videos/{id}/complete", h.MarkVideoComplete)
		r.Delete("/videos/{id}/progress", h.ResetVideoProgress)

		r.Get("/settings/{key}", h.GetSetting)
		r.Put("/settings/{key}", h.SetSetting)

		r.Post("/learning", h.RecordLearning)
		r.Get("/learning/today", h.TodayLearning)
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// ImportCourse scans the requested folder and registers it as a course in
// one transaction. The scan runs first; a filesystem failure aborts the
// import before anything touches the database.
func (h *Handler) ImportCourse(w http.ResponseWriter, r *http.Request) {
	var req dto.ImportCourseRequest
	if !decode(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", dto.ToResponse(errs))
		return
	}

	structure, err := scanner.Scan(req.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, http.StatusNotFound, "FOLDER_NOT_FOUND", "Course folder does not exist")
			return
		}
		h.Logger.Error("Failed to scan course folder", "path", req.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "SCAN_FAILED", "Failed to scan course folder")
		return
	}

	title := filepath.Base(req.Path)
	courseID, err := h.Store.AddCourse(title, req.Path, structure)
	if err != nil {
		h.Logger.Error("Failed to import course", "path", req.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "IMPORT_FAILED", "Failed to import course")
		return
	}

	h.Logger.Info("Course imported", "course_id", courseID, "title", title, "videos", structure.VideoCount())
	writeJSON(w, http.StatusCreated, dto.ImportCourseResponse{
		CourseID:  courseID,
		Title:     title,
		Structure: structure,
	})
}

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.Store.ListCourses()
	if err != nil {
		h.Logger.Error("Failed to list courses", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list courses")
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")

	detail, err := h.Store.GetCourseDetails(courseID)
	if err != nil {
		h.Logger.Error("Failed to get course", "course_id", courseID, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get course")
		return
	}
	if detail == nil {
		writeError(w, http.StatusNotFound, "COURSE_NOT_FOUND", "Course not found")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")

	if err := h.Store.DeleteCourse(courseID); err != nil {
		h.Logger.Error("Failed to delete course", "course_id", courseID, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete course")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ResetCourseProgress(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")

	if err := h.Store.ResetCourseProgress(courseID); err != nil {
		h.Logger.Error("Failed to reset course progress", "course_id", courseID, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reset course progress")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveProgressRequest
	if !decode(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", dto.ToResponse(errs))
		return
	}

	if err := h.Store.UpdateProgress(req.VideoID, req.CourseID, req.CurrentTime, req.IsCompleted); err != nil {
		h.Logger.Error("Failed to save progress", "video_id", req.VideoID, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save progress")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MarkVideoComplete(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")

	var req dto.MarkCompleteRequest
	if !decode(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", dto.ToResponse(errs))
		return
	}

	if err := h.Store.MarkVideoComplete(videoID, req.CourseID); err != nil {
		h.Logger.Error("Failed to mark video complete", "video_id", videoID, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark video complete")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ResetVideoProgress(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")

	if err := h.Store.ResetVideoProgress(videoID); err != nil {
		h.Logger.Error("Failed to reset video progress", "video_id", videoID, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reset video progress")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	value, found, err := h.Store.GetSetting(key)
	if err != nil {
		h.Logger.Error("Failed to get setting", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get setting")
		return
	}

	resp := dto.SettingResponse{Key: key}
	if found {
		resp.Value = &value
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req dto.SetSettingRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.Store.SetSetting(key, req.Value); err != nil {
		h.Logger.Error("Failed to set setting", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to set setting")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RecordLearning(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordLearningRequest
	if !decode(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", dto.ToResponse(errs))
		return
	}

	if err := h.Store.RecordLearningTime(req.Seconds); err != nil {
		h.Logger.Error("Failed to record learning time", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record learning time")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) TodayLearning(w http.ResponseWriter, r *http.Request) {
	seconds, err := h.Store.TodayLearningTime()
	if err != nil {
		h.Logger.Error("Failed to get learning time", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get learning time")
		return
	}
	writeJSON(w, http.StatusOK, dto.LearningTimeResponse{Seconds: seconds})
}
