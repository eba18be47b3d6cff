// Package httpapp exposes the persistence layer to clients through a narrow
// request/response JSON API: one call in, one result or error out.
package httpapp

import (
	"encoding/json"
	"net/http"

	"coursetrack/internal/http/dto"
	"coursetrack/internal/logger"
	"coursetrack/internal/store"
)

const Version = "0.1.0"

type Handler struct {
	Store  *store.DB
	Logger *logger.Logger
}

func NewHandler(db *store.DB, log *logger.Logger) *Handler {
	return &Handler{
		Store:  db,
		Logger: log.WithComponent("http"),
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck // headers already sent
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// decode parses the JSON body into dst, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return false
	}
	return true
}
