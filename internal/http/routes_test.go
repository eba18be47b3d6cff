package httpapp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"coursetrack/internal/domain"
	"coursetrack/internal/http/dto"
	"coursetrack/internal/logger"
	"coursetrack/internal/store"
)

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // test cleanup

	r := chi.NewRouter()
	h := NewHandler(db, logger.Default())
	h.RegisterRoutes(r)
	return r
}

func makeCourseFolder(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range []string{"a.mp4", "b.mkv"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	intro := filepath.Join(root, "Intro")
	if err := os.Mkdir(intro, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(intro, "1.mp4"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	return root
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func importCourse(t *testing.T, srv http.Handler) dto.ImportCourseResponse {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/courses", map[string]string{"path": makeCourseFolder(t)})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Import returned %d: %s", rec.Code, rec.Body.String())
	}
	var resp dto.ImportCourseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode import response: %v", err)
	}
	return resp
}

func getCourse(t *testing.T, srv http.Handler, id string) *domain.CourseDetail {
	t.Helper()
	rec := doJSON(t, srv, http.MethodGet, "/api/courses/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GetCourse returned %d: %s", rec.Code, rec.Body.String())
	}
	var detail domain.CourseDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("Failed to decode course detail: %v", err)
	}
	return &detail
}

func TestImportCourse(t *testing.T) {
	srv := setupTestServer(t)

	resp := importCourse(t, srv)
	if resp.CourseID == "" {
		t.Error("Expected course id in import response")
	}
	if len(resp.Structure.Videos) != 2 {
		t.Errorf("Expected 2 root videos in structure, got %d", len(resp.Structure.Videos))
	}
	if len(resp.Structure.Sections) != 1 || resp.Structure.Sections[0].Name != "Intro" {
		t.Errorf("Expected one 'Intro' section, got %+v", resp.Structure.Sections)
	}

	detail := getCourse(t, srv, resp.CourseID)
	if len(detail.RootVideos) != 2 || len(detail.Sections) != 1 {
		t.Errorf("Expected persisted hierarchy to match scan, got %d root / %d sections",
			len(detail.RootVideos), len(detail.Sections))
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/courses", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ListCourses returned %d", rec.Code)
	}
	var summaries []domain.CourseSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("Failed to decode summaries: %v", err)
	}
	if len(summaries) != 1 || summaries[0].TotalVideos != 3 {
		t.Errorf("Expected one course with 3 videos, got %+v", summaries)
	}
}

func TestImportCourseBadRequests(t *testing.T) {
	srv := setupTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/courses", map[string]string{"path": "relative/path"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for relative path, got %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/courses", map[string]string{"path": "/does/not/exist"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing folder, got %d", rec.Code)
	}
}

func TestSaveProgress(t *testing.T) {
	srv := setupTestServer(t)

	resp := importCourse(t, srv)
	detail := getCourse(t, srv, resp.CourseID)
	videoID := detail.RootVideos[0].ID

	rec := doJSON(t, srv, http.MethodPost, "/api/progress", dto.SaveProgressRequest{
		VideoID:     videoID,
		CourseID:    resp.CourseID,
		CurrentTime: 33.5,
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("SaveProgress returned %d: %s", rec.Code, rec.Body.String())
	}

	detail = getCourse(t, srv, resp.CourseID)
	v := detail.RootVideos[0]
	if !v.Started() || *v.CurrentTime != 33.5 {
		t.Errorf("Expected saved progress 33.5, got %+v", v)
	}

	// Missing ids are rejected before touching the store
	rec = doJSON(t, srv, http.MethodPost, "/api/progress", dto.SaveProgressRequest{CurrentTime: 5})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing ids, got %d", rec.Code)
	}
}

func TestMarkCompleteAndReset(t *testing.T) {
	srv := setupTestServer(t)

	resp := importCourse(t, srv)
	detail := getCourse(t, srv, resp.CourseID)
	videoID := detail.Sections[0].Videos[0].ID

	rec := doJSON(t, srv, http.MethodPost, "/api/videos/"+videoID+"/complete",
		dto.MarkCompleteRequest{CourseID: resp.CourseID})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("MarkVideoComplete returned %d: %s", rec.Code, rec.Body.String())
	}

	detail = getCourse(t, srv, resp.CourseID)
	if !detail.Sections[0].Videos[0].Completed() {
		t.Error("Expected video to be completed")
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/videos/"+videoID+"/progress", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("ResetVideoProgress returned %d", rec.Code)
	}

	detail = getCourse(t, srv, resp.CourseID)
	if detail.Sections[0].Videos[0].Started() {
		t.Error("Expected progress to be gone after reset")
	}

	// Course-wide reset is also a no-op when nothing is left
	rec = doJSON(t, srv, http.MethodDelete, "/api/courses/"+resp.CourseID+"/progress", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("ResetCourseProgress returned %d", rec.Code)
	}
}

func TestDeleteCourse(t *testing.T) {
	srv := setupTestServer(t)

	resp := importCourse(t, srv)

	rec := doJSON(t, srv, http.MethodDelete, "/api/courses/"+resp.CourseID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DeleteCourse returned %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/courses/"+resp.CourseID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", rec.Code)
	}

	// Idempotent
	rec = doJSON(t, srv, http.MethodDelete, "/api/courses/"+resp.CourseID, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected idempotent delete, got %d", rec.Code)
	}
}

func TestSettings(t *testing.T) {
	srv := setupTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/settings/autoplay", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GetSetting returned %d", rec.Code)
	}
	var setting dto.SettingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &setting); err != nil {
		t.Fatal(err)
	}
	if setting.Value == nil || *setting.Value != "true" {
		t.Errorf("Expected seeded autoplay=true, got %+v", setting)
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/settings/autoplay", dto.SetSettingRequest{Value: "false"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("SetSetting returned %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/settings/autoplay", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &setting); err != nil {
		t.Fatal(err)
	}
	if setting.Value == nil || *setting.Value != "false" {
		t.Errorf("Expected autoplay=false, got %+v", setting)
	}

	// Never-set key comes back as null, not an error
	rec = doJSON(t, srv, http.MethodGet, "/api/settings/theme", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GetSetting returned %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &setting); err != nil {
		t.Fatal(err)
	}
	if setting.Value != nil {
		t.Errorf("Expected null value for unknown key, got %q", *setting.Value)
	}
}

func TestLearningTime(t *testing.T) {
	srv := setupTestServer(t)

	for _, seconds := range []int64{30, 45} {
		rec := doJSON(t, srv, http.MethodPost, "/api/learning", dto.RecordLearningRequest{Seconds: seconds})
		if rec.Code != http.StatusNoContent {
			t.Fatalf("RecordLearning returned %d", rec.Code)
		}
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/learning/today", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("TodayLearning returned %d", rec.Code)
	}
	var resp dto.LearningTimeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Seconds != 75 {
		t.Errorf("Expected 75 accumulated seconds, got %d", resp.Seconds)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/learning", dto.RecordLearningRequest{Seconds: 0})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for zero seconds, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	srv := setupTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Health returned %d", rec.Code)
	}
}
