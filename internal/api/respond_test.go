package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/jmoran/taskboard/internal/platform/errors"
)

func TestWriteErrorTranslatesDomainCode(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, apperrors.New(apperrors.CodeNotFound, "Task not found"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "Task not found" {
		t.Fatalf("error = %q", body.Error)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, fmt.Errorf("sqlite disk I/O error at /var/lib/tasks.db"))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "Internal server error" {
		t.Fatalf("error = %q, internal detail must not leak", body.Error)
	}
}

func TestWriteErrorHidesUnknownDomainCodeDetail(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, apperrors.Wrap(apperrors.CodeUnknown, "persist task", fmt.Errorf("connection reset")))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "Internal server error" {
		t.Fatalf("error = %q", body.Error)
	}
}
