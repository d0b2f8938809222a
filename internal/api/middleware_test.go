package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoran/taskboard/internal/auth/token"
)

func TestProtectedRoutesRequireAuthHeader(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/tasks"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodPatch, "/api/tasks/some-id"},
		{http.MethodDelete, "/api/tasks/some-id"},
	}
	for _, tc := range paths {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: status = %d, want 401", tc.method, tc.path, w.Code)
		}
		var body errorBody
		decodeBody(t, w, &body)
		if body.Error != "Authentication required" {
			t.Fatalf("%s %s: error = %q", tc.method, tc.path, body.Error)
		}
	}
}

func TestGarbageTokenIsRejected(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)
	w := doJSON(t, handler, http.MethodGet, "/api/tasks", "not-a-real-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var body errorBody
	decodeBody(t, w, &body)
	if body.Error != "Invalid token" {
		t.Fatalf("error = %q", body.Error)
	}
}

func TestTokenSignedWithOtherSecretIsRejected(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)
	_, userID := register(t, handler, "a@x.com")

	forger, err := token.NewIssuer([]byte("attacker-secret"))
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	forged, err := forger.Issue(userID)
	if err != nil {
		t.Fatalf("issue forged token: %v", err)
	}

	w := doJSON(t, handler, http.MethodGet, "/api/tasks", forged, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)
	_, userID := register(t, handler, "a@x.com")

	// Same secret, but already past its expiry when verified.
	shortLived, err := token.NewIssuerWithOptions(testSecret, time.Nanosecond, time.Now)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	expired, err := shortLived.Issue(userID)
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}
	time.Sleep(time.Millisecond)

	w := doJSON(t, handler, http.MethodGet, "/api/tasks", expired, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var body errorBody
	decodeBody(t, w, &body)
	if body.Error != "Invalid token" {
		t.Fatalf("expired and malformed tokens must share one message, got %q", body.Error)
	}
}

func TestHeaderWithoutBearerPrefixIsRejected(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
