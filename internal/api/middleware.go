package api

import (
	"net/http"
	"strings"

	apperrors "github.com/jmoran/taskboard/internal/platform/errors"
	"github.com/jmoran/taskboard/internal/platform/requestctx"
)

var (
	// errMissingToken is returned when the Authorization header is absent.
	errMissingToken = apperrors.New(apperrors.CodeUnauthenticated, "Authentication required")
	// errInvalidToken covers every verification failure; callers cannot tell
	// a malformed token from an expired one.
	errInvalidToken = apperrors.New(apperrors.CodeUnauthenticated, "Invalid token")
)

// requireAuth gates protected operations behind bearer token verification.
// On success the resolved user id is attached to the request context for the
// downstream handler; there are no other side effects.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" {
			writeError(w, errMissingToken)
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		userID, err := h.tokens.Verify(raw)
		if err != nil {
			writeError(w, errInvalidToken)
			return
		}
		next.ServeHTTP(w, r.WithContext(requestctx.WithUserID(r.Context(), userID)))
	})
}
