package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "github.com/jmoran/taskboard/internal/platform/errors"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(payload)
}

// writeError performs the single translation from a domain error to a status
// code and an {error: message} body. Unexpected failures are logged with
// their detail and surfaced as an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		status := domainErr.Code.HTTPStatus()
		if status != http.StatusInternalServerError {
			writeJSON(w, status, errorResponse{Error: domainErr.Message})
			return
		}
	}
	log.Printf("internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
}
