package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/richard-senior/livexg/internal/logger"
	"github.com/richard-senior/livexg/pkg/util/livexg"
)

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	if errors.Is(err, livexg.ErrPresetNotFound) {
		return http.StatusNotFound
	}
	// everything else the service refuses is a well formed but unusable snapshot
	return http.StatusUnprocessableEntity
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response:", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed:", err)
	} else {
		logger.Debug("Request rejected:", status, err)
	}
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed on %s", r.Method, r.URL.Path))
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, fmt.Errorf("no route for %s", r.URL.Path))
}
