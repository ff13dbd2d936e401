package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"riskmonitor/internal/alert"
	"riskmonitor/internal/database"
)

// handleDBError handles database errors and writes appropriate HTTP responses.
// Returns true if error was handled, false otherwise.
func handleDBError(w http.ResponseWriter, err error, resource string, resourceID string) bool {
	if err == nil {
		return false
	}

	slog.Error("Database error", "error", err, "resource", resource, "resource_id", resourceID)

	if errors.Is(err, database.ErrNotFound) {
		http.Error(w, capitalize(resource)+" not found", http.StatusNotFound)
		return true
	}
	if strings.Contains(err.Error(), "already exists") {
		http.Error(w, capitalize(resource)+" already exists", http.StatusConflict)
		return true
	}

	return false
}

// handleLifecycleError maps alert lifecycle violations to HTTP responses.
// Returns true if error was handled, false otherwise.
func handleLifecycleError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, alert.ErrAlreadyTerminal) {
		http.Error(w, err.Error(), http.StatusConflict)
		return true
	}
	if errors.Is(err, alert.ErrEmptyNotes) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return true
	}
	if errors.Is(err, alert.ErrStatusRegression) {
		http.Error(w, err.Error(), http.StatusConflict)
		return true
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
