package handlers

import (
	"encoding/json"
	"net/http"

	"riskmonitor/internal/alert"
	"riskmonitor/internal/monitor"
)

// HTTP helper functions to reduce duplication across handlers.

// requireMethod validates that the request method matches the expected method.
// Returns true if valid, false otherwise (and writes error response).
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// decodeJSON decodes the request body as JSON into the provided value.
// Returns true on success, false on error (and writes error response).
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeJSON writes the value as JSON with appropriate headers.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// requireQueryParam extracts a query parameter and validates it's not empty.
// Returns the value and true if valid, empty string and false otherwise (and writes error response).
func requireQueryParam(w http.ResponseWriter, r *http.Request, paramName string) (string, bool) {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		http.Error(w, paramName+" query parameter is required", http.StatusBadRequest)
		return "", false
	}
	return value, true
}

// requireCategoryParam extracts and validates the category query parameter.
func requireCategoryParam(w http.ResponseWriter, r *http.Request) (monitor.Category, bool) {
	value, ok := requireQueryParam(w, r, "category")
	if !ok {
		return "", false
	}
	category := monitor.Category(value)
	if !category.Valid() {
		http.Error(w, "category must be one of: meteorological, traffic, corporate", http.StatusBadRequest)
		return "", false
	}
	return category, true
}

// optionalCategoryParam extracts the category query parameter if present.
// An invalid value is rejected; an absent one imposes no constraint.
func optionalCategoryParam(w http.ResponseWriter, r *http.Request) (monitor.Category, bool) {
	value := r.URL.Query().Get("category")
	if value == "" {
		return "", true
	}
	category := monitor.Category(value)
	if !category.Valid() {
		http.Error(w, "category must be one of: meteorological, traffic, corporate", http.StatusBadRequest)
		return "", false
	}
	return category, true
}

// optionalStatusParam extracts the status query parameter if present.
func optionalStatusParam(w http.ResponseWriter, r *http.Request) (alert.Status, bool) {
	value := r.URL.Query().Get("status")
	if value == "" {
		return "", true
	}
	status := alert.Status(value)
	if !status.Valid() {
		http.Error(w, "status must be one of: new, seen, managed", http.StatusBadRequest)
		return "", false
	}
	return status, true
}
