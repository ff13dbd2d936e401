package handlers

import (
	"net/http"
	"time"

	"riskmonitor/internal/alert"
)

// filterDateLayout is the wire format for the from/to filter bounds.
// The "to" bound covers the whole named day; the filter engine widens it.
const filterDateLayout = "2006-01-02"

// ListAlerts retrieves alerts newest first, narrowed by the composite
// filter in the query string. All parameters are optional: text, client_id,
// category, status, from, to (dates as YYYY-MM-DD).
func (h *Handlers) ListAlerts(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	h.metrics.RecordReceived()

	category, ok := optionalCategoryParam(w, r)
	if !ok {
		return
	}
	status, ok := optionalStatusParam(w, r)
	if !ok {
		return
	}

	f := alert.Filter{
		Text:     r.URL.Query().Get("text"),
		ClientID: r.URL.Query().Get("client_id"),
		Category: category,
		Status:   status,
	}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(filterDateLayout, fromStr)
		if err != nil {
			http.Error(w, "from must be a date in YYYY-MM-DD format", http.StatusBadRequest)
			return
		}
		f.OccurredFrom = &from
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(filterDateLayout, toStr)
		if err != nil {
			http.Error(w, "to must be a date in YYYY-MM-DD format", http.StatusBadRequest)
			return
		}
		f.OccurredTo = &to
	}

	// The client dimension is pushed down to SQL; the rest of the filter
	// runs in memory over the narrowed set.
	var clientIDPtr *string
	if f.ClientID != "" {
		clientIDPtr = &f.ClientID
	}

	ctx := r.Context()
	alerts, err := h.db.ListAlerts(ctx, clientIDPtr)
	if err != nil {
		if handleDBError(w, err, "alert", "") {
			return
		}
		http.Error(w, "Failed to list alerts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, alert.Apply(alerts, f))
}

// GetAlert retrieves an alert by ID.
func (h *Handlers) GetAlert(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	h.metrics.RecordReceived()

	alertID, ok := requireQueryParam(w, r, "alert_id")
	if !ok {
		return
	}

	ctx := r.Context()
	rec, err := h.db.GetAlert(ctx, alertID)
	if err != nil {
		if handleDBError(w, err, "alert", alertID) {
			return
		}
		http.Error(w, "Failed to get alert: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// ListAlertClients retrieves the deduplicated, sorted client IDs present in
// the alert store, for populating filter dropdowns.
func (h *Handlers) ListAlertClients(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	h.metrics.RecordReceived()

	ctx := r.Context()
	alerts, err := h.db.ListAlerts(ctx, nil)
	if err != nil {
		if handleDBError(w, err, "alert", "") {
			return
		}
		http.Error(w, "Failed to list alerts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, alert.UniqueClients(alerts))
}

// MarkAlertSeen marks an alert as seen. Marking an alert that is already
// seen or managed is a no-op, not an error; the stored record is returned
// either way.
func (h *Handlers) MarkAlertSeen(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	h.metrics.RecordReceived()

	alertID, ok := requireQueryParam(w, r, "alert_id")
	if !ok {
		return
	}

	ctx := r.Context()
	rec, err := h.db.GetAlert(ctx, alertID)
	if err != nil {
		if handleDBError(w, err, "alert", alertID) {
			return
		}
		http.Error(w, "Failed to get alert: "+err.Error(), http.StatusInternalServerError)
		return
	}

	updated := alert.MarkSeen(*rec)
	if updated.Status == rec.Status {
		writeJSON(w, http.StatusOK, rec)
		return
	}

	stored, err := h.db.UpdateAlert(ctx, updated)
	if err != nil {
		if handleDBError(w, err, "alert", alertID) {
			return
		}
		http.Error(w, "Failed to update alert: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stored)
}

// ManageAlertRequest represents a request to mark an alert as managed.
type ManageAlertRequest struct {
	Notes string `json:"notes"`
}

// MarkAlertManaged marks an alert as managed, optionally recording closing
// notes. Non-empty notes overwrite any previous notes.
func (h *Handlers) MarkAlertManaged(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	h.metrics.RecordReceived()

	alertID, ok := requireQueryParam(w, r, "alert_id")
	if !ok {
		return
	}

	var req ManageAlertRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	rec, err := h.db.GetAlert(ctx, alertID)
	if err != nil {
		if handleDBError(w, err, "alert", alertID) {
			return
		}
		http.Error(w, "Failed to get alert: "+err.Error(), http.StatusInternalServerError)
		return
	}

	updated, err := alert.MarkManaged(*rec, req.Notes)
	if err != nil {
		if handleLifecycleError(w, err) {
			return
		}
		http.Error(w, "Failed to manage alert: "+err.Error(), http.StatusInternalServerError)
		return
	}

	stored, err := h.db.UpdateAlert(ctx, updated)
	if err != nil {
		if handleDBError(w, err, "alert", alertID) {
			return
		}
		http.Error(w, "Failed to update alert: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.metrics.IncrementCustom("alerts_managed")

	writeJSON(w, http.StatusOK, stored)
}

// SaveNotesRequest represents a request to save alert notes.
type SaveNotesRequest struct {
	Notes string `json:"notes"`
}

// SaveAlertNotes stores operator notes on an alert without changing its
// status. Blank notes are rejected.
func (h *Handlers) SaveAlertNotes(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	h.metrics.RecordReceived()

	alertID, ok := requireQueryParam(w, r, "alert_id")
	if !ok {
		return
	}

	var req SaveNotesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	rec, err := h.db.GetAlert(ctx, alertID)
	if err != nil {
		if handleDBError(w, err, "alert", alertID) {
			return
		}
		http.Error(w, "Failed to get alert: "+err.Error(), http.StatusInternalServerError)
		return
	}

	updated, err := alert.SaveNotes(*rec, req.Notes)
	if err != nil {
		if handleLifecycleError(w, err) {
			return
		}
		http.Error(w, "Failed to save notes: "+err.Error(), http.StatusInternalServerError)
		return
	}

	stored, err := h.db.UpdateAlert(ctx, updated)
	if err != nil {
		if handleDBError(w, err, "alert", alertID) {
			return
		}
		http.Error(w, "Failed to update alert: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stored)
}
