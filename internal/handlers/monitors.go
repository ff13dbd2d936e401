package handlers

import (
	"errors"
	"net/http"

	"riskmonitor/internal/database"
	"riskmonitor/internal/events"
	"riskmonitor/internal/monitor"
)

// MonitorConfigResponse is a client's full watch configuration, one rule per
// category. Categories the client never configured appear as default rules.
type MonitorConfigResponse struct {
	ClientID string         `json:"client_id"`
	Monitors []monitor.Rule `json:"monitors"`
}

// GetMonitorConfig retrieves a client's monitor configuration across all
// categories. Absent rules are reported as the category default (inactive,
// default parameters), so the response always has one entry per category.
func (h *Handlers) GetMonitorConfig(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	h.metrics.RecordReceived()

	clientID, ok := requireQueryParam(w, r, "client_id")
	if !ok {
		return
	}

	ctx := r.Context()
	if _, err := h.db.GetClient(ctx, clientID); err != nil {
		if handleDBError(w, err, "client", clientID) {
			return
		}
		http.Error(w, "Failed to get client: "+err.Error(), http.StatusInternalServerError)
		return
	}

	rules, err := h.db.ListRules(ctx, &clientID)
	if err != nil {
		if handleDBError(w, err, "monitor rule", clientID) {
			return
		}
		http.Error(w, "Failed to list monitor rules: "+err.Error(), http.StatusInternalServerError)
		return
	}

	stored := make(map[monitor.Category]monitor.Rule, len(rules))
	for _, rule := range rules {
		stored[rule.Category] = *rule
	}

	resp := MonitorConfigResponse{
		ClientID: clientID,
		Monitors: make([]monitor.Rule, 0, len(monitor.Categories)),
	}
	for _, category := range monitor.Categories {
		rule, ok := stored[category]
		if !ok {
			rule = monitor.NewRule(clientID, category)
		}
		resp.Monitors = append(resp.Monitors, rule)
	}

	writeJSON(w, http.StatusOK, resp)
}

// UpdateMonitorRule applies a partial update to one (client, category) rule
// and publishes a monitor.changed event. Fields absent from the patch keep
// their stored values; a client with no stored rule starts from the
// category default.
func (h *Handlers) UpdateMonitorRule(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPut) {
		return
	}
	h.metrics.RecordReceived()

	clientID, ok := requireQueryParam(w, r, "client_id")
	if !ok {
		return
	}
	category, ok := requireCategoryParam(w, r)
	if !ok {
		return
	}

	var patch monitor.Patch
	if !decodeJSON(w, r, &patch) {
		return
	}

	h.applyMonitorPatch(w, r, clientID, category, patch)
}

// ToggleMonitorRequest represents a request to toggle monitor active status.
type ToggleMonitorRequest struct {
	Active bool `json:"active"`
}

// ToggleMonitor flips a monitor rule's active flag without touching its
// parameters, so re-activation restores the prior settings.
func (h *Handlers) ToggleMonitor(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	h.metrics.RecordReceived()

	clientID, ok := requireQueryParam(w, r, "client_id")
	if !ok {
		return
	}
	category, ok := requireCategoryParam(w, r)
	if !ok {
		return
	}

	var req ToggleMonitorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	h.applyMonitorPatch(w, r, clientID, category, monitor.Patch{Active: &req.Active})
}

// applyMonitorPatch is the shared write path: load or default the stored
// rule, merge the patch, validate, upsert, then publish the change and
// refresh the snapshot.
func (h *Handlers) applyMonitorPatch(w http.ResponseWriter, r *http.Request, clientID string, category monitor.Category, patch monitor.Patch) {
	ctx := r.Context()

	existing, err := h.db.GetRule(ctx, clientID, category)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			http.Error(w, "Failed to get monitor rule: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defaulted := monitor.NewRule(clientID, category)
		existing = &defaulted
	}

	merged := monitor.Merge(*existing, patch)
	validated, err := monitor.Validate(merged)
	if err != nil {
		var verr *monitor.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to validate monitor rule: "+err.Error(), http.StatusInternalServerError)
		return
	}

	rule, err := h.db.UpsertRule(ctx, validated)
	if err != nil {
		if handleDBError(w, err, "client", clientID) {
			return
		}
		http.Error(w, "Failed to store monitor rule: "+err.Error(), http.StatusInternalServerError)
		return
	}

	action := events.ActionUpdated
	if patch.Active != nil && *patch.Active != existing.Active {
		if rule.Active {
			action = events.ActionActivated
		} else {
			action = events.ActionDisabled
		}
	}
	h.publishMonitorChanged(ctx, rule, action)
	h.refreshSnapshot(ctx)
	h.metrics.IncrementCustom("monitor_rules_written")

	writeJSON(w, http.StatusOK, rule)
}
