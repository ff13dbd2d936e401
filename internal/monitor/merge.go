package monitor

// Patch is a partial update to a rule. Nil fields keep the existing value,
// so toggling Active alone never resets category parameters.
type Patch struct {
	Active         *bool           `json:"active,omitempty"`
	Meteorological *MeteoPatch     `json:"meteorological,omitempty"`
	Traffic        *TrafficPatch   `json:"traffic,omitempty"`
	Corporate      *CorporatePatch `json:"corporate,omitempty"`
}

// MeteoPatch is a partial update to the meteorological parameters.
type MeteoPatch struct {
	MinWarningLevel *WarningLevel `json:"min_warning_level,omitempty"`
}

// TrafficPatch is a partial update to the traffic parameters.
type TrafficPatch struct {
	AreaOfInterest *Area          `json:"area_of_interest,omitempty"`
	IncidentScope  *IncidentScope `json:"incident_scope,omitempty"`
}

// CorporatePatch is a partial update to the corporate parameters.
// WatchedActs replaces the whole set when present.
type CorporatePatch struct {
	WatchedActs *[]ActType `json:"watched_acts,omitempty"`
}

// Merge applies a patch onto an existing rule and returns the result.
// The existing rule is not modified. Parameter variants absent from the
// existing rule start from defaults before the patch is applied.
func Merge(existing Rule, patch Patch) Rule {
	merged := existing
	merged.fillDefaults()

	// Variants are pointers on the struct; copy the one being touched so
	// the caller's rule stays untouched.
	if patch.Active != nil {
		merged.Active = *patch.Active
	}

	if patch.Meteorological != nil && merged.Meteorological != nil {
		params := *merged.Meteorological
		if patch.Meteorological.MinWarningLevel != nil {
			params.MinWarningLevel = *patch.Meteorological.MinWarningLevel
		}
		merged.Meteorological = &params
	}

	if patch.Traffic != nil && merged.Traffic != nil {
		params := *merged.Traffic
		if patch.Traffic.AreaOfInterest != nil {
			params.AreaOfInterest = *patch.Traffic.AreaOfInterest
		}
		if patch.Traffic.IncidentScope != nil {
			params.IncidentScope = *patch.Traffic.IncidentScope
		}
		merged.Traffic = &params
	}

	if patch.Corporate != nil && merged.Corporate != nil {
		params := CorporateParams{WatchedActs: merged.Corporate.WatchedActs}
		if patch.Corporate.WatchedActs != nil {
			acts := make([]ActType, len(*patch.Corporate.WatchedActs))
			copy(acts, *patch.Corporate.WatchedActs)
			params.WatchedActs = acts
		}
		merged.Corporate = &params
	}

	return merged
}
