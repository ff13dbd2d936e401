package monitor

import (
	"testing"
)

func TestWarningLevelAtLeast(t *testing.T) {
	tests := []struct {
		name  string
		level WarningLevel
		min   WarningLevel
		want  bool
	}{
		{"red satisfies orange", WarningRed, WarningOrange, true},
		{"orange satisfies orange", WarningOrange, WarningOrange, true},
		{"yellow fails orange", WarningYellow, WarningOrange, false},
		{"yellow satisfies yellow", WarningYellow, WarningYellow, true},
		{"red satisfies yellow", WarningRed, WarningYellow, true},
		{"orange fails red", WarningOrange, WarningRed, false},
		{"unknown level never satisfies", WarningLevel("purple"), WarningYellow, false},
		{"unknown threshold never satisfied", WarningRed, WarningLevel("purple"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.AtLeast(tt.min); got != tt.want {
				t.Errorf("AtLeast(%q, %q) = %v, want %v", tt.level, tt.min, got, tt.want)
			}
		})
	}
}

func TestNewRuleDefaults(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		check    func(t *testing.T, r Rule)
	}{
		{
			name:     "meteorological defaults to orange",
			category: CategoryMeteorological,
			check: func(t *testing.T, r Rule) {
				if r.Meteorological == nil {
					t.Fatal("Meteorological params not populated")
				}
				if r.Meteorological.MinWarningLevel != WarningOrange {
					t.Errorf("MinWarningLevel = %q, want %q", r.Meteorological.MinWarningLevel, WarningOrange)
				}
			},
		},
		{
			name:     "traffic defaults to municipality and severeOnly",
			category: CategoryTraffic,
			check: func(t *testing.T, r Rule) {
				if r.Traffic == nil {
					t.Fatal("Traffic params not populated")
				}
				if r.Traffic.AreaOfInterest != AreaMunicipality {
					t.Errorf("AreaOfInterest = %q, want %q", r.Traffic.AreaOfInterest, AreaMunicipality)
				}
				if r.Traffic.IncidentScope != ScopeSevereOnly {
					t.Errorf("IncidentScope = %q, want %q", r.Traffic.IncidentScope, ScopeSevereOnly)
				}
			},
		},
		{
			name:     "corporate defaults to empty act set",
			category: CategoryCorporate,
			check: func(t *testing.T, r Rule) {
				if r.Corporate == nil {
					t.Fatal("Corporate params not populated")
				}
				if len(r.Corporate.WatchedActs) != 0 {
					t.Errorf("WatchedActs = %v, want empty", r.Corporate.WatchedActs)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRule("client-1", tt.category)
			if r.Active {
				t.Error("new rule should be inactive")
			}
			if IsEffective(r) {
				t.Error("new rule should not be effective")
			}
			tt.check(t, r)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		rule      Rule
		wantErr   bool
		wantField string
	}{
		{
			name:    "valid meteorological rule",
			rule:    Rule{ClientID: "client-1", Category: CategoryMeteorological, Meteorological: &MeteorologicalParams{MinWarningLevel: WarningRed}},
			wantErr: false,
		},
		{
			name:      "empty client id",
			rule:      Rule{Category: CategoryMeteorological},
			wantErr:   true,
			wantField: "client_id",
		},
		{
			name:      "unknown category",
			rule:      Rule{ClientID: "client-1", Category: Category("seismic")},
			wantErr:   true,
			wantField: "category",
		},
		{
			name:      "unknown warning level",
			rule:      Rule{ClientID: "client-1", Category: CategoryMeteorological, Meteorological: &MeteorologicalParams{MinWarningLevel: "purple"}},
			wantErr:   true,
			wantField: "min_warning_level",
		},
		{
			name:      "unknown area",
			rule:      Rule{ClientID: "client-1", Category: CategoryTraffic, Traffic: &TrafficParams{AreaOfInterest: "country", IncidentScope: ScopeAll}},
			wantErr:   true,
			wantField: "area_of_interest",
		},
		{
			name:      "unknown incident scope",
			rule:      Rule{ClientID: "client-1", Category: CategoryTraffic, Traffic: &TrafficParams{AreaOfInterest: AreaRoute, IncidentScope: "everything"}},
			wantErr:   true,
			wantField: "incident_scope",
		},
		{
			name: "act outside catalog rejects whole set",
			rule: Rule{ClientID: "client-1", Category: CategoryCorporate, Corporate: &CorporateParams{
				WatchedActs: []ActType{ActMerger, ActType("ipoFiling")},
			}},
			wantErr:   true,
			wantField: "watched_acts",
		},
		{
			name: "full act catalog accepted",
			rule: Rule{ClientID: "client-1", Category: CategoryCorporate, Corporate: &CorporateParams{
				WatchedActs: []ActType{
					ActCapitalIncrease, ActCapitalReduction, ActDissolution,
					ActBankruptcy, ActMerger, ActAdministratorChange, ActFormChange,
				},
			}},
			wantErr: false,
		},
		{
			name:    "inactive rule parameters still validated",
			rule:    Rule{ClientID: "client-1", Category: CategoryMeteorological, Active: false, Meteorological: &MeteorologicalParams{MinWarningLevel: "purple"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.rule)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && tt.wantField != "" {
				verr, ok := err.(*ValidationError)
				if !ok {
					t.Fatalf("Validate() error type = %T, want *ValidationError", err)
				}
				if verr.Field != tt.wantField {
					t.Errorf("ValidationError.Field = %q, want %q", verr.Field, tt.wantField)
				}
			}
		})
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	r := Rule{ClientID: "client-1", Category: CategoryTraffic}
	validated, err := Validate(r)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if validated.Traffic == nil {
		t.Fatal("Traffic params not filled")
	}
	if validated.Traffic.AreaOfInterest != AreaMunicipality || validated.Traffic.IncidentScope != ScopeSevereOnly {
		t.Errorf("Traffic defaults = %+v, want municipality/severeOnly", validated.Traffic)
	}
}

func TestMergeTogglePreservesParams(t *testing.T) {
	existing := Rule{
		ClientID:       "client-1",
		Category:       CategoryMeteorological,
		Active:         true,
		Meteorological: &MeteorologicalParams{MinWarningLevel: WarningRed},
	}

	off := false
	merged := Merge(existing, Patch{Active: &off})

	if merged.Active {
		t.Error("Active = true, want false")
	}
	if merged.Meteorological.MinWarningLevel != WarningRed {
		t.Errorf("MinWarningLevel = %q, want %q after toggle", merged.Meteorological.MinWarningLevel, WarningRed)
	}
}

func TestMergePartialTrafficPatch(t *testing.T) {
	existing := Rule{
		ClientID: "client-1",
		Category: CategoryTraffic,
		Active:   true,
		Traffic:  &TrafficParams{AreaOfInterest: AreaRoute, IncidentScope: ScopeClosuresOnly},
	}

	scope := ScopeAll
	merged := Merge(existing, Patch{Traffic: &TrafficPatch{IncidentScope: &scope}})

	if merged.Traffic.IncidentScope != ScopeAll {
		t.Errorf("IncidentScope = %q, want %q", merged.Traffic.IncidentScope, ScopeAll)
	}
	if merged.Traffic.AreaOfInterest != AreaRoute {
		t.Errorf("AreaOfInterest = %q, want %q (untouched)", merged.Traffic.AreaOfInterest, AreaRoute)
	}
	// The existing rule must not be modified through shared pointers.
	if existing.Traffic.IncidentScope != ScopeClosuresOnly {
		t.Errorf("existing IncidentScope mutated to %q", existing.Traffic.IncidentScope)
	}
}

func TestMergeReplacesWatchedActsWholesale(t *testing.T) {
	existing := Rule{
		ClientID:  "client-1",
		Category:  CategoryCorporate,
		Corporate: &CorporateParams{WatchedActs: []ActType{ActMerger, ActBankruptcy}},
	}

	acts := []ActType{ActDissolution}
	merged := Merge(existing, Patch{Corporate: &CorporatePatch{WatchedActs: &acts}})

	if len(merged.Corporate.WatchedActs) != 1 || merged.Corporate.WatchedActs[0] != ActDissolution {
		t.Errorf("WatchedActs = %v, want [dissolution]", merged.Corporate.WatchedActs)
	}
	if len(existing.Corporate.WatchedActs) != 2 {
		t.Errorf("existing WatchedActs mutated to %v", existing.Corporate.WatchedActs)
	}

	// The merged slice is a copy, not an alias of the patch slice.
	acts[0] = ActMerger
	if merged.Corporate.WatchedActs[0] != ActDissolution {
		t.Error("merged WatchedActs aliases the patch slice")
	}
}

func TestMergeStartsFromDefaults(t *testing.T) {
	existing := Rule{ClientID: "client-1", Category: CategoryMeteorological}

	on := true
	merged := Merge(existing, Patch{Active: &on})

	if merged.Meteorological == nil {
		t.Fatal("Meteorological params not filled from defaults")
	}
	if merged.Meteorological.MinWarningLevel != WarningOrange {
		t.Errorf("MinWarningLevel = %q, want default %q", merged.Meteorological.MinWarningLevel, WarningOrange)
	}
	if !merged.Active {
		t.Error("Active = false, want true")
	}
}
