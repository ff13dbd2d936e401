// Package monitor defines the per-client watch configuration: which risk
// categories a client has opted in to and the category-specific parameters
// that control what the upstream feeds should report.
package monitor

import (
	"time"
)

// Category identifies a risk category a client can watch.
type Category string

const (
	CategoryMeteorological Category = "meteorological"
	CategoryTraffic        Category = "traffic"
	CategoryCorporate      Category = "corporate"
)

// Categories lists every valid category in a stable order.
var Categories = []Category{CategoryMeteorological, CategoryTraffic, CategoryCorporate}

// Valid reports whether the category belongs to the closed set.
func (c Category) Valid() bool {
	switch c {
	case CategoryMeteorological, CategoryTraffic, CategoryCorporate:
		return true
	}
	return false
}

// WarningLevel is an AEMET weather warning level, ordered by severity.
type WarningLevel string

const (
	WarningYellow WarningLevel = "yellow"
	WarningOrange WarningLevel = "orange"
	WarningRed    WarningLevel = "red"
)

// warningRank orders warning levels: yellow < orange < red.
var warningRank = map[WarningLevel]int{
	WarningYellow: 1,
	WarningOrange: 2,
	WarningRed:    3,
}

// Valid reports whether the warning level belongs to the closed set.
func (w WarningLevel) Valid() bool {
	_, ok := warningRank[w]
	return ok
}

// AtLeast reports whether w is at least as severe as min.
// Unknown levels never satisfy the threshold.
func (w WarningLevel) AtLeast(min WarningLevel) bool {
	wr, ok := warningRank[w]
	if !ok {
		return false
	}
	mr, ok := warningRank[min]
	if !ok {
		return false
	}
	return wr >= mr
}

// Area is the geographic scope of a traffic watch.
type Area string

const (
	AreaMunicipality Area = "municipality"
	AreaRoute        Area = "route"
	AreaProvince     Area = "province"
)

// Valid reports whether the area belongs to the closed set.
func (a Area) Valid() bool {
	switch a {
	case AreaMunicipality, AreaRoute, AreaProvince:
		return true
	}
	return false
}

// IncidentScope selects which traffic incidents fire an alert.
type IncidentScope string

const (
	ScopeAll          IncidentScope = "all"
	ScopeSevereOnly   IncidentScope = "severeOnly"
	ScopeClosuresOnly IncidentScope = "closuresOnly"
)

// Valid reports whether the incident scope belongs to the closed set.
func (s IncidentScope) Valid() bool {
	switch s {
	case ScopeAll, ScopeSevereOnly, ScopeClosuresOnly:
		return true
	}
	return false
}

// ActType is a corporate-registry (BORME) act type from the fixed catalog.
type ActType string

const (
	ActCapitalIncrease     ActType = "capitalIncrease"
	ActCapitalReduction    ActType = "capitalReduction"
	ActDissolution         ActType = "dissolution"
	ActBankruptcy          ActType = "bankruptcy"
	ActMerger              ActType = "merger"
	ActAdministratorChange ActType = "administratorChange"
	ActFormChange          ActType = "formChange"
)

// ActCatalog is the fixed set of watchable registry act types.
var ActCatalog = map[ActType]struct{}{
	ActCapitalIncrease:     {},
	ActCapitalReduction:    {},
	ActDissolution:         {},
	ActBankruptcy:          {},
	ActMerger:              {},
	ActAdministratorChange: {},
	ActFormChange:          {},
}

// Valid reports whether the act type belongs to the fixed catalog.
func (a ActType) Valid() bool {
	_, ok := ActCatalog[a]
	return ok
}

// MeteorologicalParams configures a weather watch.
type MeteorologicalParams struct {
	MinWarningLevel WarningLevel `json:"min_warning_level"`
}

// TrafficParams configures a traffic-incident watch.
type TrafficParams struct {
	AreaOfInterest Area          `json:"area_of_interest"`
	IncidentScope  IncidentScope `json:"incident_scope"`
}

// CorporateParams configures a registry-filing watch.
type CorporateParams struct {
	WatchedActs []ActType `json:"watched_acts"`
}

// Rule is one client's watch configuration for one risk category.
// Exactly one rule exists per (client, category) pair; updates replace.
// The parameter variant matching Category is always populated, even while
// Active is false, so re-activation restores prior settings. Evaluators must
// check IsEffective before consulting the variant.
type Rule struct {
	ClientID string   `json:"client_id"`
	Category Category `json:"category"`
	Active   bool     `json:"active"`

	Meteorological *MeteorologicalParams `json:"meteorological,omitempty"`
	Traffic        *TrafficParams        `json:"traffic,omitempty"`
	Corporate      *CorporateParams      `json:"corporate,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRule returns the default rule for a (client, category) pair: inactive
// with default parameters. A client with no stored rule for a category is
// equivalent to this.
func NewRule(clientID string, category Category) Rule {
	r := Rule{
		ClientID: clientID,
		Category: category,
		Active:   false,
	}
	r.fillDefaults()
	return r
}

// fillDefaults populates the parameter variant for the rule's category when
// it is absent. Variants for other categories are left untouched.
func (r *Rule) fillDefaults() {
	switch r.Category {
	case CategoryMeteorological:
		if r.Meteorological == nil {
			r.Meteorological = &MeteorologicalParams{MinWarningLevel: WarningOrange}
		}
	case CategoryTraffic:
		if r.Traffic == nil {
			r.Traffic = &TrafficParams{
				AreaOfInterest: AreaMunicipality,
				IncidentScope:  ScopeSevereOnly,
			}
		}
	case CategoryCorporate:
		if r.Corporate == nil {
			r.Corporate = &CorporateParams{WatchedActs: []ActType{}}
		}
	}
}

// IsEffective reports whether the rule should be evaluated against incoming
// signals. Parameters of an ineffective rule are stored but inert.
func IsEffective(r Rule) bool {
	return r.Active
}
