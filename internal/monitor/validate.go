package monitor

import (
	"fmt"
)

// ValidationError reports a malformed or out-of-domain configuration field.
// It is always recoverable: correct the named field and validate again.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid monitor rule: %s: %s", e.Field, e.Message)
}

// Validate checks a rule against the closed parameter domains and returns a
// normalized copy: an absent parameter variant for the rule's category is
// filled with defaults, which mirrors how a missing category rule behaves.
// Validation runs on the stored parameters whether or not the rule is
// active. The error, when non-nil, is always a *ValidationError naming the
// offending field.
func Validate(r Rule) (Rule, error) {
	if r.ClientID == "" {
		return Rule{}, &ValidationError{Field: "client_id", Message: "must not be empty"}
	}
	if !r.Category.Valid() {
		return Rule{}, &ValidationError{
			Field:   "category",
			Message: fmt.Sprintf("%q is not one of: meteorological, traffic, corporate", r.Category),
		}
	}

	r.fillDefaults()

	switch r.Category {
	case CategoryMeteorological:
		if !r.Meteorological.MinWarningLevel.Valid() {
			return Rule{}, &ValidationError{
				Field:   "min_warning_level",
				Message: fmt.Sprintf("%q is not one of: yellow, orange, red", r.Meteorological.MinWarningLevel),
			}
		}
	case CategoryTraffic:
		if !r.Traffic.AreaOfInterest.Valid() {
			return Rule{}, &ValidationError{
				Field:   "area_of_interest",
				Message: fmt.Sprintf("%q is not one of: municipality, route, province", r.Traffic.AreaOfInterest),
			}
		}
		if !r.Traffic.IncidentScope.Valid() {
			return Rule{}, &ValidationError{
				Field:   "incident_scope",
				Message: fmt.Sprintf("%q is not one of: all, severeOnly, closuresOnly", r.Traffic.IncidentScope),
			}
		}
	case CategoryCorporate:
		// The whole set fails together: partial acceptance would silently
		// narrow what the client asked to watch.
		for _, act := range r.Corporate.WatchedActs {
			if !act.Valid() {
				return Rule{}, &ValidationError{
					Field:   "watched_acts",
					Message: fmt.Sprintf("%q is not in the act catalog", act),
				}
			}
		}
	}

	return r, nil
}
