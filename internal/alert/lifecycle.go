package alert

import (
	"errors"
	"strings"
)

// Lifecycle violations are reported as typed values so callers can map them
// to operator feedback; none of these operations panic, and a failed
// operation leaves the input record untouched.
var (
	// ErrAlreadyTerminal means a managed alert was asked to take differing
	// notes that would silently destroy the notes recorded at close time.
	ErrAlreadyTerminal = errors.New("alert already managed with different notes")

	// ErrEmptyNotes means an attempt to persist blank operator notes.
	ErrEmptyNotes = errors.New("notes must not be blank")

	// ErrStatusRegression means a transition that would move the status
	// backwards. Exposed for callers that apply raw transitions.
	ErrStatusRegression = errors.New("alert status can only advance")
)

// MarkSeen returns a copy of the record with status seen when the record is
// new. Marking seen is a monotonic assertion, not a strict transition
// request: on a record already seen or managed it returns the record
// unchanged rather than failing.
func MarkSeen(rec Record) Record {
	if rec.Status == StatusNew {
		rec.Status = StatusSeen
	}
	return rec
}

// MarkManaged returns a copy of the record with status managed, reachable
// from both new and seen. Non-empty notes OVERWRITE any previous notes —
// the same policy the operator UI applies; there is no notes history.
//
// Calling MarkManaged again on a managed record is a no-op when notes are
// empty or identical to what is stored. It fails with ErrAlreadyTerminal
// when differing notes would silently replace existing ones.
func MarkManaged(rec Record, notes string) (Record, error) {
	if rec.Status == StatusManaged {
		if notes == "" || notes == rec.Notes {
			return rec, nil
		}
		if rec.Notes != "" {
			return rec, ErrAlreadyTerminal
		}
		rec.Notes = notes
		return rec, nil
	}

	rec.Status = StatusManaged
	if notes != "" {
		rec.Notes = notes
	}
	return rec, nil
}

// SaveNotes returns a copy of the record with the given notes stored
// verbatim, independent of status. Blank text fails with ErrEmptyNotes.
func SaveNotes(rec Record, text string) (Record, error) {
	if strings.TrimSpace(text) == "" {
		return rec, ErrEmptyNotes
	}
	rec.Notes = text
	return rec, nil
}
