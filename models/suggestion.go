package models

// Suggestion is a scored candidate meeting slot. Suggestions are computed on
// demand and never persisted.
type Suggestion struct {
	Slot        Interval `json:"slot"`
	Score       float64  `json:"score"`
	Explanation string   `json:"explanation"`

	// BusyOptionalAttendees lists the optional attendees who are unavailable
	// during the slot, sorted for deterministic output.
	BusyOptionalAttendees []string `json:"busyOptionalAttendees,omitempty"`
}
