package revos

import "encoding/json"

// SafeStatus is the status a write operation may assign to a newly created
// entity. It is a closed type: the only values are StatusDraft and
// StatusQueued, both non-terminal, so created records always require a
// separate human confirmation before taking external effect. There is no
// constructor for an active or published status, and the zero value
// marshals as draft rather than as an empty (and server-interpretable)
// string.
type SafeStatus struct {
	value string
}

// StatusDraft marks a created record as an unconfirmed draft.
var StatusDraft = SafeStatus{value: "draft"}

// StatusQueued marks a created record as queued pending review.
var StatusQueued = SafeStatus{value: "queued"}

// String returns the wire value.
func (s SafeStatus) String() string {
	if s.value == "" {
		return StatusDraft.value
	}
	return s.value
}

// MarshalJSON encodes the wire value.
func (s SafeStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts only the two safe values; anything else collapses to
// draft. Decoding a server echo must never smuggle in a terminal status.
func (s *SafeStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == StatusQueued.value {
		*s = StatusQueued
	} else {
		*s = StatusDraft
	}
	return nil
}
