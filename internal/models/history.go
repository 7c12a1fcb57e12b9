package models

import "time"

const (
	EventAccepted  = "accepted"
	EventCompleted = "completed"
	EventShipped   = "shipped"
)

type HistoryEntry struct {
	Event   string    `json:"event"`
	At      time.Time `json:"at"`
	Carrier string    `json:"carrier,omitempty"`
}

// History is an append-only audit trail.
type History []HistoryEntry

// Append returns a new log with entries added at the end. An entry stamped
// earlier than the current tail is moved up to the tail's time so that the
// log stays ordered.
func (h History) Append(entries ...HistoryEntry) History {
	out := make(History, len(h), len(h)+len(entries))
	copy(out, h)
	for _, e := range entries {
		if n := len(out); n > 0 && e.At.Before(out[n-1].At) {
			e.At = out[n-1].At
		}
		out = append(out, e)
	}
	return out
}

func (h History) Last() (HistoryEntry, bool) {
	if len(h) == 0 {
		return HistoryEntry{}, false
	}
	return h[len(h)-1], true
}
