package models

import "strings"

type Status string

const (
	StatusDraft      Status = "draft"
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusShipped    Status = "shipped"
)

var AllStatuses = []Status{
	StatusDraft,
	StatusPending,
	StatusAccepted,
	StatusProcessing,
	StatusCompleted,
	StatusShipped,
}

// Status groups used by the intake, packaging and shipping views.
var (
	DraftAndPending = []Status{StatusDraft, StatusPending}
	InProgress      = []Status{StatusAccepted, StatusProcessing}
	Finished        = []Status{StatusCompleted, StatusShipped}
)

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	return st, st.Valid()
}

func (s Status) Valid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Rank orders statuses for table views. accepted and processing share a rank,
// as do completed and shipped. Unknown statuses sort last.
func (s Status) Rank() int {
	switch s {
	case StatusDraft:
		return 0
	case StatusPending:
		return 1
	case StatusAccepted, StatusProcessing:
		return 2
	case StatusCompleted, StatusShipped:
		return 3
	default:
		return 9
	}
}

// Locked reports whether the order left the editable stages.
func (s Status) Locked() bool {
	return s != StatusDraft && s != StatusPending
}

func (s Status) String() string { return string(s) }

type Predicate func(Order) bool

func InStatus(statuses ...Status) Predicate {
	set := make(map[Status]struct{}, len(statuses))
	for _, st := range statuses {
		set[st] = struct{}{}
	}
	return func(o Order) bool {
		if len(set) == 0 {
			return true
		}
		_, ok := set[o.Status]
		return ok
	}
}

func Any(Order) bool { return true }
