package models

import "time"

const (
	StampCreated   = "created"
	StampSubmitted = "submitted"
	StampAccepted  = "accepted"
	StampCompleted = "completed"
	StampShipped   = "shipped"
	StampUpdated   = "updated"
)

type Timestamps struct {
	Created   *time.Time `json:"created,omitempty"`
	Submitted *time.Time `json:"submitted,omitempty"`
	Accepted  *time.Time `json:"accepted,omitempty"`
	Completed *time.Time `json:"completed,omitempty"`
	Shipped   *time.Time `json:"shipped,omitempty"`
	Updated   *time.Time `json:"updated,omitempty"`
}

// Merge overlays the stamps set in patch; stamps absent from patch are kept.
func (t Timestamps) Merge(patch Timestamps) Timestamps {
	pick := func(cur, next *time.Time) *time.Time {
		if next != nil {
			v := *next
			return &v
		}
		return cur
	}
	return Timestamps{
		Created:   pick(t.Created, patch.Created),
		Submitted: pick(t.Submitted, patch.Submitted),
		Accepted:  pick(t.Accepted, patch.Accepted),
		Completed: pick(t.Completed, patch.Completed),
		Shipped:   pick(t.Shipped, patch.Shipped),
		Updated:   pick(t.Updated, patch.Updated),
	}
}

func (t Timestamps) IsZero() bool {
	return t.Created == nil && t.Submitted == nil && t.Accepted == nil &&
		t.Completed == nil && t.Shipped == nil && t.Updated == nil
}

// Lifecycle calls fn for every populated lifecycle stamp in lifecycle order.
// The updated stamp is an edit marker, not a milestone, and is skipped.
func (t Timestamps) Lifecycle(fn func(name string, at time.Time)) {
	for _, s := range []struct {
		name string
		at   *time.Time
	}{
		{StampCreated, t.Created},
		{StampSubmitted, t.Submitted},
		{StampAccepted, t.Accepted},
		{StampCompleted, t.Completed},
		{StampShipped, t.Shipped},
	} {
		if s.at != nil && !s.at.IsZero() {
			fn(s.name, *s.at)
		}
	}
}

func Stamp(t time.Time) *time.Time {
	return &t
}
