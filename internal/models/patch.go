package models

import "time"

type MetaPatch struct {
	Name       *string
	ShipDate   *time.Time
	ShipMethod *ShipMethod
	Carrier    *string
}

// OrderPatch is a partial update. Nil fields are left untouched, Timestamps are
// merged stamp by stamp and History entries are appended.
type OrderPatch struct {
	Status     *Status
	Meta       MetaPatch
	Items      *Lines
	Timestamps Timestamps
	History    []HistoryEntry
}

func (p OrderPatch) IsZero() bool {
	return p.Status == nil && p.Items == nil && p.Meta == (MetaPatch{}) &&
		p.Timestamps.IsZero() && len(p.History) == 0
}

// Apply returns o with the patch merged in. Total is always recomputed from
// the resulting items.
func (o Order) Apply(p OrderPatch) Order {
	out := o.Clone()
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Meta.Name != nil {
		out.Meta.Name = *p.Meta.Name
	}
	if p.Meta.ShipDate != nil {
		out.Meta.ShipDate = Stamp(*p.Meta.ShipDate)
	}
	if p.Meta.ShipMethod != nil {
		out.Meta.ShipMethod = *p.Meta.ShipMethod
	}
	if p.Meta.Carrier != nil {
		out.Meta.Carrier = *p.Meta.Carrier
	}
	if p.Items != nil {
		out.Items = p.Items.Clone()
		if out.Items == nil {
			out.Items = Lines{}
		}
	}
	out.Total = out.Items.Total()
	out.Timestamps = out.Timestamps.Merge(p.Timestamps)
	if len(p.History) > 0 {
		out.History = out.History.Append(p.History...)
	}
	return out
}
