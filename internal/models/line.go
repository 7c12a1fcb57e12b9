package models

// OrderLine is one productType|variety|colour|size row with a positive quantity.
// Completed counts units packed for the row.
type OrderLine struct {
	Key       string `json:"key"                 validate:"required"`
	Qty       int    `json:"qty"                 validate:"gt=0"`
	Completed int    `json:"completed,omitempty" validate:"gte=0"`
}

type Lines []OrderLine

func (l Lines) Total() int {
	total := 0
	for _, ln := range l {
		if ln.Qty > 0 {
			total += ln.Qty
		}
	}
	return total
}

func (l Lines) Clone() Lines {
	if l == nil {
		return nil
	}
	out := make(Lines, len(l))
	copy(out, l)
	return out
}

func (l Lines) Find(key string) (int, bool) {
	for i, ln := range l {
		if ln.Key == key {
			return i, true
		}
	}
	return -1, false
}
