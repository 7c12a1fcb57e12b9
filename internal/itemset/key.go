package itemset

import (
	"strings"
)

const (
	Delimiter = "|"

	// UnknownSize is the size bucket for legacy keys that carry no size segment.
	UnknownSize = "One Size"
)

type Key struct {
	ProductType string
	Variety     string
	Colour      string
	Size        string
}

// ParseKey splits a line key into its four segments. Missing trailing
// segments are left blank and a missing size falls into UnknownSize.
func ParseKey(s string) Key {
	parts := strings.SplitN(s, Delimiter, 4)
	seg := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}
	k := Key{
		ProductType: seg(0),
		Variety:     seg(1),
		Colour:      seg(2),
		Size:        seg(3),
	}
	if k.Size == "" {
		k.Size = UnknownSize
	}
	return k
}

func JoinKey(parts ...string) string {
	return strings.Join(parts, Delimiter)
}

func (k Key) String() string {
	return JoinKey(k.ProductType, k.Variety, k.Colour, k.Size)
}

// Triple is the case-preserving productType|variety|colour part used for line counts.
func (k Key) Triple() string {
	return JoinKey(k.ProductType, k.Variety, k.Colour)
}

// Variant is the display grouping key: the triple upper-cased.
func (k Key) Variant() string {
	return strings.ToUpper(k.Triple())
}

var sizeRank = map[string]int{
	"XS":       0,
	"S":        1,
	"S/M":      2,
	"M":        3,
	"L":        4,
	"XL":       5,
	"XXL":      6,
	"2XL":      6,
	"3XL":      7,
	"4XL":      8,
	"5XL":      9,
	"ONE":      10,
	"ONE SIZE": 10,
}

// SizeRank orders apparel sizes; unknown sizes sort after all known ones.
func SizeRank(size string) int {
	if r, ok := sizeRank[strings.ToUpper(strings.TrimSpace(size))]; ok {
		return r
	}
	return 999
}

func lessSize(a, b string) bool {
	ra, rb := SizeRank(a), SizeRank(b)
	if ra != rb {
		return ra < rb
	}
	return a < b
}
