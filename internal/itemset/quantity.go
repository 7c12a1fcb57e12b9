package itemset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Quantity coerces a raw quantity to an int. Anything that is not a finite
// number, or a string starting with one, becomes 0. Fractions are truncated.
func Quantity(v any) int {
	switch q := v.(type) {
	case nil:
		return 0
	case int:
		return q
	case int8:
		return int(q)
	case int16:
		return int(q)
	case int32:
		return int(q)
	case int64:
		return clampInt64(q)
	case uint:
		return clampUint64(uint64(q))
	case uint8:
		return int(q)
	case uint16:
		return int(q)
	case uint32:
		return clampUint64(uint64(q))
	case uint64:
		return clampUint64(q)
	case float32:
		return fromFloat(float64(q))
	case float64:
		return fromFloat(q)
	case json.Number:
		if n, err := q.Int64(); err == nil {
			return clampInt64(n)
		}
		if f, err := q.Float64(); err == nil {
			return fromFloat(f)
		}
		return 0
	case string:
		return fromString(q)
	default:
		return 0
	}
}

func fromFloat(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	if f <= math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

func clampInt64(n int64) int {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return int(n)
}

func clampUint64(n uint64) int {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// fromString reads the leading integer of s, so "12 pcs" is 12 and "abc" is 0.
func fromString(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return clampInt64(n)
}
