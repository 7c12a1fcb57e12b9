package itemset

import (
	"sort"

	"mk-orders/internal/models"
)

type Summary struct {
	TotalItems int `json:"total_items"`
	TotalLines int `json:"total_lines"`
}

// Summarize counts items and lines. A line is a distinct
// productType|variety|colour; sizes of the same variant count once.
func Summarize(items any) Summary {
	lines := Normalize(items)
	seen := make(map[string]struct{}, len(lines))
	s := Summary{}
	for _, ln := range lines {
		s.TotalItems += ln.Qty
		seen[ParseKey(ln.Key).Triple()] = struct{}{}
	}
	s.TotalLines = len(seen)
	return s
}

type Variant struct {
	Key         string            `json:"key"`
	ProductType string            `json:"product_type"`
	Variety     string            `json:"variety"`
	Colour      string            `json:"colour"`
	Sizes       map[string]int    `json:"sizes"`
	Completed   map[string]int    `json:"completed,omitempty"`
	Keys        map[string]string `json:"keys"`
}

func (v Variant) Total() int {
	total := 0
	for _, q := range v.Sizes {
		total += q
	}
	return total
}

// SortedSizes lists the variant's sizes in apparel order.
func (v Variant) SortedSizes() []string {
	sizes := make([]string, 0, len(v.Sizes))
	for s := range v.Sizes {
		sizes = append(sizes, s)
	}
	sort.Slice(sizes, func(i, j int) bool { return lessSize(sizes[i], sizes[j]) })
	return sizes
}

// Lines turns the variant back into canonical lines using the original keys.
func (v Variant) Lines() models.Lines {
	out := make(models.Lines, 0, len(v.Sizes))
	for _, size := range v.SortedSizes() {
		out = append(out, models.OrderLine{
			Key:       v.Keys[size],
			Qty:       v.Sizes[size],
			Completed: v.Completed[size],
		})
	}
	return out
}

// GroupByVariant buckets lines by upper-cased productType|variety|colour.
// Each variant remembers the original-case key of every size so the group
// can be turned back into lines.
func GroupByVariant(items any) map[string]Variant {
	groups := make(map[string]Variant)
	for _, ln := range Normalize(items) {
		k := ParseKey(ln.Key)
		vk := k.Variant()

		g, ok := groups[vk]
		if !ok {
			g = Variant{
				Key:         vk,
				ProductType: k.ProductType,
				Variety:     k.Variety,
				Colour:      k.Colour,
				Sizes:       make(map[string]int),
				Keys:        make(map[string]string),
			}
		}
		g.Sizes[k.Size] += ln.Qty
		if _, ok := g.Keys[k.Size]; !ok {
			g.Keys[k.Size] = ln.Key
		}
		if ln.Completed > 0 {
			if g.Completed == nil {
				g.Completed = make(map[string]int)
			}
			g.Completed[k.Size] = clampCompleted(g.Completed[k.Size]+ln.Completed, g.Sizes[k.Size])
		}
		groups[vk] = g
	}
	return groups
}

// SortedVariants returns the groups ordered by variant key.
func SortedVariants(groups map[string]Variant) []Variant {
	out := make([]Variant, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// UngroupLines flattens variant groups back into lines.
func UngroupLines(groups map[string]Variant) models.Lines {
	out := models.Lines{}
	for _, g := range SortedVariants(groups) {
		out = append(out, g.Lines()...)
	}
	return out
}
