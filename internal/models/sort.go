package models

import "sort"

// SortByShipDate orders by ship date ascending; orders without a ship date come first.
func SortByShipDate(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i].ShipDateOrZero(), orders[j].ShipDateOrZero()
		if !a.Equal(b) {
			return a.Before(b)
		}
		return orders[i].ID < orders[j].ID
	})
}

func Filter(orders []Order, pred Predicate) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if pred == nil || pred(o) {
			out = append(out, o)
		}
	}
	return out
}
