package itemset

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"

	"mk-orders/internal/models"
)

// Normalize resolves every items shape seen in stored orders into canonical
// lines. Supported inputs are line slices, decoded JSON arrays of {key, qty}
// objects, nested maps keyed by product/variety/colour/size, flat maps keyed by
// full line keys, and raw JSON of any of those. Anything else yields no lines.
// Lines with a quantity that is not a positive number are dropped.
func Normalize(items any) models.Lines {
	out := models.Lines{}

	switch v := items.(type) {
	case nil:
		return out
	case models.Lines:
		return appendLines(out, v)
	case []models.OrderLine:
		return appendLines(out, v)
	case json.RawMessage:
		return NormalizeJSON(v)
	case []byte:
		return NormalizeJSON(v)
	case []any:
		for _, el := range v {
			out = appendElement(out, el)
		}
		return out
	case []map[string]any:
		for _, el := range v {
			out = appendElement(out, el)
		}
		return out
	}

	rv := reflect.ValueOf(items)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			walk(rv, "", &out)
		}
	case reflect.Pointer:
		if !rv.IsNil() {
			return Normalize(rv.Elem().Interface())
		}
	}
	return out
}

// NormalizeJSON decodes raw and normalizes the result. Malformed JSON yields no lines.
func NormalizeJSON(raw []byte) models.Lines {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return models.Lines{}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return models.Lines{}
	}
	return Normalize(v)
}

func appendLines(out, in models.Lines) models.Lines {
	for _, ln := range in {
		if ln.Key == "" || ln.Qty <= 0 {
			continue
		}
		ln.Completed = clampCompleted(ln.Completed, ln.Qty)
		out = append(out, ln)
	}
	return out
}

func appendElement(out models.Lines, el any) models.Lines {
	switch v := el.(type) {
	case models.OrderLine:
		return appendLines(out, models.Lines{v})
	case map[string]any:
		key, ok := v["key"].(string)
		if !ok || key == "" {
			return out
		}
		// {key, sizes: {S: 2}, completed: {S: 1}} rows written by the packaging view.
		if sizes, ok := v["sizes"].(map[string]any); ok {
			done, _ := v["completed"].(map[string]any)
			names := sortedKeys(sizes)
			for _, size := range names {
				qty := Quantity(sizes[size])
				if qty <= 0 {
					continue
				}
				out = append(out, models.OrderLine{
					Key:       JoinKey(key, size),
					Qty:       qty,
					Completed: clampCompleted(Quantity(done[size]), qty),
				})
			}
			return out
		}
		qty := Quantity(v["qty"])
		if qty <= 0 {
			return out
		}
		return append(out, models.OrderLine{
			Key:       key,
			Qty:       qty,
			Completed: clampCompleted(Quantity(v["completed"]), qty),
		})
	default:
		return out
	}
}

func walk(m reflect.Value, prefix string, out *models.Lines) {
	keys := m.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	for _, k := range keys {
		val := m.MapIndex(k)
		for val.Kind() == reflect.Interface || val.Kind() == reflect.Pointer {
			if val.IsNil() {
				break
			}
			val = val.Elem()
		}
		if !val.IsValid() || ((val.Kind() == reflect.Interface || val.Kind() == reflect.Pointer) && val.IsNil()) {
			continue
		}

		path := k.String()
		if prefix != "" {
			path = JoinKey(prefix, path)
		}

		if val.Kind() == reflect.Map {
			if val.Type().Key().Kind() == reflect.String {
				walk(val, path, out)
			}
			continue
		}
		if qty := Quantity(val.Interface()); qty > 0 {
			*out = append(*out, models.OrderLine{Key: path, Qty: qty})
		}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return lessSize(keys[i], keys[j]) })
	return keys
}

func clampCompleted(done, qty int) int {
	if done < 0 {
		return 0
	}
	if done > qty {
		return qty
	}
	return done
}

// Merge sums one or more line sets per key, keeping first-seen order. Lines
// without a key or with a non-positive quantity are dropped.
func Merge(sets ...models.Lines) models.Lines {
	out := models.Lines{}
	idx := make(map[string]int)
	for _, set := range sets {
		for _, ln := range set {
			if ln.Key == "" || ln.Qty <= 0 {
				continue
			}
			if i, ok := idx[ln.Key]; ok {
				out[i].Qty += ln.Qty
				out[i].Completed = clampCompleted(out[i].Completed+ln.Completed, out[i].Qty)
				continue
			}
			idx[ln.Key] = len(out)
			ln.Completed = clampCompleted(ln.Completed, ln.Qty)
			out = append(out, ln)
		}
	}
	return out
}

// ToMap renders lines in the legacy nested form
// productType -> variety -> colour -> size -> qty.
func ToMap(lines models.Lines) map[string]any {
	out := make(map[string]any)
	for _, ln := range Normalize(lines) {
		k := ParseKey(ln.Key)
		varieties := child(out, k.ProductType)
		colours := child(varieties, k.Variety)
		sizes := child(colours, k.Colour)
		prev, _ := sizes[k.Size].(int)
		sizes[k.Size] = prev + ln.Qty
	}
	return out
}

func child(m map[string]any, key string) map[string]any {
	if c, ok := m[key].(map[string]any); ok {
		return c
	}
	c := make(map[string]any)
	m[key] = c
	return c
}
