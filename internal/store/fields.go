package store

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// fields flattens a record into its JSON field map so records can be sorted
// and matched by field name.
func fields[T any](record T) (map[string]any, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var f map[string]any
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f == nil {
		f = make(map[string]any)
	}
	return f, nil
}

func fromFields[T any](f map[string]any) (T, error) {
	var record T
	data, err := json.Marshal(f)
	if err != nil {
		return record, err
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return record, err
	}
	return record, nil
}

// normalizeCriteria converts Go values into their JSON shape (ints become
// float64, times become strings) so they compare like stored field values.
func normalizeCriteria(criteria map[string]any) (map[string]any, error) {
	data, err := json.Marshal(criteria)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func matches(f map[string]any, criteria map[string]any) bool {
	for key, want := range criteria {
		if !valueEquals(f[key], want) {
			return false
		}
	}
	return true
}

// valueEquals compares a stored field with a criterion. A string criterion
// also matches a numeric or boolean field holding the same value, so raw query
// text can select typed fields; string fields are only ever compared as text.
func valueEquals(have, want any) bool {
	if reflect.DeepEqual(have, want) {
		return true
	}
	text, ok := want.(string)
	if !ok {
		return false
	}

	switch field := have.(type) {
	case float64:
		n, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		return err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) && n == field
	case bool:
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		return err == nil && b == field
	}
	return false
}

func sortRecords[T any](records []T, sortField string) ([]T, error) {
	descending := strings.HasPrefix(sortField, "-")
	field := strings.TrimPrefix(sortField, "-")

	keys := make([]any, len(records))
	for i, record := range records {
		f, err := fields(record)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to inspect record: %w", ErrStorage, err)
		}
		keys[i] = f[field]
	}

	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}

	dateField := strings.Contains(field, "date")
	sort.SliceStable(order, func(a, b int) bool {
		c := compareValues(keys[order[a]], keys[order[b]], dateField)
		if descending {
			return c > 0
		}
		return c < 0
	})

	sorted := make([]T, len(records))
	for i, idx := range order {
		sorted[i] = records[idx]
	}
	return sorted, nil
}

// compareValues orders by timestamp for date fields, numerically when both
// values are numbers and by byte-wise string comparison otherwise.
func compareValues(a, b any, dateField bool) int {
	if dateField {
		return cmp.Compare(parseTimestamp(a), parseTimestamp(b))
	}

	an, aNum := a.(float64)
	bn, bNum := b.(float64)
	if aNum && bNum {
		return cmp.Compare(an, bn)
	}

	return strings.Compare(stringify(a), stringify(b))
}

func parseTimestamp(v any) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0
	}
	return t.UnixNano()
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
