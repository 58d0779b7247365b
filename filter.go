package gridkit

import (
	"fmt"
	"strings"
)

// QuickFilterState holds the free-text filters: one global query matched
// against every filterable column, plus per-column queries keyed by
// column id. All matching is case-insensitive substring.
type QuickFilterState struct {
	Global    string
	PerColumn map[string]string
}

// FilterType classifies what kind of value an advanced filter carries.
// It drives the filter-builder UI; the predicate itself is chosen by
// the operator.
type FilterType string

const (
	FilterText        FilterType = "text"
	FilterNumber      FilterType = "number"
	FilterDate        FilterType = "date"
	FilterSelect      FilterType = "select"
	FilterMultiSelect FilterType = "multiselect"
	FilterBoolean     FilterType = "boolean"
	FilterRange       FilterType = "range"
)

// Operator is the comparison an advanced filter applies.
type Operator string

const (
	OpEquals     Operator = "equals"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startsWith"
	OpEndsWith   Operator = "endsWith"
	OpGt         Operator = "gt"
	OpLt         Operator = "lt"
	OpGte        Operator = "gte"
	OpLte        Operator = "lte"
	OpBetween    Operator = "between"
	OpIn         Operator = "in"
	OpNotIn      Operator = "notIn"
)

// AdvancedFilter is one structured predicate: a column, an operator and
// a value. Filters are conjunctive; a filter only participates when its
// value is non-empty and its column resolves to an accessor. A filter
// referencing a column that no longer exists is silently skipped, so a
// stale filter list survives a column-set change without breaking.
//
// ID is stable for the filter's lifetime; the builder UI mutates
// Operator and Value in place and removes filters by ID.
type AdvancedFilter struct {
	ID       string
	Column   string
	Type     FilterType
	Operator Operator
	Value    any
	Label    string
}

// applyFilters runs the three narrowing passes: global quick filter,
// per-column quick filters, then advanced filters. Pure function of its
// inputs; the input slice is never mutated. Order of passes matters only
// for performance, all stages are AND-combined.
func applyFilters[T any](rows []T, quick QuickFilterState, advanced []AdvancedFilter, cols []Column[T]) []T {
	out := rows

	if q := strings.TrimSpace(quick.Global); q != "" {
		out = filterRows(out, func(row T) bool {
			return matchesGlobal(row, q, cols)
		})
	}

	for id, q := range quick.PerColumn {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		col, ok := columnByID(cols, id)
		if !ok || col.Accessor == nil {
			continue
		}
		needle := strings.ToLower(q)
		out = filterRows(out, func(row T) bool {
			return strings.Contains(strings.ToLower(cellString(col, row)), needle)
		})
	}

	for _, f := range advanced {
		if emptyFilterValue(f.Value) {
			continue
		}
		col, ok := columnByID(cols, f.Column)
		if !ok || col.Accessor == nil {
			continue
		}
		pred := operatorPredicate(f.Operator, f.Value)
		out = filterRows(out, func(row T) bool {
			return pred(cellValue(col, row))
		})
	}

	return out
}

// matchesGlobal reports whether any filterable column's stringified
// value contains the query, case-insensitive.
func matchesGlobal[T any](row T, query string, cols []Column[T]) bool {
	needle := strings.ToLower(query)
	for i := range cols {
		if !cols[i].Filterable || cols[i].Accessor == nil {
			continue
		}
		if strings.Contains(strings.ToLower(cellString(cols[i], row)), needle) {
			return true
		}
	}
	return false
}

// filterRows copies the rows matching keep into a fresh slice.
func filterRows[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// operatorPredicate builds the row-value predicate for one operator.
// Numeric operators coerce both operands; any NaN fails the predicate,
// dropping the row rather than retaining or throwing.
func operatorPredicate(op Operator, filterValue any) func(any) bool {
	switch op {
	case OpEquals:
		want := stringify(filterValue)
		return func(v any) bool { return stringify(v) == want }
	case OpContains:
		needle := strings.ToLower(stringify(filterValue))
		return func(v any) bool {
			return strings.Contains(strings.ToLower(stringify(v)), needle)
		}
	case OpStartsWith:
		prefix := strings.ToLower(stringify(filterValue))
		return func(v any) bool {
			return strings.HasPrefix(strings.ToLower(stringify(v)), prefix)
		}
	case OpEndsWith:
		suffix := strings.ToLower(stringify(filterValue))
		return func(v any) bool {
			return strings.HasSuffix(strings.ToLower(stringify(v)), suffix)
		}
	case OpGt:
		want := toNumber(filterValue)
		return func(v any) bool { return toNumber(v) > want }
	case OpLt:
		want := toNumber(filterValue)
		return func(v any) bool { return toNumber(v) < want }
	case OpGte:
		want := toNumber(filterValue)
		return func(v any) bool { return toNumber(v) >= want }
	case OpLte:
		want := toNumber(filterValue)
		return func(v any) bool { return toNumber(v) <= want }
	case OpBetween:
		lo, hi, ok := rangeBounds(filterValue)
		if !ok {
			return func(any) bool { return false }
		}
		return func(v any) bool {
			n := toNumber(v)
			return n >= lo && n <= hi
		}
	case OpIn:
		set := stringSet(filterValue)
		return func(v any) bool { return set[stringify(v)] }
	case OpNotIn:
		set := stringSet(filterValue)
		return func(v any) bool { return !set[stringify(v)] }
	default:
		// unknown operator behaves like a stale filter: no effect
		return func(any) bool { return true }
	}
}

// rangeBounds extracts the two numeric bounds of a between filter.
// Accepts a two-element slice of numeric or numeric-string values.
func rangeBounds(v any) (lo, hi float64, ok bool) {
	var a, b any
	switch bounds := v.(type) {
	case []any:
		if len(bounds) != 2 {
			return 0, 0, false
		}
		a, b = bounds[0], bounds[1]
	case [2]any:
		a, b = bounds[0], bounds[1]
	case []float64:
		if len(bounds) != 2 {
			return 0, 0, false
		}
		a, b = bounds[0], bounds[1]
	case []string:
		if len(bounds) != 2 {
			return 0, 0, false
		}
		a, b = bounds[0], bounds[1]
	default:
		return 0, 0, false
	}
	lo, hi = toNumber(a), toNumber(b)
	if lo != lo || hi != hi { // either bound NaN
		return 0, 0, false
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

// stringSet builds a membership set from a slice value, stringified
// with the same discipline as equals.
func stringSet(v any) map[string]bool {
	set := make(map[string]bool)
	switch items := v.(type) {
	case []any:
		for _, it := range items {
			set[stringify(it)] = true
		}
	case []string:
		for _, it := range items {
			set[it] = true
		}
	default:
		set[stringify(v)] = true
	}
	return set
}

// emptyFilterValue reports whether a filter value should deactivate the
// filter entirely: nil, blank string, or an empty slice.
func emptyFilterValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	case []float64:
		return len(val) == 0
	default:
		return false
	}
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
