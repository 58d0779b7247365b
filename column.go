package gridkit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Align sets horizontal cell alignment within a column.
type Align int8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// MinColumnWidth is the global lower bound applied to every resize,
// in addition to any column-specific MinWidth.
const MinColumnWidth = 50

// Column describes one displayable field of a row: identity, label,
// how to read the value out of a row, and display/sort/filter metadata.
// Pure data; all behavior lives in the pipeline stages.
//
// ID is unique within a column list and never changes. Reordering,
// resizing and hiding mutate everything else but leave ID alone.
type Column[T any] struct {
	ID         string
	Header     string
	Accessor   func(T) any    // nil = no data binding; column can only render
	Renderer   func(T) string // optional display override, ignored by filter/sort
	Sortable   bool
	Filterable bool
	Width      int
	MinWidth   int
	MaxWidth   int
	Align      Align
	Sticky     bool
	Hidden     bool
}

// NewColumn creates a column bound to a field via the accessor.
// Further configuration chains fluently:
//
//	NewColumn("name", "Name", func(r Inspector) any { return r.Name }).
//	    Sort().Filter().Sized(160)
func NewColumn[T any](id, header string, accessor func(T) any) Column[T] {
	return Column[T]{
		ID:       id,
		Header:   header,
		Accessor: accessor,
		Width:    120,
		MinWidth: MinColumnWidth,
	}
}

// Sort marks the column sortable.
func (c Column[T]) Sort() Column[T] { c.Sortable = true; return c }

// Filter marks the column filterable (included in global quick filtering).
func (c Column[T]) Filter() Column[T] { c.Filterable = true; return c }

// Sized sets the initial width in layout units.
func (c Column[T]) Sized(w int) Column[T] { c.Width = w; return c }

// Bounds sets per-column width bounds honored by resize gestures.
func (c Column[T]) Bounds(min, max int) Column[T] {
	c.MinWidth = min
	c.MaxWidth = max
	return c
}

// Aligned sets cell alignment.
func (c Column[T]) Aligned(a Align) Column[T] { c.Align = a; return c }

// Stick pins the column during horizontal scrolling.
func (c Column[T]) Stick() Column[T] { c.Sticky = true; return c }

// Hide starts the column hidden; visibility can be toggled later
// through the layout controller.
func (c Column[T]) Hide() Column[T] { c.Hidden = true; return c }

// Renders sets a custom display renderer. The renderer affects display
// only; filtering and sorting always read through the accessor.
func (c Column[T]) Renders(fn func(T) string) Column[T] {
	c.Renderer = fn
	return c
}

// ----------------------------------------------------------------------------
// canned renderer presets
// ----------------------------------------------------------------------------

// Number renders the accessor value with comma separators, right-aligned.
// decimals controls decimal places for floats.
func (c Column[T]) Number(decimals int) Column[T] {
	acc := c.Accessor
	c.Align = AlignRight
	c.Renderer = func(row T) string {
		return formatNumber(acc(row), decimals)
	}
	return c
}

// Currency renders the accessor value with a symbol prefix and comma
// separators. A quick default, not an internationalization solution.
func (c Column[T]) Currency(symbol string, decimals int) Column[T] {
	acc := c.Accessor
	c.Align = AlignRight
	c.Renderer = func(row T) string {
		return symbol + formatNumber(acc(row), decimals)
	}
	return c
}

// Percent renders the accessor value as a percentage.
func (c Column[T]) Percent(decimals int) Column[T] {
	acc := c.Accessor
	c.Align = AlignRight
	c.Renderer = func(row T) string {
		f := toNumber(acc(row))
		if math.IsNaN(f) {
			f = 0
		}
		return strconv.FormatFloat(f, 'f', decimals, 64) + "%"
	}
	return c
}

// BoolLabel renders boolean accessor values with custom labels.
func (c Column[T]) BoolLabel(yes, no string) Column[T] {
	acc := c.Accessor
	c.Align = AlignCenter
	c.Renderer = func(row T) string {
		if b, ok := acc(row).(bool); ok && b {
			return yes
		}
		return no
	}
	return c
}

// ----------------------------------------------------------------------------
// value plumbing shared by the pipeline stages
// ----------------------------------------------------------------------------

// cellValue reads the raw value of a column for a row, nil when the
// column has no accessor.
func cellValue[T any](c Column[T], row T) any {
	if c.Accessor == nil {
		return nil
	}
	return c.Accessor(row)
}

// cellString stringifies the accessor value for text matching and
// equality. Display rendering goes through displayString instead.
func cellString[T any](c Column[T], row T) string {
	v := cellValue(c, row)
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// displayString is what the view layer shows: the renderer when set,
// otherwise the stringified accessor value.
func displayString[T any](c Column[T], row T) string {
	if c.Renderer != nil {
		return c.Renderer(row)
	}
	return cellString(c, row)
}

// columnByID finds a column in a list, second result false when absent.
func columnByID[T any](cols []Column[T], id string) (Column[T], bool) {
	for i := range cols {
		if cols[i].ID == id {
			return cols[i], true
		}
	}
	var zero Column[T]
	return zero, false
}

// columnIndex returns the position of a column id, -1 when absent.
func columnIndex[T any](cols []Column[T], id string) int {
	for i := range cols {
		if cols[i].ID == id {
			return i
		}
	}
	return -1
}

// toNumber converts common numeric types to float64, parsing strings
// as a last resort. Anything non-numeric yields NaN so that every
// ordered comparison against it fails, which is the filter pipeline's
// drop-the-row policy for incomparable values.
func toNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case nil:
		return math.NaN()
	default:
		f, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprintf("%v", v)), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}
}

// formatNumber formats a numeric value with comma separators.
func formatNumber(v any, decimals int) string {
	f := toNumber(v)
	if math.IsNaN(f) {
		return fmt.Sprintf("%v", v)
	}
	return insertCommas(strconv.FormatFloat(f, 'f', decimals, 64))
}

// insertCommas adds thousand separators to a numeric string.
func insertCommas(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	integer, decimal, hasDecimal := strings.Cut(s, ".")

	n := len(integer)
	if n > 3 {
		var b strings.Builder
		b.Grow(n + n/3)
		start := n % 3
		if start == 0 {
			start = 3
		}
		b.WriteString(integer[:start])
		for i := start; i < n; i += 3 {
			b.WriteByte(',')
			b.WriteString(integer[i : i+3])
		}
		integer = b.String()
	}

	var result string
	if hasDecimal {
		result = integer + "." + decimal
	} else {
		result = integer
	}

	if neg {
		return "-" + result
	}
	return result
}
