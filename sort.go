package gridkit

import (
	"math"
	"sort"
)

// SortDirection orders ascending or descending.
type SortDirection int8

const (
	SortAsc SortDirection = iota
	SortDesc
)

// SortState names the single active sort column and direction. A nil
// *SortState means unsorted. The column must be present and sortable
// for the stage to have any effect.
type SortState struct {
	Column    string
	Direction SortDirection
}

// applySort stable-sorts rows by the sort column's accessor value.
// Ties keep their input order for both directions: descending negates
// the ascending comparator rather than reversing the result, so equal
// rows still break by original position.
//
// No-op (returning the input slice untouched) when sort is nil, the
// column is missing, not sortable, or has no accessor.
func applySort[T any](rows []T, st *SortState, cols []Column[T]) []T {
	if st == nil {
		return rows
	}
	col, ok := columnByID(cols, st.Column)
	if !ok || !col.Sortable || col.Accessor == nil {
		return rows
	}

	out := make([]T, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		cmp := compareCell(cellValue(col, out[i]), cellValue(col, out[j]))
		if st.Direction == SortDesc {
			cmp = -cmp
		}
		return cmp < 0
	})
	return out
}

// compareCell orders two accessor values naturally: numerically when
// both coerce to numbers, lexicographically otherwise. Values that
// coerce to NaN sort after comparable numbers so they cluster at the
// end rather than interleaving unpredictably.
func compareCell(a, b any) int {
	an, bn := toNumber(a), toNumber(b)
	aNum, bNum := !math.IsNaN(an), !math.IsNaN(bn)
	switch {
	case aNum && bNum:
		if an < bn {
			return -1
		}
		if an > bn {
			return 1
		}
		return 0
	case aNum:
		return -1
	case bNum:
		return 1
	}

	as, bs := stringify(a), stringify(b)
	if as < bs {
		return -1
	}
	if as > bs {
		return 1
	}
	return 0
}
