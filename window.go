package gridkit

// The windowing stage reduces the filtered+sorted dataset to what must
// actually be materialized for rendering: a fixed-size page, or a
// scroll-driven slice plus overscan. An engine instance runs exactly one
// of the two strategies.

// PageState drives pagination mode.
type PageState struct {
	PageSize    int // rows per page, > 0
	CurrentPage int // 1-based
}

// PageInfo is the pagination metadata exposed for footer rendering.
// StartIndex/EndIndex are 0-based positions into the filtered+sorted
// set; EndIndex is exclusive.
type PageInfo struct {
	CurrentPage int
	TotalPages  int
	StartIndex  int
	EndIndex    int
	TotalCount  int
}

// totalPages is ceil(total/pageSize), never less than 1 so an empty
// result still has a page for the footer to stand on.
func totalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	n := (total + pageSize - 1) / pageSize
	if n < 1 {
		n = 1
	}
	return n
}

// clampPage forces page into [1, totalPages]. The reference behavior
// left out-of-range pages undefined and leaned on the UI disabling its
// nav buttons; here the stage clamps defensively as well.
func clampPage(page, total, pageSize int) int {
	if page < 1 {
		return 1
	}
	if tp := totalPages(total, pageSize); page > tp {
		return tp
	}
	return page
}

// materializePage slices out one page of rows.
func materializePage[T any](rows []T, st PageState) ([]T, PageInfo) {
	size := st.PageSize
	if size <= 0 {
		size = 1
	}
	page := clampPage(st.CurrentPage, len(rows), size)

	start := (page - 1) * size
	end := start + size
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}

	info := PageInfo{
		CurrentPage: page,
		TotalPages:  totalPages(len(rows), size),
		StartIndex:  start,
		EndIndex:    end,
		TotalCount:  len(rows),
	}
	return rows[start:end], info
}

// VirtualState drives virtualization mode. Row height is fixed; the
// container height and scroll position are supplied by the view layer
// in the same layout units.
type VirtualState struct {
	ScrollTop       int
	ItemHeight      int
	ContainerHeight int
	Overscan        int // extra rows materialized either side, >= 0
}

// VirtualWindow is the materialized slice plus the layout offsets the
// view needs to position it inside the full-height scroll area.
type VirtualWindow[T any] struct {
	Items       []T
	StartIndex  int
	EndIndex    int // inclusive
	TotalHeight int
	OffsetY     int
}

// materializeVirtual computes the visible range from the scroll
// position, expands it by overscan on both sides, and clamps to the
// dataset bounds. Only the rows in [StartIndex, EndIndex] are
// materialized; everything outside is represented by TotalHeight and
// OffsetY so the scroll geometry stays correct.
func materializeVirtual[T any](rows []T, st VirtualState) VirtualWindow[T] {
	if len(rows) == 0 || st.ItemHeight <= 0 {
		return VirtualWindow[T]{Items: []T{}, EndIndex: -1}
	}

	visibleStart := st.ScrollTop / st.ItemHeight
	visibleCount := (st.ContainerHeight + st.ItemHeight - 1) / st.ItemHeight
	visibleEnd := visibleStart + visibleCount
	if visibleEnd > len(rows)-1 {
		visibleEnd = len(rows) - 1
	}

	start := visibleStart - st.Overscan
	if start < 0 {
		start = 0
	}
	end := visibleEnd + st.Overscan
	if end > len(rows)-1 {
		end = len(rows) - 1
	}
	if start > end {
		start = end
	}

	return VirtualWindow[T]{
		Items:       rows[start : end+1],
		StartIndex:  start,
		EndIndex:    end,
		TotalHeight: len(rows) * st.ItemHeight,
		OffsetY:     start * st.ItemHeight,
	}
}
