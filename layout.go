package gridkit

// columnLayout owns the ordered column list and the two transient drag
// state machines that mutate it: resize and reorder. Transient state is
// created on gesture start and destroyed on gesture end; it is never
// serialized.
//
// All layout gestures share a single gate: while any gesture is active,
// starting another (of either kind) is rejected. The reference behavior
// guarded the two kinds independently; that asymmetry served no one.
type columnLayout[T any] struct {
	cols    []Column[T]
	resize  *resizeDrag
	reorder *reorderDrag
}

// resizeDrag captures the gesture origin so widths track the pointer
// delta, not absolute positions.
type resizeDrag struct {
	columnID   string
	startX     int
	startWidth int
}

// reorderDrag remembers which column is being dragged.
type reorderDrag struct {
	columnID string
}

// gestureActive reports whether any layout gesture is mid-flight.
func (l *columnLayout[T]) gestureActive() bool {
	return l.resize != nil || l.reorder != nil
}

// StartResize begins a resize gesture on a column. Returns false when a
// gesture is already active or the column does not exist.
func (l *columnLayout[T]) StartResize(columnID string, pointerX int) bool {
	if l.gestureActive() {
		return false
	}
	i := columnIndex(l.cols, columnID)
	if i < 0 {
		return false
	}
	l.resize = &resizeDrag{
		columnID:   columnID,
		startX:     pointerX,
		startWidth: l.cols[i].Width,
	}
	return true
}

// ResizeTo recomputes the dragged column's width from the current
// pointer position. The global MinColumnWidth floor applies on top of
// the column's own MinWidth; MaxWidth caps when set. The width commits
// into the column model immediately, so releasing the pointer keeps
// whatever was last computed.
func (l *columnLayout[T]) ResizeTo(pointerX int) {
	if l.resize == nil {
		return
	}
	i := columnIndex(l.cols, l.resize.columnID)
	if i < 0 {
		return
	}
	w := l.resize.startWidth + (pointerX - l.resize.startX)
	if w < MinColumnWidth {
		w = MinColumnWidth
	}
	if min := l.cols[i].MinWidth; w < min {
		w = min
	}
	if max := l.cols[i].MaxWidth; max > 0 && w > max {
		w = max
	}
	l.cols[i].Width = w
}

// EndResize discards the transient resize state. The committed width
// stays in the column model.
func (l *columnLayout[T]) EndResize() {
	l.resize = nil
}

// StartReorder begins dragging a column. Returns false when a gesture
// is already active or the column does not exist.
func (l *columnLayout[T]) StartReorder(columnID string) bool {
	if l.gestureActive() {
		return false
	}
	if columnIndex(l.cols, columnID) < 0 {
		return false
	}
	l.reorder = &reorderDrag{columnID: columnID}
	return true
}

// DropOn completes a reorder by moving the dragged column immediately
// before the target column. This is a move, not a swap: columns between
// the old and new positions shift by one. Dropping a column on itself,
// or dropping with no active drag, is a no-op. Returns whether the
// column list changed.
func (l *columnLayout[T]) DropOn(targetID string) bool {
	if l.reorder == nil {
		return false
	}
	dragged := l.reorder.columnID
	l.reorder = nil

	if dragged == targetID {
		return false
	}
	from := columnIndex(l.cols, dragged)
	to := columnIndex(l.cols, targetID)
	if from < 0 || to < 0 {
		return false
	}

	col := l.cols[from]
	l.cols = append(l.cols[:from], l.cols[from+1:]...)
	// target's index shifts left once the dragged column is removed
	if from < to {
		to--
	}
	l.cols = append(l.cols[:to], append([]Column[T]{col}, l.cols[to:]...)...)
	return from != to
}

// CancelReorder releases the drag with no mutation, the path taken when
// the pointer is released outside any drop target.
func (l *columnLayout[T]) CancelReorder() {
	l.reorder = nil
}

// ToggleVisibility flips one column's hidden flag. Ordering and width
// are untouched. Returns false when the column does not exist.
func (l *columnLayout[T]) ToggleVisibility(columnID string) bool {
	i := columnIndex(l.cols, columnID)
	if i < 0 {
		return false
	}
	l.cols[i].Hidden = !l.cols[i].Hidden
	return true
}

// visible returns the columns currently shown, in order.
func (l *columnLayout[T]) visible() []Column[T] {
	out := make([]Column[T], 0, len(l.cols))
	for _, c := range l.cols {
		if !c.Hidden {
			out = append(out, c)
		}
	}
	return out
}
