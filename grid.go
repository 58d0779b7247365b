package gridkit

// Grid composes the pipeline stages into one engine instance: it owns
// the column layout, filter, sort, windowing, selection and bulk-action
// state for the lifetime of one grid, and recomputes the materialized
// row window on demand.
//
// The dataset is borrowed read-only from the caller and never mutated.
// Everything is synchronous: a mutation marks its own stage dirty, the
// stages downstream of it recompute lazily on the next read, and the
// stages upstream keep their cached results.
//
//	g := gridkit.NewGrid(inspectorID,
//	    gridkit.NewColumn("name", "Name", byName).Sort().Filter(),
//	    gridkit.NewColumn("rate", "Pay Rate", byRate).Sort().Currency("$", 2),
//	).Paginate(25)
//	g.SetRows(inspectors)
//	rows := g.Rows()
type Grid[T any] struct {
	getID func(T) string
	rows  []T

	layout   columnLayout[T]
	quick    QuickFilterState
	advanced []AdvancedFilter
	sorting  *SortState

	mode    WindowMode
	page    PageState
	virtual VirtualState

	sel             *selection
	dispatch        bulkDispatcher[T]
	retainSelection bool

	// stage caches; dirty flags run strictly downstream
	filtered    []T
	sorted      []T
	window      []T
	pageInfo    PageInfo
	vwindow     VirtualWindow[T]
	filterDirty bool
	windowDirty bool
	sortDirty   bool

	onRowClick              func(row T, index int)
	onSelectionChange       func(rows []T)
	onAdvancedFiltersChange func(filters []AdvancedFilter)
}

// WindowMode selects the windowing strategy; an instance runs one.
type WindowMode int8

const (
	ModePaginate WindowMode = iota
	ModeVirtual
)

// NewGrid creates a grid over rows identified by getID. getID must be
// injective over any dataset handed to SetRows and stable for the same
// logical row across refilters and resorts.
func NewGrid[T any](getID func(T) string, cols ...Column[T]) *Grid[T] {
	g := &Grid[T]{
		getID: getID,
		quick: QuickFilterState{PerColumn: make(map[string]string)},
		page:  PageState{PageSize: 25, CurrentPage: 1},
		sel:   newSelection(),
	}
	g.layout.cols = cols
	g.markFilterDirty()
	return g
}

// ----------------------------------------------------------------------------
// fluent configuration
// ----------------------------------------------------------------------------

// Paginate selects pagination mode with the given page size.
func (g *Grid[T]) Paginate(pageSize int) *Grid[T] {
	g.mode = ModePaginate
	if pageSize > 0 {
		g.page.PageSize = pageSize
	}
	g.page.CurrentPage = 1
	g.markWindowDirty()
	return g
}

// Virtualize selects virtualization mode with fixed row height.
func (g *Grid[T]) Virtualize(itemHeight, containerHeight, overscan int) *Grid[T] {
	g.mode = ModeVirtual
	g.virtual = VirtualState{
		ItemHeight:      itemHeight,
		ContainerHeight: containerHeight,
		Overscan:        overscan,
	}
	g.markWindowDirty()
	return g
}

// Actions supplies the bulk actions offered over the selection.
func (g *Grid[T]) Actions(actions ...BulkAction[T]) *Grid[T] {
	g.dispatch.actions = actions
	return g
}

// RetainSelection keeps selected ids across SetRows even when the new
// dataset no longer produces them. The default prunes: ids absent from
// the new dataset are dropped on every dataset replacement.
func (g *Grid[T]) RetainSelection() *Grid[T] {
	g.retainSelection = true
	return g
}

// OnRowClick registers the row activation callback.
func (g *Grid[T]) OnRowClick(fn func(row T, index int)) *Grid[T] {
	g.onRowClick = fn
	return g
}

// OnSelectionChange registers the callback fired synchronously after
// every selection mutation with the current dataset's selected rows.
func (g *Grid[T]) OnSelectionChange(fn func(rows []T)) *Grid[T] {
	g.onSelectionChange = fn
	return g
}

// OnAdvancedFiltersChange registers the callback fired whenever the
// advanced filter list changes.
func (g *Grid[T]) OnAdvancedFiltersChange(fn func(filters []AdvancedFilter)) *Grid[T] {
	g.onAdvancedFiltersChange = fn
	return g
}

// ----------------------------------------------------------------------------
// dataset
// ----------------------------------------------------------------------------

// SetRows replaces the dataset. Derived state (filters, sort, window)
// reapplies from scratch against the new rows. Selection ids are
// intersected with the new dataset unless RetainSelection was set.
func (g *Grid[T]) SetRows(rows []T) {
	g.rows = rows
	g.markFilterDirty()

	if !g.retainSelection {
		keep := make(map[string]struct{}, len(rows))
		for _, row := range rows {
			keep[g.getID(row)] = struct{}{}
		}
		g.sel.retain(keep)
	}
}

// ----------------------------------------------------------------------------
// filters
// ----------------------------------------------------------------------------

// SetGlobalFilter sets the global quick filter and returns to page 1.
func (g *Grid[T]) SetGlobalFilter(query string) {
	g.quick.Global = query
	g.page.CurrentPage = 1
	g.markFilterDirty()
}

// SetColumnFilter sets a per-column quick filter. An empty query clears
// the column's entry.
func (g *Grid[T]) SetColumnFilter(columnID, query string) {
	if query == "" {
		delete(g.quick.PerColumn, columnID)
	} else {
		g.quick.PerColumn[columnID] = query
	}
	g.page.CurrentPage = 1
	g.markFilterDirty()
}

// QuickFilters returns the current quick filter state.
func (g *Grid[T]) QuickFilters() QuickFilterState { return g.quick }

// AddAdvancedFilter appends a structured filter.
func (g *Grid[T]) AddAdvancedFilter(f AdvancedFilter) {
	g.advanced = append(g.advanced, f)
	g.page.CurrentPage = 1
	g.markFilterDirty()
	g.notifyFilters()
}

// UpdateAdvancedFilter replaces the operator and value of a filter in
// place, keyed by its stable id. Unknown ids are ignored.
func (g *Grid[T]) UpdateAdvancedFilter(id string, op Operator, value any) {
	for i := range g.advanced {
		if g.advanced[i].ID != id {
			continue
		}
		g.advanced[i].Operator = op
		g.advanced[i].Value = value
		g.page.CurrentPage = 1
		g.markFilterDirty()
		g.notifyFilters()
		return
	}
}

// RemoveAdvancedFilter deletes a filter by id. Unknown ids are ignored.
func (g *Grid[T]) RemoveAdvancedFilter(id string) {
	for i := range g.advanced {
		if g.advanced[i].ID != id {
			continue
		}
		g.advanced = append(g.advanced[:i], g.advanced[i+1:]...)
		g.page.CurrentPage = 1
		g.markFilterDirty()
		g.notifyFilters()
		return
	}
}

// AdvancedFilters returns a copy of the current filter list.
func (g *Grid[T]) AdvancedFilters() []AdvancedFilter {
	out := make([]AdvancedFilter, len(g.advanced))
	copy(out, g.advanced)
	return out
}

func (g *Grid[T]) notifyFilters() {
	if g.onAdvancedFiltersChange != nil {
		g.onAdvancedFiltersChange(g.AdvancedFilters())
	}
}

// ----------------------------------------------------------------------------
// sorting
// ----------------------------------------------------------------------------

// SortBy handles a header click: a new sortable column sorts ascending,
// the already-active column toggles direction. Clicks on unsortable or
// unknown columns are ignored.
func (g *Grid[T]) SortBy(columnID string) {
	col, ok := columnByID(g.layout.cols, columnID)
	if !ok || !col.Sortable {
		return
	}
	if g.sorting != nil && g.sorting.Column == columnID {
		if g.sorting.Direction == SortAsc {
			g.sorting.Direction = SortDesc
		} else {
			g.sorting.Direction = SortAsc
		}
	} else {
		g.sorting = &SortState{Column: columnID, Direction: SortAsc}
	}
	g.markSortDirty()
}

// SetSort sets or clears the sort state directly.
func (g *Grid[T]) SetSort(st *SortState) {
	g.sorting = st
	g.markSortDirty()
}

// Sort returns a copy of the active sort state, nil when unsorted.
func (g *Grid[T]) Sort() *SortState {
	if g.sorting == nil {
		return nil
	}
	st := *g.sorting
	return &st
}

// ----------------------------------------------------------------------------
// windowing
// ----------------------------------------------------------------------------

// SetPage moves to a page, clamped to the valid range.
func (g *Grid[T]) SetPage(page int) {
	g.ensureSorted()
	g.page.CurrentPage = clampPage(page, len(g.sorted), g.page.PageSize)
	g.markWindowDirty()
}

// NextPage advances one page when possible.
func (g *Grid[T]) NextPage() { g.SetPage(g.page.CurrentPage + 1) }

// PrevPage steps back one page when possible.
func (g *Grid[T]) PrevPage() { g.SetPage(g.page.CurrentPage - 1) }

// CanNextPage reports whether a next page exists; the UI disables its
// "next" control off the back of this.
func (g *Grid[T]) CanNextPage() bool {
	return g.Page().CurrentPage < g.Page().TotalPages
}

// CanPrevPage reports whether a previous page exists.
func (g *Grid[T]) CanPrevPage() bool {
	return g.Page().CurrentPage > 1
}

// Page returns the pagination metadata for the current filtered and
// sorted dataset.
func (g *Grid[T]) Page() PageInfo {
	g.ensureWindow()
	return g.pageInfo
}

// SetScrollTop updates the virtualization scroll position.
func (g *Grid[T]) SetScrollTop(y int) {
	if y < 0 {
		y = 0
	}
	g.virtual.ScrollTop = y
	g.markWindowDirty()
}

// Window returns the virtualization window: materialized items plus the
// layout offsets for positioning them. In pagination mode it mirrors the
// current page slice with zero offsets.
func (g *Grid[T]) Window() VirtualWindow[T] {
	g.ensureWindow()
	return g.vwindow
}

// Rows returns the materialized row window ready for rendering: the
// current page in pagination mode, the overscanned visible slice in
// virtualization mode.
func (g *Grid[T]) Rows() []T {
	g.ensureWindow()
	return g.window
}

// FilteredLen is the size of the dataset after filtering, before
// windowing.
func (g *Grid[T]) FilteredLen() int {
	g.ensureSorted()
	return len(g.sorted)
}

// ----------------------------------------------------------------------------
// columns
// ----------------------------------------------------------------------------

// Columns returns a copy of the full ordered column list, live widths
// and visibility included, for header rendering and column pickers.
func (g *Grid[T]) Columns() []Column[T] {
	out := make([]Column[T], len(g.layout.cols))
	copy(out, g.layout.cols)
	return out
}

// VisibleColumns returns the columns currently shown, in order.
func (g *Grid[T]) VisibleColumns() []Column[T] { return g.layout.visible() }

// StartResize begins a column resize gesture. See columnLayout.
func (g *Grid[T]) StartResize(columnID string, pointerX int) bool {
	return g.layout.StartResize(columnID, pointerX)
}

// ResizeTo tracks the pointer during an active resize.
func (g *Grid[T]) ResizeTo(pointerX int) { g.layout.ResizeTo(pointerX) }

// EndResize commits the resize and discards the drag state.
func (g *Grid[T]) EndResize() { g.layout.EndResize() }

// StartReorder begins dragging a column.
func (g *Grid[T]) StartReorder(columnID string) bool {
	return g.layout.StartReorder(columnID)
}

// DropOn completes a reorder onto the target column.
func (g *Grid[T]) DropOn(targetID string) bool { return g.layout.DropOn(targetID) }

// CancelReorder abandons an active reorder with no mutation.
func (g *Grid[T]) CancelReorder() { g.layout.CancelReorder() }

// ToggleColumn flips a column's visibility.
func (g *Grid[T]) ToggleColumn(columnID string) bool {
	return g.layout.ToggleVisibility(columnID)
}

// LayoutBusy reports whether any layout gesture is active.
func (g *Grid[T]) LayoutBusy() bool { return g.layout.gestureActive() }

// ----------------------------------------------------------------------------
// selection
// ----------------------------------------------------------------------------

// ToggleRow checks or unchecks one row by id and notifies the selection
// callback.
func (g *Grid[T]) ToggleRow(id string, checked bool) {
	g.sel.toggle(id, checked, g.windowIDs())
	g.notifySelection()
}

// SelectAll with true selects exactly the materialized rows; with false
// it clears the whole selection.
func (g *Grid[T]) SelectAll(checked bool) {
	g.sel.selectAll(checked, g.windowIDs())
	g.notifySelection()
}

// ClearSelection unconditionally empties the selection.
func (g *Grid[T]) ClearSelection() {
	g.sel.clear()
	g.notifySelection()
}

// IsSelected reports whether a row id is selected.
func (g *Grid[T]) IsSelected(id string) bool { return g.sel.has(id) }

// AllVisibleSelected reports whether the selection covers every
// materialized row, driving the header checkbox state.
func (g *Grid[T]) AllVisibleSelected() bool {
	g.ensureWindow()
	return g.sel.allVisible
}

// SelectionCount is the number of selected ids, stale ids included.
func (g *Grid[T]) SelectionCount() int { return g.sel.count() }

// SelectedRows materializes the selection against the current dataset,
// in dataset order. Ids without a matching row are omitted.
func (g *Grid[T]) SelectedRows() []T {
	return materializeSelection(g.rows, g.getID, g.sel)
}

// RowClick reports a row activation at a window index to the caller's
// callback. Out-of-range indexes are ignored.
func (g *Grid[T]) RowClick(index int) {
	rows := g.Rows()
	if index < 0 || index >= len(rows) {
		return
	}
	if g.onRowClick != nil {
		g.onRowClick(rows[index], index)
	}
}

func (g *Grid[T]) windowIDs() []string {
	rows := g.Rows()
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = g.getID(row)
	}
	return ids
}

func (g *Grid[T]) notifySelection() {
	g.sel.recomputeAllVisible(g.windowIDs())
	if g.onSelectionChange != nil {
		g.onSelectionChange(g.SelectedRows())
	}
}

// ----------------------------------------------------------------------------
// bulk actions
// ----------------------------------------------------------------------------

// AvailableActions returns the bulk actions to present, nil while the
// selection is empty.
func (g *Grid[T]) AvailableActions() []BulkAction[T] {
	return g.dispatch.available(g.sel.count())
}

// InvokeAction triggers a bulk action against the selected rows. An
// action requiring confirmation is parked until ConfirmAction or
// CancelAction resolves it.
func (g *Grid[T]) InvokeAction(id string) bool {
	return g.dispatch.Invoke(id, g.SelectedRows())
}

// PendingAction returns the action awaiting confirmation, nil when none.
func (g *Grid[T]) PendingAction() *BulkAction[T] { return g.dispatch.Pending() }

// ConfirmAction fires the pending action.
func (g *Grid[T]) ConfirmAction() { g.dispatch.Confirm() }

// CancelAction discards the pending action without firing.
func (g *Grid[T]) CancelAction() { g.dispatch.Cancel() }

// ----------------------------------------------------------------------------
// staged recomputation
// ----------------------------------------------------------------------------

func (g *Grid[T]) markFilterDirty() {
	g.filterDirty = true
	g.sortDirty = true
	g.windowDirty = true
}

func (g *Grid[T]) markSortDirty() {
	g.sortDirty = true
	g.windowDirty = true
}

func (g *Grid[T]) markWindowDirty() {
	g.windowDirty = true
}

func (g *Grid[T]) ensureFiltered() {
	if !g.filterDirty {
		return
	}
	g.filtered = applyFilters(g.rows, g.quick, g.advanced, g.layout.cols)
	g.filterDirty = false
}

func (g *Grid[T]) ensureSorted() {
	g.ensureFiltered()
	if !g.sortDirty {
		return
	}
	g.sorted = applySort(g.filtered, g.sorting, g.layout.cols)
	g.sortDirty = false
}

func (g *Grid[T]) ensureWindow() {
	g.ensureSorted()
	if !g.windowDirty {
		return
	}
	switch g.mode {
	case ModeVirtual:
		g.vwindow = materializeVirtual(g.sorted, g.virtual)
		g.window = g.vwindow.Items
		g.pageInfo = PageInfo{
			CurrentPage: 1,
			TotalPages:  1,
			StartIndex:  g.vwindow.StartIndex,
			EndIndex:    g.vwindow.EndIndex + 1,
			TotalCount:  len(g.sorted),
		}
	default:
		g.window, g.pageInfo = materializePage(g.sorted, g.page)
		g.page.CurrentPage = g.pageInfo.CurrentPage
		g.vwindow = VirtualWindow[T]{Items: g.window, EndIndex: len(g.window) - 1}
	}
	g.windowDirty = false
}
