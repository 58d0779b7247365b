package gridkit

// BulkAction describes one operation over the current selection,
// supplied by the page that owns the grid. OnClick receives the
// materialized selected rows at invocation time.
type BulkAction[T any] struct {
	ID                   string
	Label                string
	OnClick              func(selected []T)
	Disabled             bool
	RequiresConfirmation bool
}

// bulkDispatcher gates bulk actions behind the selection and, where
// requested, behind an explicit confirmation round-trip. An action
// marked RequiresConfirmation never fires until Confirm is called; the
// rows are captured at invoke time so the confirmed action operates on
// exactly what the user saw when they triggered it.
type bulkDispatcher[T any] struct {
	actions []BulkAction[T]
	pending *pendingAction[T]
}

type pendingAction[T any] struct {
	action BulkAction[T]
	rows   []T
}

// available returns the actions to present, nil while the selection is
// empty. The dispatcher exposes nothing without selected rows.
func (d *bulkDispatcher[T]) available(selectionCount int) []BulkAction[T] {
	if selectionCount == 0 {
		return nil
	}
	return d.actions
}

// Invoke triggers an action by id against the selected rows. Disabled
// actions, unknown ids and empty selections are no-ops. Returns true
// when the action either fired or moved to awaiting confirmation.
func (d *bulkDispatcher[T]) Invoke(id string, selected []T) bool {
	if len(selected) == 0 {
		return false
	}
	for _, a := range d.actions {
		if a.ID != id {
			continue
		}
		if a.Disabled {
			return false
		}
		if a.RequiresConfirmation {
			rows := make([]T, len(selected))
			copy(rows, selected)
			d.pending = &pendingAction[T]{action: a, rows: rows}
			return true
		}
		if a.OnClick != nil {
			a.OnClick(selected)
		}
		return true
	}
	return false
}

// Pending returns the action awaiting confirmation, nil when none.
func (d *bulkDispatcher[T]) Pending() *BulkAction[T] {
	if d.pending == nil {
		return nil
	}
	a := d.pending.action
	return &a
}

// Confirm resolves an awaiting confirmation affirmatively, firing the
// captured action. No-op when nothing is pending.
func (d *bulkDispatcher[T]) Confirm() {
	p := d.pending
	d.pending = nil
	if p == nil {
		return
	}
	if p.action.OnClick != nil {
		p.action.OnClick(p.rows)
	}
}

// Cancel discards an awaiting confirmation without firing.
func (d *bulkDispatcher[T]) Cancel() {
	d.pending = nil
}
