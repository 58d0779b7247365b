package gridkit

// selection tracks checked rows by stable id. Ids come from the
// caller's getRowID and outlive filtering and sorting of the same
// logical rows. The controller never stores row values, only ids;
// materialization back to rows happens against whatever dataset is
// current at notification time.
type selection struct {
	ids        map[string]struct{}
	allVisible bool // selectedIds covers every currently materialized row
}

func newSelection() *selection {
	return &selection{ids: make(map[string]struct{})}
}

// toggle adds or removes one id, then recomputes whether the selection
// still covers all materialized rows.
func (s *selection) toggle(id string, checked bool, visibleIDs []string) {
	if checked {
		s.ids[id] = struct{}{}
	} else {
		delete(s.ids, id)
	}
	s.recomputeAllVisible(visibleIDs)
}

// selectAll with checked=true selects exactly the materialized rows,
// never the full filtered set: "select all" only reaches what is on
// screen. With checked=false the entire selection clears, including
// ids that were never on the current screen.
func (s *selection) selectAll(checked bool, visibleIDs []string) {
	if !checked {
		s.clear()
		return
	}
	s.ids = make(map[string]struct{}, len(visibleIDs))
	for _, id := range visibleIDs {
		s.ids[id] = struct{}{}
	}
	s.allVisible = len(visibleIDs) > 0
}

// clear empties the selection unconditionally.
func (s *selection) clear() {
	s.ids = make(map[string]struct{})
	s.allVisible = false
}

// has reports whether an id is selected.
func (s *selection) has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// count returns the number of selected ids, including ids with no
// matching row in the current dataset.
func (s *selection) count() int {
	return len(s.ids)
}

// recomputeAllVisible sets allVisible iff every materialized row id is
// selected. Vacuously false for an empty window.
func (s *selection) recomputeAllVisible(visibleIDs []string) {
	if len(visibleIDs) == 0 {
		s.allVisible = false
		return
	}
	for _, id := range visibleIDs {
		if !s.has(id) {
			s.allVisible = false
			return
		}
	}
	s.allVisible = true
}

// retain intersects the selection with a new dataset's ids, dropping
// anything the dataset no longer produces.
func (s *selection) retain(keep map[string]struct{}) {
	for id := range s.ids {
		if _, ok := keep[id]; !ok {
			delete(s.ids, id)
		}
	}
}

// materializeSelection resolves selected ids to rows of the current
// dataset, in dataset order. Ids with no matching row are silently
// dropped from the result; they stay in the selection until an
// explicit clear or a fresh selectAll.
func materializeSelection[T any](rows []T, getID func(T) string, s *selection) []T {
	out := make([]T, 0, len(s.ids))
	for _, row := range rows {
		if s.has(getID(row)) {
			out = append(out, row)
		}
	}
	return out
}
