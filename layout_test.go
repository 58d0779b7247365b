package gridkit

import (
	"reflect"
	"testing"
)

func layoutWith(ids ...string) *columnLayout[person] {
	cols := make([]Column[person], len(ids))
	for i, id := range ids {
		cols[i] = NewColumn[person](id, id, nil).Sized(100)
	}
	return &columnLayout[person]{cols: cols}
}

func order(l *columnLayout[person]) []string {
	out := make([]string, len(l.cols))
	for i, c := range l.cols {
		out[i] = c.ID
	}
	return out
}

func TestColumnResize(t *testing.T) {
	t.Run("width tracks pointer delta from gesture start", func(t *testing.T) {
		l := layoutWith("a", "b")
		if !l.StartResize("a", 500) {
			t.Fatal("StartResize rejected")
		}
		l.ResizeTo(560)
		l.EndResize()
		if w := l.cols[0].Width; w != 160 {
			t.Fatalf("expected width 160, got %d", w)
		}
	})

	t.Run("global floor applies in addition to column min", func(t *testing.T) {
		l := layoutWith("a")
		l.StartResize("a", 0)
		l.ResizeTo(-1000)
		l.EndResize()
		if w := l.cols[0].Width; w != MinColumnWidth {
			t.Fatalf("expected floor %d, got %d", MinColumnWidth, w)
		}

		l.cols[0].MinWidth = 80
		l.StartResize("a", 0)
		l.ResizeTo(-1000)
		l.EndResize()
		if w := l.cols[0].Width; w != 80 {
			t.Fatalf("expected column min 80, got %d", w)
		}
	})

	t.Run("max width caps when set", func(t *testing.T) {
		l := layoutWith("a")
		l.cols[0].MaxWidth = 140
		l.StartResize("a", 0)
		l.ResizeTo(1000)
		l.EndResize()
		if w := l.cols[0].Width; w != 140 {
			t.Fatalf("expected cap 140, got %d", w)
		}
	})

	t.Run("release keeps the last computed width", func(t *testing.T) {
		l := layoutWith("a")
		l.StartResize("a", 0)
		l.ResizeTo(30)
		l.ResizeTo(55)
		l.EndResize()
		if w := l.cols[0].Width; w != 155 {
			t.Fatalf("expected 155 committed on release, got %d", w)
		}
		if l.gestureActive() {
			t.Error("transient state should be discarded on release")
		}
	})

	t.Run("unknown column rejected", func(t *testing.T) {
		l := layoutWith("a")
		if l.StartResize("nope", 0) {
			t.Fatal("expected rejection for unknown column")
		}
	})
}

func TestColumnReorder(t *testing.T) {
	t.Run("drop is a move, not a swap", func(t *testing.T) {
		// dragging a before d: b and c shift left by one, they do not
		// exchange with a
		l := layoutWith("a", "b", "c", "d")
		l.StartReorder("a")
		l.DropOn("d")
		if want := []string{"b", "c", "a", "d"}; !reflect.DeepEqual(order(l), want) {
			t.Fatalf("expected %v, got %v", want, order(l))
		}
	})

	t.Run("moving left inserts before the target", func(t *testing.T) {
		l := layoutWith("a", "b", "c", "d")
		l.StartReorder("d")
		l.DropOn("b")
		if want := []string{"a", "d", "b", "c"}; !reflect.DeepEqual(order(l), want) {
			t.Fatalf("expected %v, got %v", want, order(l))
		}
	})

	t.Run("repeating the identical move is idempotent", func(t *testing.T) {
		l := layoutWith("a", "b", "c", "d")
		l.StartReorder("a")
		l.DropOn("d")
		first := order(l)
		l.StartReorder("a")
		l.DropOn("d")
		if !reflect.DeepEqual(order(l), first) {
			t.Fatalf("expected %v after repeat, got %v", first, order(l))
		}
	})

	t.Run("result is a permutation of the original ids", func(t *testing.T) {
		l := layoutWith("a", "b", "c", "d")
		l.StartReorder("c")
		l.DropOn("a")
		got := order(l)
		if len(got) != 4 {
			t.Fatalf("column count changed: %v", got)
		}
		seen := map[string]bool{}
		for _, id := range got {
			seen[id] = true
		}
		for _, id := range []string{"a", "b", "c", "d"} {
			if !seen[id] {
				t.Fatalf("id %q lost in reorder: %v", id, got)
			}
		}
	})

	t.Run("drop on itself is a no-op", func(t *testing.T) {
		l := layoutWith("a", "b", "c")
		l.StartReorder("b")
		if l.DropOn("b") {
			t.Fatal("self-drop should report no change")
		}
		if want := []string{"a", "b", "c"}; !reflect.DeepEqual(order(l), want) {
			t.Fatalf("expected %v, got %v", want, order(l))
		}
	})

	t.Run("drop without an active drag is a no-op", func(t *testing.T) {
		l := layoutWith("a", "b")
		if l.DropOn("a") {
			t.Fatal("expected no-op without active drag")
		}
	})

	t.Run("cancel releases with no mutation", func(t *testing.T) {
		l := layoutWith("a", "b", "c")
		l.StartReorder("c")
		l.CancelReorder()
		if want := []string{"a", "b", "c"}; !reflect.DeepEqual(order(l), want) {
			t.Fatalf("expected %v, got %v", want, order(l))
		}
		if l.gestureActive() {
			t.Error("cancel should clear the drag state")
		}
	})
}

func TestLayoutSingleGate(t *testing.T) {
	t.Run("resize blocks every other gesture", func(t *testing.T) {
		l := layoutWith("a", "b")
		l.StartResize("a", 0)
		if l.StartResize("b", 0) {
			t.Error("second resize should be rejected")
		}
		if l.StartReorder("b") {
			t.Error("reorder during resize should be rejected")
		}
		l.EndResize()
		if !l.StartReorder("b") {
			t.Error("gesture should be allowed once the gate clears")
		}
	})

	t.Run("reorder blocks resize", func(t *testing.T) {
		l := layoutWith("a", "b")
		l.StartReorder("a")
		if l.StartResize("b", 0) {
			t.Error("resize during reorder should be rejected")
		}
	})
}

func TestVisibilityToggle(t *testing.T) {
	l := layoutWith("a", "b", "c")
	widths := []int{l.cols[0].Width, l.cols[1].Width, l.cols[2].Width}

	if !l.ToggleVisibility("b") {
		t.Fatal("toggle rejected")
	}
	if !l.cols[1].Hidden {
		t.Fatal("b should be hidden")
	}
	if want := []string{"a", "c"}; !reflect.DeepEqual(order(&columnLayout[person]{cols: l.visible()}), want) {
		t.Fatalf("visible columns wrong: %v", l.visible())
	}

	// ordering and widths untouched
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(order(l), want) {
		t.Fatalf("toggle must not reorder: %v", order(l))
	}
	for i, c := range l.cols {
		if c.Width != widths[i] {
			t.Fatalf("toggle must not resize column %s", c.ID)
		}
	}

	l.ToggleVisibility("b")
	if l.cols[1].Hidden {
		t.Fatal("second toggle should unhide b")
	}

	if l.ToggleVisibility("zzz") {
		t.Fatal("unknown column should be rejected")
	}
}
