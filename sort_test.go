package gridkit

import (
	"reflect"
	"testing"
)

func TestSortStage(t *testing.T) {
	cols := personColumns()

	t.Run("sorts ascending by accessor value", func(t *testing.T) {
		rows := []person{
			{"1", "Zoe", "Oslo", 3},
			{"2", "Amy", "Lima", 1},
			{"3", "Max", "Rome", 2},
		}
		got := applySort(rows, &SortState{Column: "name", Direction: SortAsc}, cols)
		if want := []string{"Amy", "Max", "Zoe"}; !reflect.DeepEqual(names(got), want) {
			t.Fatalf("expected %v, got %v", want, names(got))
		}
	})

	t.Run("numeric columns sort numerically", func(t *testing.T) {
		rows := []person{
			{"1", "A", "X", 100},
			{"2", "B", "X", 9},
			{"3", "C", "X", 20},
		}
		got := applySort(rows, &SortState{Column: "age", Direction: SortAsc}, cols)
		if want := []string{"B", "C", "A"}; !reflect.DeepEqual(names(got), want) {
			t.Fatalf("expected numeric order %v, got %v", want, names(got))
		}
	})

	t.Run("nil sort is a no-op", func(t *testing.T) {
		rows := samplePeople()
		got := applySort(rows, nil, cols)
		if !reflect.DeepEqual(names(got), names(rows)) {
			t.Fatalf("expected input order, got %v", names(got))
		}
	})

	t.Run("unknown or unsortable column is a no-op", func(t *testing.T) {
		rows := samplePeople()
		got := applySort(rows, &SortState{Column: "missing"}, cols)
		if !reflect.DeepEqual(names(got), names(rows)) {
			t.Fatalf("unknown column should not sort, got %v", names(got))
		}

		plain := []Column[person]{
			NewColumn("name", "Name", func(p person) any { return p.name }),
		}
		got = applySort(rows, &SortState{Column: "name"}, plain)
		if !reflect.DeepEqual(names(got), names(rows)) {
			t.Fatalf("unsortable column should not sort, got %v", names(got))
		}
	})

	t.Run("input slice is left untouched", func(t *testing.T) {
		rows := samplePeople()
		snapshot := samplePeople()
		applySort(rows, &SortState{Column: "name", Direction: SortDesc}, cols)
		if !reflect.DeepEqual(rows, snapshot) {
			t.Fatal("applySort mutated its input")
		}
	})
}

func TestSortStability(t *testing.T) {
	// two groups of equal keys; relative order within a group must match
	// the input for both directions
	rows := []person{
		{"1", "first-london", "London", 1},
		{"2", "first-oslo", "Oslo", 2},
		{"3", "second-london", "London", 3},
		{"4", "second-oslo", "Oslo", 4},
		{"5", "third-london", "London", 5},
	}
	cols := personColumns()

	t.Run("ascending ties preserve input order", func(t *testing.T) {
		got := applySort(rows, &SortState{Column: "city", Direction: SortAsc}, cols)
		want := []string{"first-london", "second-london", "third-london", "first-oslo", "second-oslo"}
		if !reflect.DeepEqual(names(got), want) {
			t.Fatalf("expected %v, got %v", want, names(got))
		}
	})

	t.Run("descending ties still break by input order, not reversed", func(t *testing.T) {
		// desc negates the comparator instead of reversing the slice
		got := applySort(rows, &SortState{Column: "city", Direction: SortDesc}, cols)
		want := []string{"first-oslo", "second-oslo", "first-london", "second-london", "third-london"}
		if !reflect.DeepEqual(names(got), want) {
			t.Fatalf("expected %v, got %v", want, names(got))
		}
	})
}

func TestCompareCell(t *testing.T) {
	cases := []struct {
		name string
		a, b any
		want int
	}{
		{"numbers", 2, 10, -1},
		{"equal numbers", 5, 5.0, 0},
		{"numeric strings compare numerically", "9", "100", -1},
		{"strings", "apple", "banana", -1},
		{"number sorts before non-number", 1, "zzz", -1},
		{"non-number sorts after number", "n/a", 40, 1},
		{"equal strings", "x", "x", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := compareCell(tc.a, tc.b); got != tc.want {
				t.Errorf("compareCell(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}
