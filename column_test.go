package gridkit

import (
	"math"
	"testing"
)

func TestColumnFluentConfig(t *testing.T) {
	c := NewColumn("rate", "Pay Rate", func(p person) any { return p.age }).
		Sort().Filter().Sized(90).Bounds(60, 300).Aligned(AlignRight).Stick()

	if c.ID != "rate" || c.Header != "Pay Rate" {
		t.Fatalf("identity wrong: %+v", c)
	}
	if !c.Sortable || !c.Filterable || !c.Sticky {
		t.Fatal("flags not set")
	}
	if c.Width != 90 || c.MinWidth != 60 || c.MaxWidth != 300 {
		t.Fatalf("width config wrong: %+v", c)
	}
	if c.Align != AlignRight {
		t.Fatal("alignment not set")
	}
}

func TestRendererPresets(t *testing.T) {
	row := person{id: "1", name: "A", city: "X", age: 1234567.5}

	t.Run("number inserts separators", func(t *testing.T) {
		c := NewColumn("age", "Age", func(p person) any { return p.age }).Number(1)
		if got := displayString(c, row); got != "1,234,567.5" {
			t.Errorf("got %q", got)
		}
		if c.Align != AlignRight {
			t.Error("numeric preset should right-align")
		}
	})

	t.Run("currency prefixes the symbol", func(t *testing.T) {
		c := NewColumn("age", "Age", func(p person) any { return p.age }).Currency("$", 2)
		if got := displayString(c, row); got != "$1,234,567.50" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("percent", func(t *testing.T) {
		c := NewColumn("age", "Age", func(p person) any { return 12.345 }).Percent(1)
		if got := displayString(c, row); got != "12.3%" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("bool labels", func(t *testing.T) {
		c := NewColumn("on", "On", func(p person) any { return true }).BoolLabel("yes", "no")
		if got := displayString(c, row); got != "yes" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("renderer never affects filtering or sorting", func(t *testing.T) {
		c := NewColumn("age", "Age", func(p person) any { return p.age }).
			Renders(func(p person) string { return "masked" })
		if got := cellString(c, row); got == "masked" {
			t.Fatal("cellString must read through the accessor")
		}
	})
}

func TestToNumber(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"int", 42, 42},
		{"float", 4.5, 4.5},
		{"uint", uint8(7), 7},
		{"numeric string", " 30 ", 30},
		{"negative string", "-2.5", -2.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := toNumber(tc.in); got != tc.want {
				t.Errorf("toNumber(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}

	t.Run("non-numeric yields NaN", func(t *testing.T) {
		for _, v := range []any{"n/a", "", nil, struct{}{}} {
			if !math.IsNaN(toNumber(v)) {
				t.Errorf("toNumber(%#v) should be NaN", v)
			}
		}
	})

	t.Run("every NaN comparison is false", func(t *testing.T) {
		n := toNumber("n/a")
		if n > 30 || n < 30 || n >= 30 || n <= 30 {
			t.Fatal("NaN compared true")
		}
	})
}

func TestInsertCommas(t *testing.T) {
	cases := map[string]string{
		"5":           "5",
		"123":         "123",
		"1234":        "1,234",
		"1234567":     "1,234,567",
		"-1234.56":    "-1,234.56",
		"1000000.001": "1,000,000.001",
	}
	for in, want := range cases {
		if got := insertCommas(in); got != want {
			t.Errorf("insertCommas(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFitCell(t *testing.T) {
	t.Run("pads left alignment", func(t *testing.T) {
		if got := fitCell("ab", 5, AlignLeft); got != "ab   " {
			t.Errorf("got %q", got)
		}
	})
	t.Run("pads right alignment", func(t *testing.T) {
		if got := fitCell("ab", 5, AlignRight); got != "   ab" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("centers", func(t *testing.T) {
		if got := fitCell("ab", 6, AlignCenter); got != "  ab  " {
			t.Errorf("got %q", got)
		}
	})
	t.Run("truncates with ellipsis", func(t *testing.T) {
		got := fitCell("abcdefgh", 5, AlignLeft)
		if len([]rune(got)) == 0 || []rune(got)[len([]rune(got))-1] != '…' {
			t.Errorf("expected truncation tail, got %q", got)
		}
	})
}
