package ast

import (
	"testing"

	"candidc/internal/source"
)

func TestLabelHash(t *testing.T) {
	tests := []struct {
		name string
		want uint32
	}{
		{"", 0},
		{"a", 97},
		{"ab", 97*223 + 98},
		// известные значения из бинарного формата
		{"foo", 5097222},
		{"name", 1224700491},
	}
	for _, tt := range tests {
		if got := LabelHash(tt.name); got != tt.want {
			t.Errorf("LabelHash(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestLabelText(t *testing.T) {
	strs := source.NewInterner()
	id := strs.Intern("my field")
	cases := []struct {
		label Label
		want  string
	}{
		{Label{Kind: LabelName, Name: strs.Intern("head")}, "head"},
		{Label{Kind: LabelText, Name: id}, `"my field"`},
		{Label{Kind: LabelNumeric, ID: 42}, "42"},
		{Label{Kind: LabelPositional, ID: 1}, "1"},
	}
	for _, c := range cases {
		if got := c.label.Text(strs); got != c.want {
			t.Errorf("Text() = %q, want %q", got, c.want)
		}
	}
}

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[TypeExprID, int](0)
	if a.Get(0) != nil {
		t.Fatalf("index 0 must be the nil sentinel")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("unexpected arena state: id=%d len=%d", id, a.Len())
	}
	if a.Get(2) != nil {
		t.Fatalf("out of range index must return nil")
	}
}
