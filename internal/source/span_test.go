package source

import (
	"testing"
)

func TestSpan_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"two inserts at same point", Point(0, 5), Point(0, 5), false},
		{"insert inside replacement", Point(0, 5), Span{Start: 3, End: 8}, true},
		{"insert at replacement start", Point(0, 3), Span{Start: 3, End: 8}, true},
		{"insert at replacement end", Point(0, 8), Span{Start: 3, End: 8}, false},
		{"overlapping ranges", Span{Start: 0, End: 4}, Span{Start: 3, End: 8}, true},
		{"touching ranges", Span{Start: 0, End: 3}, Span{Start: 3, End: 8}, false},
		{"different files", Span{File: 1, Start: 0, End: 4}, Span{File: 2, Start: 0, End: 4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpan_Len(t *testing.T) {
	s := Span{Start: 3, End: 10}
	if s.Len() != 7 {
		t.Errorf("Len() = %d, want 7", s.Len())
	}
	if s.Empty() {
		t.Error("Empty() = true for non-empty span")
	}
	if !Point(0, 4).Empty() {
		t.Error("Point should be empty")
	}
}
