package pagination

import (
	"reflect"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name          string
		current       int
		total         int
		edgeCount     int
		displayCount  int
		pages         []int
		leftEllipsis  bool
		rightEllipsis bool
	}{
		{
			name:          "middle of long listing",
			current:       5,
			total:         20,
			edgeCount:     2,
			displayCount:  4,
			pages:         []int{1, 2, 3, 4, 5, 6, 7, 19, 20},
			rightEllipsis: true,
		},
		{
			name:          "first page",
			current:       1,
			total:         20,
			edgeCount:     2,
			displayCount:  4,
			pages:         []int{1, 2, 3, 19, 20},
			rightEllipsis: true,
		},
		{
			name:         "last page",
			current:      20,
			total:        20,
			edgeCount:    2,
			displayCount: 4,
			pages:        []int{1, 2, 18, 19, 20},
			leftEllipsis: true,
		},
		{
			name:         "small total collapses to full window",
			current:      4,
			total:        8,
			edgeCount:    2,
			displayCount: 4,
			pages:        []int{1, 2, 3, 4, 5, 6, 7, 8},
		},
		{
			name:          "odd display count puts the extra page before current",
			current:       10,
			total:         20,
			edgeCount:     1,
			displayCount:  5,
			pages:         []int{1, 7, 8, 9, 10, 11, 12, 20},
			leftEllipsis:  true,
			rightEllipsis: true,
		},
		{
			name:         "single page",
			current:      1,
			total:        1,
			edgeCount:    2,
			displayCount: 4,
			pages:        []int{1},
		},
		{
			name:         "degenerate inputs are clamped",
			current:      0,
			total:        0,
			edgeCount:    2,
			displayCount: 4,
			pages:        []int{1},
		},
		{
			name:         "current clamped to total",
			current:      99,
			total:        5,
			edgeCount:    2,
			displayCount: 4,
			pages:        []int{1, 2, 3, 4, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Compute(tt.current, tt.total, tt.edgeCount, tt.displayCount)
			if got := w.Pages(); !reflect.DeepEqual(got, tt.pages) {
				t.Errorf("Pages() = %v, want %v", got, tt.pages)
			}
			if w.LeftEllipsis != tt.leftEllipsis {
				t.Errorf("LeftEllipsis = %v, want %v", w.LeftEllipsis, tt.leftEllipsis)
			}
			if w.RightEllipsis != tt.rightEllipsis {
				t.Errorf("RightEllipsis = %v, want %v", w.RightEllipsis, tt.rightEllipsis)
			}
		})
	}
}

// Whatever the inputs, the window must list each page once, in ascending
// order, inside [1, total], with the current page present.
func TestComputeWindowProperties(t *testing.T) {
	for total := 1; total <= 25; total++ {
		for current := 1; current <= total; current++ {
			for edgeCount := 0; edgeCount <= 3; edgeCount++ {
				for displayCount := 0; displayCount <= 6; displayCount++ {
					w := Compute(current, total, edgeCount, displayCount)
					pages := w.Pages()

					seen := make(map[int]bool)
					prev := 0
					foundCurrent := false
					for _, p := range pages {
						if p < 1 || p > total {
							t.Fatalf("Compute(%d,%d,%d,%d): page %d out of bounds", current, total, edgeCount, displayCount, p)
						}
						if seen[p] {
							t.Fatalf("Compute(%d,%d,%d,%d): page %d rendered twice", current, total, edgeCount, displayCount, p)
						}
						if p <= prev {
							t.Fatalf("Compute(%d,%d,%d,%d): pages %v not ascending", current, total, edgeCount, displayCount, pages)
						}
						seen[p] = true
						prev = p
						if p == current {
							foundCurrent = true
						}
					}
					if !foundCurrent {
						t.Fatalf("Compute(%d,%d,%d,%d): current page missing from %v", current, total, edgeCount, displayCount, pages)
					}
				}
			}
		}
	}
}

func TestRange(t *testing.T) {
	empty := Range{Start: 3, End: 2}
	if !empty.Empty() {
		t.Error("Empty() = false for inverted range")
	}
	if empty.Len() != 0 {
		t.Errorf("Len() = %d, want 0", empty.Len())
	}
	if empty.Pages() != nil {
		t.Errorf("Pages() = %v, want nil", empty.Pages())
	}

	r := Range{Start: 4, End: 6}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
	if got := r.Pages(); !reflect.DeepEqual(got, []int{4, 5, 6}) {
		t.Errorf("Pages() = %v, want [4 5 6]", got)
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		items    int
		perPage  int
		expected int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{5, 0, 1},
	}

	for _, tt := range tests {
		if got := PageCount(tt.items, tt.perPage); got != tt.expected {
			t.Errorf("PageCount(%d, %d) = %d, want %d", tt.items, tt.perPage, got, tt.expected)
		}
	}
}
