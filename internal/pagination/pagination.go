// Package pagination computes bounded, ellipsis-aware page number windows.
// Everything here is pure integer-interval arithmetic; nothing is persisted.
package pagination

// Range is a closed integer interval of page numbers. A range with
// Start > End is empty; consumers never render empty ranges.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Empty reports whether the range contains no pages.
func (r Range) Empty() bool { return r.Start > r.End }

// Len returns the number of pages in the range.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Pages expands the range into its page numbers, in ascending order.
func (r Range) Pages() []int {
	if r.Empty() {
		return nil
	}
	pages := make([]int, 0, r.Len())
	for p := r.Start; p <= r.End; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Window is the set of page numbers to display around Current. The four
// ranges are pairwise disjoint and none of them contains Current, so no page
// number is ever rendered twice. Ellipsis flags are set only when the
// neighboring ranges do not abut.
type Window struct {
	Current         int   `json:"current"`
	Total           int   `json:"total"`
	LeftEdge        Range `json:"left_edge"`
	LeftEllipsis    bool  `json:"left_ellipsis"`
	LeftContiguous  Range `json:"left_contiguous"`
	RightContiguous Range `json:"right_contiguous"`
	RightEllipsis   bool  `json:"right_ellipsis"`
	RightEdge       Range `json:"right_edge"`
}

// Compute builds the window for the current page. The first and last
// edgeCount pages are always shown; up to displayCount pages surround the
// current page, split with truncated halves and the extra page before the
// current one when displayCount is odd. Degenerate inputs are clamped rather
// than rejected, and small totals collapse to a full window with no ellipses.
func Compute(current, total, edgeCount, displayCount int) Window {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}
	if edgeCount < 0 {
		edgeCount = 0
	}
	if displayCount < 0 {
		displayCount = 0
	}

	// Truncate, not round: the smaller half goes after the current page.
	after := displayCount / 2
	before := displayCount - after

	w := Window{Current: current, Total: total}

	// Edges are clipped so they can never swallow the current page or each
	// other; the contiguous ranges are then carved out of what is left, so
	// the intervals are disjoint by construction.
	w.LeftEdge = Range{Start: 1, End: min(edgeCount, current-1)}
	w.RightEdge = Range{
		Start: max(total-edgeCount+1, max(current+1, w.LeftEdge.End+1)),
		End:   total,
	}
	w.LeftContiguous = Range{
		Start: max(current-before, w.LeftEdge.End+1),
		End:   current - 1,
	}
	w.RightContiguous = Range{
		Start: current + 1,
		End:   min(current+after, w.RightEdge.Start-1),
	}

	leftNext := current
	if !w.LeftContiguous.Empty() {
		leftNext = w.LeftContiguous.Start
	}
	w.LeftEllipsis = !w.LeftEdge.Empty() && leftNext-w.LeftEdge.End > 1

	rightPrev := current
	if !w.RightContiguous.Empty() {
		rightPrev = w.RightContiguous.End
	}
	w.RightEllipsis = !w.RightEdge.Empty() && w.RightEdge.Start-rightPrev > 1

	return w
}

// Pages returns every displayed page number in display order, the current
// page included.
func (w Window) Pages() []int {
	pages := w.LeftEdge.Pages()
	pages = append(pages, w.LeftContiguous.Pages()...)
	pages = append(pages, w.Current)
	pages = append(pages, w.RightContiguous.Pages()...)
	pages = append(pages, w.RightEdge.Pages()...)
	return pages
}

// PageCount returns the number of pages needed for items at perPage each.
// An empty collection still has one (empty) page.
func PageCount(items, perPage int) int {
	if perPage < 1 {
		return 1
	}
	pages := (items + perPage - 1) / perPage
	if pages < 1 {
		return 1
	}
	return pages
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
