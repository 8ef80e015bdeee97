package stockpdf

// Cursor is the mutable position of the renderer while rows are laid
// out: the y offset of the next band and the zero-based page index.
type Cursor struct {
	Y    float64
	Page int
}

// Placement records where one row landed.
type Placement struct {
	Index int     // global row index
	Page  int     // zero-based page index
	Y     float64 // top of the row band
}

// Shade returns 0 for even rows and 1 for odd rows. Parity is global
// across the document and does not restart on a new page.
func (p Placement) Shade() int {
	return p.Index % 2
}

// Plan is the page assignment for a row sequence. It depends only on the
// number of rows and the layout, so the same input always yields the same
// plan.
type Plan struct {
	Pages int
	Rows  []Placement
}

// PageRows returns the placements on page p, in row order.
func (pl Plan) PageRows(p int) []Placement {
	var out []Placement
	for _, r := range pl.Rows {
		if r.Page == p {
			out = append(out, r)
		}
	}
	return out
}

// Paginate assigns n rows to pages. The first row band starts directly
// below the header band; a new page is started whenever the next band
// would cross the bottom margin, and the row that triggered the break is
// placed at the top of the new page.
func Paginate(n int, layout Layout) Plan {
	l := layout.resolved()
	limit := l.bottomLimit()

	cur := Cursor{Y: l.HeaderTop + l.RowHeight}
	rows := make([]Placement, 0, n)
	for i := 0; i < n; i++ {
		if cur.Y+l.RowHeight > limit {
			cur.Page++
			cur.Y = l.ContinuationTop
		}
		rows = append(rows, Placement{Index: i, Page: cur.Page, Y: cur.Y})
		cur.Y += l.RowHeight
	}
	return Plan{Pages: cur.Page + 1, Rows: rows}
}

// RowsPerPage returns how many rows fit on the first page and on every
// continuation page.
func RowsPerPage(layout Layout) (first, rest int) {
	l := layout.resolved()
	limit := l.bottomLimit()
	first = int((limit - (l.HeaderTop + l.RowHeight)) / l.RowHeight)
	if first < 0 {
		first = 0
	}
	rest = int((limit - l.ContinuationTop) / l.RowHeight)
	return first, rest
}
