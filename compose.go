package stockpdf

// Box is a filled rectangle in page coordinates (origin top-left, y down).
type Box struct {
	X, Y, W, H float64
	Fill       Color
}

// Label is a single line of text. Y is the baseline.
type Label struct {
	X, Y  float64
	Text  string
	Font  Font
	Color Color
}

// Page is everything drawn on one page, in painting order: boxes first,
// then labels.
type Page struct {
	Boxes  []Box
	Labels []Label
}

// Document is a fully laid out report. Backends only paint it; every
// measurement and truncation has already been applied.
type Document struct {
	Title  string
	Width  float64
	Height float64
	Pages  []Page
}

// Compose lays rows out on pages following plan. Each page starts with a
// full-bleed background box. The first page carries the centered title
// and the header band; continuation pages carry rows only.
func Compose(rows []Row, plan Plan, layout Layout, style Style, m Measurer) *Document {
	l := layout.resolved()
	s := style.resolved()
	w, h := l.PageDimensions()

	doc := &Document{
		Title:  l.Title,
		Width:  w,
		Height: h,
		Pages:  make([]Page, plan.Pages),
	}
	for i := range doc.Pages {
		doc.Pages[i].Boxes = append(doc.Pages[i].Boxes, Box{X: 0, Y: 0, W: w, H: h, Fill: s.Background})
	}

	first := &doc.Pages[0]
	title := fit(m, s.TitleFont, singleLine(l.Title), w-l.Margin.Left-l.Margin.Right, s.Ellipsis)
	tw := m.TextWidth(s.TitleFont, title)
	first.Labels = append(first.Labels, Label{
		X:     l.Margin.Left + (w-l.Margin.Left-l.Margin.Right-tw)/2,
		Y:     l.Margin.Top + s.TitleFont.Size*0.8,
		Text:  title,
		Font:  s.TitleFont,
		Color: s.TitleColor,
	})
	for i, head := range l.Headers {
		addCell(first, l, m, i, l.HeaderTop, head, s.HeaderFill, s.HeaderText, s.HeaderFont, s.Ellipsis)
	}

	for _, p := range plan.Rows {
		page := &doc.Pages[p.Page]
		row := rows[p.Index]
		for i, v := range row {
			addCell(page, l, m, i, p.Y, v, s.RowFill(p.Index), s.RowText, s.RowFont, s.Ellipsis)
		}
	}
	return doc
}

// addCell appends one table cell: a band-sized box and its left-aligned,
// vertically centered text clipped to the column's inner width.
func addCell(pg *Page, l Layout, m Measurer, col int, y float64, text string, fill, fg Color, f Font, ellipsis string) {
	x := l.ColumnX(col)
	cw := l.ColumnWidths[col]
	pg.Boxes = append(pg.Boxes, Box{X: x, Y: y, W: cw, H: l.RowHeight, Fill: fill})

	v := fit(m, f, singleLine(text), cw-2*l.CellInset, ellipsis)
	if v == "" {
		return
	}
	pg.Labels = append(pg.Labels, Label{
		X:     x + l.CellInset,
		Y:     y + l.RowHeight/2 + f.Size*0.35,
		Text:  v,
		Font:  f,
		Color: fg,
	})
}
