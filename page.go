package stockpdf

import "fmt"

// PageSize represents paper dimensions in PDF points (1/72 inch).
type PageSize struct {
	Width  float64 `yaml:"width"`  // Width in points.
	Height float64 `yaml:"height"` // Height in points.
}

// Standard paper sizes.
var (
	A4     = PageSize{Width: 595.28, Height: 841.89}
	A5     = PageSize{Width: 419.53, Height: 595.28}
	Letter = PageSize{Width: 612, Height: 792}
	Legal  = PageSize{Width: 612, Height: 1008}
)

// Orientation represents the page orientation.
type Orientation int

const (
	// Portrait is the default vertical orientation.
	Portrait Orientation = iota
	// Landscape rotates the page to horizontal orientation.
	Landscape
)

// String returns "portrait" or "landscape".
func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// UnmarshalText accepts "portrait" or "landscape".
func (o *Orientation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "portrait", "":
		*o = Portrait
	case "landscape":
		*o = Landscape
	default:
		return fmt.Errorf("stockpdf: unknown orientation %q", text)
	}
	return nil
}

// Margin represents page margins in points.
type Margin struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// UniformMargin returns a Margin with the same value on all sides.
func UniformMargin(pt float64) Margin {
	return Margin{Top: pt, Right: pt, Bottom: pt, Left: pt}
}

// Layout is the static geometry of the stock table. It does not depend on
// the rows being rendered.
//
// The header band is drawn on the first page only. Continuation pages
// start at ContinuationTop with no header; this matches the reports
// produced so far and is kept on purpose.
type Layout struct {
	// Size specifies the paper size. Defaults to A4.
	Size PageSize `yaml:"size"`

	// Orientation specifies portrait or landscape. Defaults to Portrait.
	Orientation Orientation `yaml:"orientation"`

	// Margin frames the title line. Defaults to 40pt on all sides.
	Margin Margin `yaml:"margin"`

	// Title is drawn centered at the top of the first page.
	Title string `yaml:"title"`

	// Headers label the four columns.
	Headers [4]string `yaml:"headers"`

	// ColumnWidths are laid out left to right with no gaps.
	ColumnWidths [4]float64 `yaml:"column_widths"`

	// RowHeight is the height of the header band and of every row band.
	RowHeight float64 `yaml:"row_height"`

	// TableLeft is the x offset of the first column.
	TableLeft float64 `yaml:"table_left"`

	// HeaderTop is the y offset of the header band on the first page. The
	// default leaves room for the title line below the top margin.
	HeaderTop float64 `yaml:"header_top"`

	// ContinuationTop is the y offset of the first row on later pages.
	ContinuationTop float64 `yaml:"continuation_top"`

	// BottomMargin is the space kept free below the last row of a page.
	// The default of 32 lets a band start anywhere above height - 60.
	BottomMargin float64 `yaml:"bottom_margin"`

	// CellInset is the horizontal padding between a cell edge and its text.
	CellInset float64 `yaml:"cell_inset"`
}

// DefaultLayout returns the stock report layout.
func DefaultLayout() Layout {
	return Layout{
		Size:            A4,
		Orientation:     Portrait,
		Margin:          UniformMargin(40),
		Title:           "Stock de Productos",
		Headers:         [4]string{"Código", "Descripción", "Rubro", "Stock"},
		ColumnWidths:    [4]float64{70, 220, 90, 60},
		RowHeight:       28,
		TableLeft:       48,
		HeaderTop:       102,
		ContinuationTop: 50,
		BottomMargin:    32,
		CellInset:       8,
	}
}

// resolved returns a Layout with all zero values replaced by defaults.
func (l Layout) resolved() Layout {
	d := DefaultLayout()
	r := l
	if r.Size == (PageSize{}) {
		r.Size = d.Size
	}
	if r.Margin == (Margin{}) {
		r.Margin = d.Margin
	}
	if r.Title == "" {
		r.Title = d.Title
	}
	if r.Headers == ([4]string{}) {
		r.Headers = d.Headers
	}
	if r.ColumnWidths == ([4]float64{}) {
		r.ColumnWidths = d.ColumnWidths
	}
	if r.RowHeight == 0 {
		r.RowHeight = d.RowHeight
	}
	if r.TableLeft == 0 {
		r.TableLeft = d.TableLeft
	}
	if r.HeaderTop == 0 {
		r.HeaderTop = d.HeaderTop
	}
	if r.ContinuationTop == 0 {
		r.ContinuationTop = d.ContinuationTop
	}
	if r.BottomMargin == 0 {
		r.BottomMargin = d.BottomMargin
	}
	if r.CellInset == 0 {
		r.CellInset = d.CellInset
	}
	return r
}

// Validate reports whether the resolved layout can paginate any number of
// rows.
func (l Layout) Validate() error {
	r := l.resolved()
	for i, w := range r.ColumnWidths {
		if w <= 0 {
			return fmt.Errorf("stockpdf: column %d width must be positive, got %v", i, w)
		}
		if 2*r.CellInset >= w {
			return fmt.Errorf("stockpdf: column %d width %v leaves no room inside inset %v", i, w, r.CellInset)
		}
	}
	if r.RowHeight <= 0 {
		return fmt.Errorf("stockpdf: row height must be positive, got %v", r.RowHeight)
	}
	if r.ContinuationTop+r.RowHeight > r.bottomLimit() {
		return fmt.Errorf("stockpdf: no row fits between %v and %v on continuation pages",
			r.ContinuationTop, r.bottomLimit())
	}
	return nil
}

// PageDimensions returns the page width and height in points, accounting
// for orientation.
func (l Layout) PageDimensions() (width, height float64) {
	r := l.resolved()
	if r.Orientation == Landscape {
		return r.Size.Height, r.Size.Width
	}
	return r.Size.Width, r.Size.Height
}

// ColumnX returns the left edge of column i: the table's left offset plus
// the widths of every preceding column.
func (l Layout) ColumnX(i int) float64 {
	r := l.resolved()
	x := r.TableLeft
	for j := 0; j < i && j < len(r.ColumnWidths); j++ {
		x += r.ColumnWidths[j]
	}
	return x
}

// TableWidth returns the summed column widths.
func (l Layout) TableWidth() float64 {
	return l.ColumnX(len(l.ColumnWidths)) - l.resolved().TableLeft
}

// UsableHeight is the vertical space available to row bands on a
// continuation page.
func (l Layout) UsableHeight() float64 {
	r := l.resolved()
	return r.bottomLimit() - r.ContinuationTop
}

// bottomLimit is the lowest y a row band may reach.
func (l Layout) bottomLimit() float64 {
	_, h := l.PageDimensions()
	return h - l.BottomMargin
}

// ptToInches converts PDF points to inches.
func ptToInches(pt float64) float64 {
	return pt / 72
}
