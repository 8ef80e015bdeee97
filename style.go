package stockpdf

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// ParseColor parses "#rrggbb" (the leading '#' is optional).
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("stockpdf: invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("stockpdf: invalid color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func mustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Font names one of the PDF core fonts.
type Font struct {
	Family string  `yaml:"family"` // Helvetica, Times or Courier
	Style  string  `yaml:"style"`  // "", "B", "I" or "BI"
	Size   float64 `yaml:"size"`   // points
}

// Validate reports whether f names a core font fpdf can set.
func (f Font) Validate() error {
	switch strings.ToLower(f.Family) {
	case "helvetica", "arial", "times", "courier":
	default:
		return fmt.Errorf("stockpdf: unknown font family %q, want Helvetica, Times or Courier", f.Family)
	}
	if strings.Trim(strings.ToUpper(f.Style), "BIU") != "" {
		return fmt.Errorf("stockpdf: invalid font style %q", f.Style)
	}
	if f.Size <= 0 {
		return fmt.Errorf("stockpdf: font size must be positive, got %v", f.Size)
	}
	return nil
}

// Style holds the presentation of the table: colors, fonts and the
// ellipsis marker. Pagination never looks at it.
type Style struct {
	Background Color `yaml:"background"`

	TitleColor Color `yaml:"title_color"`
	TitleFont  Font  `yaml:"title_font"`

	HeaderFill Color `yaml:"header_fill"`
	HeaderText Color `yaml:"header_text"`
	HeaderFont Font  `yaml:"header_font"`

	// RowFills alternate by global row index: even rows use RowFills[0].
	RowFills [2]Color `yaml:"row_fills"`
	RowText  Color    `yaml:"row_text"`
	RowFont  Font     `yaml:"row_font"`

	// Ellipsis replaces the clipped tail of text that does not fit its cell.
	Ellipsis string `yaml:"ellipsis"`
}

// DefaultStyle returns the dark theme used by the stock report.
func DefaultStyle() Style {
	return Style{
		Background: mustColor("#181c23"),
		TitleColor: mustColor("#00b7c2"),
		TitleFont:  Font{Family: "Helvetica", Style: "B", Size: 20},
		HeaderFill: mustColor("#00b7c2"),
		HeaderText: mustColor("#f4f4f4"),
		HeaderFont: Font{Family: "Helvetica", Style: "B", Size: 13},
		RowFills:   [2]Color{mustColor("#23272e"), mustColor("#181c23")},
		RowText:    mustColor("#f4f4f4"),
		RowFont:    Font{Family: "Helvetica", Size: 11},
		Ellipsis:   "…",
	}
}

// RowFill returns the band color for the row at global index i.
func (s Style) RowFill(i int) Color {
	return s.RowFills[i%2]
}

// resolved fills zero fonts and an empty ellipsis from the defaults.
// Colors are taken as given since black is a valid choice.
func (s Style) resolved() Style {
	d := DefaultStyle()
	r := s
	if r.TitleFont == (Font{}) {
		r.TitleFont = d.TitleFont
	}
	if r.HeaderFont == (Font{}) {
		r.HeaderFont = d.HeaderFont
	}
	if r.RowFont == (Font{}) {
		r.RowFont = d.RowFont
	}
	if r.Ellipsis == "" {
		r.Ellipsis = d.Ellipsis
	}
	return r
}

// Validate checks the fonts of s after zero fonts take their defaults.
func (s Style) Validate() error {
	r := s.resolved()
	for _, f := range []struct {
		name string
		font Font
	}{
		{"title", r.TitleFont},
		{"header", r.HeaderFont},
		{"row", r.RowFont},
	} {
		if err := f.font.Validate(); err != nil {
			return fmt.Errorf("%s font: %w", f.name, err)
		}
	}
	return nil
}
