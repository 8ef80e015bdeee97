package pdfread

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// RGB is a device RGB color.
type RGB struct {
	R, G, B uint8
}

// Hex formats c as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) String() string { return c.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (c RGB) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }

// Run is a piece of text shown by a single operator. Coordinates use a
// top-left origin; Y is the baseline.
type Run struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Font  string  `json:"font"`
	Size  float64 `json:"size"`
	Color RGB     `json:"color"`
	Text  string  `json:"text"`
}

// Fill is a filled rectangle with a top-left origin.
type Fill struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Color RGB     `json:"color"`
}

// Content is what a page draws, in painting order.
type Content struct {
	Page   int     `json:"page"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fills  []Fill  `json:"fills"`
	Runs   []Run   `json:"runs"`
}

// Walk interprets the content streams of p.
func (d *Document) Walk(p Page) (*Content, error) {
	data, err := d.Content(p)
	if err != nil {
		return nil, err
	}
	w := &walker{
		c:     &Content{Page: p.Number, Width: p.Width, Height: p.Height},
		fonts: d.fontNames(p),
	}
	if err := w.run(data); err != nil {
		return nil, fmt.Errorf("pdfread: page %d: %w", p.Number, err)
	}
	return w.c, nil
}

// fontNames maps the font resource names of p to their base font names.
func (d *Document) fontNames(p Page) map[string]string {
	out := map[string]string{}
	res, _ := d.Resolve(p.resources)
	if res == nil || res.Kind != KindDict {
		return out
	}
	fonts, _ := d.Resolve(res.Dict["Font"])
	if fonts == nil || fonts.Kind != KindDict {
		return out
	}
	for name, ref := range fonts.Dict {
		if f, _ := d.Resolve(ref); f != nil && f.Kind == KindDict {
			if base, ok := f.Dict.Name("BaseFont"); ok {
				out[name] = base
			}
		}
	}
	return out
}

type gstate struct {
	fill RGB
}

type walker struct {
	c     *Content
	fonts map[string]string

	gs    gstate
	stack []gstate
	path  []Fill

	font     string
	size     float64
	leading  float64
	lineX    float64
	lineY    float64
	inText   bool
	operands []*Object
}

func (w *walker) run(data []byte) error {
	s := newScanner(data, 0)
	for {
		s.skip()
		if s.eof() {
			return nil
		}
		if startsObject(s.buf[s.pos]) {
			o, err := s.object()
			if err != nil {
				return err
			}
			w.operands = append(w.operands, o)
			continue
		}
		w.apply(s.operator())
		w.operands = w.operands[:0]
	}
}

func (w *walker) num(i int) float64 {
	if i >= len(w.operands) {
		return 0
	}
	f, _ := w.operands[i].Number()
	return f
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func (w *walker) apply(op string) {
	switch op {
	case "q":
		w.stack = append(w.stack, w.gs)
	case "Q":
		if n := len(w.stack); n > 0 {
			w.gs = w.stack[n-1]
			w.stack = w.stack[:n-1]
		}
	case "rg":
		w.gs.fill = RGB{channel(w.num(0)), channel(w.num(1)), channel(w.num(2))}
	case "g":
		v := channel(w.num(0))
		w.gs.fill = RGB{v, v, v}

	case "re":
		x, y, rw, rh := w.num(0), w.num(1), w.num(2), w.num(3)
		if rw < 0 {
			x, rw = x+rw, -rw
		}
		if rh < 0 {
			y, rh = y+rh, -rh
		}
		w.path = append(w.path, Fill{X: x, Y: w.c.Height - y - rh, W: rw, H: rh})
	case "f", "F", "f*", "B", "B*", "b", "b*":
		for _, r := range w.path {
			r.Color = w.gs.fill
			w.c.Fills = append(w.c.Fills, r)
		}
		w.path = w.path[:0]
	case "n", "S", "s":
		w.path = w.path[:0]

	case "BT":
		w.inText = true
		w.lineX, w.lineY = 0, 0
	case "ET":
		w.inText = false
	case "Tf":
		if len(w.operands) >= 2 && w.operands[0].Kind == KindName {
			w.font = w.operands[0].Name
			w.size = w.num(1)
		}
	case "TL":
		w.leading = w.num(0)
	case "Td":
		w.lineX += w.num(0)
		w.lineY += w.num(1)
	case "TD":
		w.leading = -w.num(1)
		w.lineX += w.num(0)
		w.lineY += w.num(1)
	case "Tm":
		w.lineX, w.lineY = w.num(4), w.num(5)
	case "T*":
		w.lineY -= w.leading
	case "Tj":
		if len(w.operands) > 0 {
			w.show(w.operands[0].Bytes)
		}
	case "'":
		w.lineY -= w.leading
		if len(w.operands) > 0 {
			w.show(w.operands[0].Bytes)
		}
	case `"`:
		w.lineY -= w.leading
		if len(w.operands) > 2 {
			w.show(w.operands[2].Bytes)
		}
	case "TJ":
		if len(w.operands) > 0 {
			var b []byte
			for _, it := range w.operands[0].Items {
				if it.Kind == KindString {
					b = append(b, it.Bytes...)
				}
			}
			w.show(b)
		}
	}
}

func (w *walker) show(b []byte) {
	if !w.inText || len(b) == 0 {
		return
	}
	font := w.fonts[w.font]
	if font == "" {
		font = w.font
	}
	w.c.Runs = append(w.c.Runs, Run{
		X:     w.lineX,
		Y:     w.c.Height - w.lineY,
		Font:  font,
		Size:  w.size,
		Color: w.gs.fill,
		Text:  winAnsiString(b),
	})
}

// winAnsiString decodes bytes shown with a WinAnsiEncoding font.
func winAnsiString(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		sb.WriteRune(charmap.Windows1252.DecodeByte(c))
	}
	return sb.String()
}

// decodeTextString decodes a PDF text string, which is either UTF-16BE
// with a byte order mark or a single-byte encoding.
func decodeTextString(b []byte) string {
	if len(b) >= 2 && b[0] == 0xfe && b[1] == 0xff {
		u := make([]uint16, 0, (len(b)-2)/2)
		for i := 2; i+1 < len(b); i += 2 {
			u = append(u, uint16(b[i])<<8|uint16(b[i+1]))
		}
		return string(utf16.Decode(u))
	}
	return winAnsiString(b)
}

// Text returns the runs of c as lines of text, top to bottom and left to
// right, with runs on the same baseline joined by a tab.
func (c *Content) Text() string {
	lines := c.Lines()
	out := make([]string, len(lines))
	for i, l := range lines {
		parts := make([]string, len(l))
		for j, r := range l {
			parts[j] = r.Text
		}
		out[i] = strings.Join(parts, "\t")
	}
	return strings.Join(out, "\n")
}
