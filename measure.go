package stockpdf

import (
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// Measurer reports the rendered width of a single line of text in points.
type Measurer interface {
	TextWidth(f Font, s string) float64
}

// coreMetrics measures text with the width tables of the PDF core fonts.
// Each instance owns its own fpdf state and must not be shared between
// goroutines.
type coreMetrics struct {
	pdf *fpdf.Fpdf
}

func newCoreMetrics() *coreMetrics {
	return &coreMetrics{pdf: fpdf.New("P", "pt", "A4", "")}
}

// TextWidth implements Measurer.
func (m *coreMetrics) TextWidth(f Font, s string) float64 {
	m.pdf.SetFont(f.Family, f.Style, f.Size)
	return m.pdf.GetStringWidth(winAnsi(s))
}

// winAnsi converts UTF-8 text to the single-byte WinAnsi encoding used by
// the core fonts. Runes outside the code page become '?'.
func winAnsi(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			sb.WriteByte(byte(r))
			continue
		}
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		sb.WriteByte(b)
	}
	return sb.String()
}

// singleLine folds line breaks and tabs into spaces; cells hold one line.
func singleLine(s string) string {
	if !strings.ContainsAny(s, "\r\n\t") {
		return s
	}
	return strings.Join(strings.Fields(strings.NewReplacer("\r", " ", "\n", " ", "\t", " ").Replace(s)), " ")
}

// fit returns s unchanged if it fits in width, otherwise the longest rune
// prefix of s followed by ellipsis that fits. If not even the ellipsis
// fits, the empty string is returned.
func fit(m Measurer, f Font, s string, width float64, ellipsis string) string {
	if m.TextWidth(f, s) <= width {
		return s
	}
	runes := []rune(s)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.TextWidth(f, string(runes[:mid])+ellipsis) <= width {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if lo == 0 && m.TextWidth(f, ellipsis) > width {
		return ""
	}
	return strings.TrimRight(string(runes[:lo]), " ") + ellipsis
}
