package stockpdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Backend turns a laid out [Document] into PDF bytes.
type Backend interface {
	Paint(ctx context.Context, doc *Document) ([]byte, error)
}

// FPDFBackend paints documents in-process with the PDF core fonts.
// The zero value is ready to use and is safe for concurrent use: every
// call builds its own fpdf instance.
type FPDFBackend struct {
	// Uncompressed disables content stream compression.
	Uncompressed bool

	// CreationDate is stamped into the document info. A zero value uses
	// the current time.
	CreationDate time.Time
}

// Paint implements Backend.
func (b FPDFBackend) Paint(ctx context.Context, doc *Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: doc.Width, Ht: doc.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(!b.Uncompressed)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("go-stock-pdf", false)
	if !b.CreationDate.IsZero() {
		pdf.SetCreationDate(b.CreationDate)
	}

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, box := range page.Boxes {
			pdf.SetFillColor(int(box.Fill.R), int(box.Fill.G), int(box.Fill.B))
			pdf.Rect(box.X, box.Y, box.W, box.H, "F")
		}
		for _, lb := range page.Labels {
			pdf.SetFont(lb.Font.Family, lb.Font.Style, lb.Font.Size)
			pdf.SetTextColor(int(lb.Color.R), int(lb.Color.G), int(lb.Color.B))
			pdf.Text(lb.X, lb.Y, winAnsi(lb.Text))
		}
		if pdf.Err() {
			return nil, pdf.Error()
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("fpdf output: %w", err)
	}
	return buf.Bytes(), nil
}
