package stockpdf

import "errors"

// Sentinel errors returned by the library. Failures carry the underlying
// cause as well, so callers match on these with [errors.Is].
var (
	// ErrInvalidUpload is returned when no spreadsheet bytes were supplied.
	ErrInvalidUpload = errors.New("stockpdf: invalid upload")

	// ErrParse is returned when the input cannot be read as a supported
	// spreadsheet format.
	ErrParse = errors.New("stockpdf: cannot parse spreadsheet")

	// ErrNoSheet is returned when the workbook contains zero sheets.
	ErrNoSheet = errors.New("stockpdf: workbook has no sheets")

	// ErrRender is returned when the PDF document could not be produced.
	ErrRender = errors.New("stockpdf: rendering failed")

	// ErrClosed is returned when attempting to use a closed backend or [Converter].
	ErrClosed = errors.New("stockpdf: converter is closed")
)

// IsInputError reports whether err was caused by the uploaded bytes rather
// than by the renderer.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidUpload) ||
		errors.Is(err, ErrParse) ||
		errors.Is(err, ErrNoSheet)
}
