// Package stockpdf turns stock spreadsheets into paginated PDF reports.
//
// The pipeline has two stages that run one after the other:
//
//   - Extraction reads the first sheet of an .xlsx or legacy .xls workbook,
//     skips the template preamble and projects four columns (code,
//     description, category, stock) into [Row] values, dropping blank rows.
//   - Rendering lays the rows out as a dark-themed table on A4 pages and
//     paints the result with a [Backend].
//
// # Converting uploads
//
// For one-off conversions use the package-level helper:
//
//	res, err := stockpdf.Convert(ctx, data)
//
// For repeated conversions create a [Converter]:
//
//	conv, err := stockpdf.NewConverter(stockpdf.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	res, err := conv.Convert(ctx, data)
//
// Errors caused by the input match [ErrInvalidUpload], [ErrParse] or
// [ErrNoSheet]; use [IsInputError] to tell them apart from [ErrRender].
//
// # Templates
//
// [DefaultTemplate] skips nine rows and reads columns A, C, F and H. Other
// spreadsheet layouts are described with a [Template]:
//
//	conv, err := stockpdf.NewConverter(stockpdf.WithTemplate(stockpdf.Template{
//	    SkipRows: 1,
//	    Columns:  [4]int{0, 1, 2, 3},
//	}))
//
// # Layout and pagination
//
// The table geometry lives in [Layout] and the colors and fonts in
// [Style]. Pagination depends on the layout only: [Paginate] assigns every
// row to a page and a y offset, breaking before a row whose band would
// cross the bottom margin. The title and the header band are drawn on the
// first page only; continuation pages start higher up with rows alone.
// Row shading follows the global row index, so it does not restart on a
// new page.
//
// Text that does not fit its cell is cut and finished with the style's
// ellipsis.
//
// # Backends
//
// [FPDFBackend] is the default and paints in-process with the PDF core
// fonts. [ChromeBackend] prints an equivalent HTML page through headless
// Chrome; it keeps a browser running and must be closed:
//
//	chrome, err := stockpdf.NewChromeBackend(stockpdf.WithNoSandbox())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer chrome.Close()
//
//	res, err := stockpdf.Render(ctx, rows, stockpdf.WithBackend(chrome))
//
// A [Result] gives access to the generated PDF:
//
//	res.Bytes()                         // []byte
//	res.Pages()                         // page count
//	res.WriteTo(w)                      // io.WriterTo
//	res.WriteToFile("stock.pdf", 0o644) // write to disk
package stockpdf
