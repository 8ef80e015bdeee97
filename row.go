package stockpdf

// Row is one product record projected out of the spreadsheet: code,
// description, category and stock quantity, all as display strings.
type Row [4]string

// Code returns the product code.
func (r Row) Code() string { return r[0] }

// Description returns the product description.
func (r Row) Description() string { return r[1] }

// Category returns the product category.
func (r Row) Category() string { return r[2] }

// Stock returns the stock quantity as it was displayed in the sheet.
func (r Row) Stock() string { return r[3] }

// IsBlank reports whether every field is empty.
func (r Row) IsBlank() bool {
	for _, v := range r {
		if v != "" {
			return false
		}
	}
	return true
}
