package stockpdf

import "testing"

func TestColorHex(t *testing.T) {
	c, err := ParseColor("#00B7C2")
	if err != nil {
		t.Fatal(err)
	}
	if c != (Color{0x00, 0xb7, 0xc2}) || c.Hex() != "#00b7c2" {
		t.Errorf("ParseColor = %+v (%s)", c, c.Hex())
	}
	if _, err := ParseColor("teal"); err == nil {
		t.Error("expected error for named color")
	}
}

func TestStyleValidate(t *testing.T) {
	if err := DefaultStyle().Validate(); err != nil {
		t.Errorf("default style invalid: %v", err)
	}
	if err := (Style{}).Validate(); err != nil {
		t.Errorf("zero style invalid: %v", err)
	}
	ok := Style{RowFont: Font{Family: "times", Style: "bi", Size: 9}}
	if err := ok.Validate(); err != nil {
		t.Errorf("lower-case times rejected: %v", err)
	}

	tests := []struct {
		name  string
		style Style
	}{
		{"unknown family", Style{RowFont: Font{Family: "Comic Sans", Size: 11}}},
		{"missing family", Style{TitleFont: Font{Size: 20}}},
		{"bad style letter", Style{HeaderFont: Font{Family: "Helvetica", Style: "X", Size: 13}}},
		{"zero size", Style{RowFont: Font{Family: "Courier", Style: "B"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.style.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
