package stockpdf

import (
	"reflect"
	"testing"
)

func TestPaginate_PageCounts(t *testing.T) {
	tests := []struct {
		rows  int
		pages int
	}{
		{0, 1},
		{1, 1},
		{24, 1},
		{25, 2},
		{51, 2},
		{52, 3},
		{78, 3},
		{79, 4},
	}
	for _, tt := range tests {
		plan := Paginate(tt.rows, DefaultLayout())
		if plan.Pages != tt.pages {
			t.Errorf("Paginate(%d).Pages = %d, want %d", tt.rows, plan.Pages, tt.pages)
		}
		if len(plan.Rows) != tt.rows {
			t.Errorf("Paginate(%d) placed %d rows", tt.rows, len(plan.Rows))
		}
	}
}

func TestRowsPerPage(t *testing.T) {
	first, rest := RowsPerPage(DefaultLayout())
	if first != 24 || rest != 27 {
		t.Errorf("RowsPerPage = (%d, %d), want (24, 27)", first, rest)
	}
}

func TestPaginate_RowsOnEachPage(t *testing.T) {
	// A band may start at any y up to height - 60.
	plan := Paginate(80, DefaultLayout())
	want := []int{24, 27, 27, 2}
	if plan.Pages != len(want) {
		t.Fatalf("Pages = %d, want %d", plan.Pages, len(want))
	}
	for p, n := range want {
		if got := len(plan.PageRows(p)); got != n {
			t.Errorf("page %d holds %d rows, want %d", p+1, got, n)
		}
	}
	limit := A4.Height - 60
	for _, r := range plan.Rows {
		if r.Y > limit {
			t.Errorf("row %d starts at %v, below %v", r.Index, r.Y, limit)
		}
	}
}

func TestPaginate_Positions(t *testing.T) {
	l := DefaultLayout()
	plan := Paginate(30, l)

	if got := plan.Rows[0]; got.Page != 0 || got.Y != 130 {
		t.Errorf("row 0 = %+v, want page 0 at y 130", got)
	}
	if got := plan.Rows[23]; got.Page != 0 || got.Y != 130+23*28 {
		t.Errorf("row 23 = %+v", got)
	}
	if got := plan.Rows[24]; got.Page != 1 || got.Y != l.ContinuationTop {
		t.Errorf("row 24 = %+v, want page 1 at continuation top", got)
	}
	limit := l.bottomLimit()
	for _, p := range plan.Rows {
		if p.Y+l.RowHeight > limit {
			t.Errorf("row %d band ends at %v, past %v", p.Index, p.Y+l.RowHeight, limit)
		}
	}
}

func TestPaginate_OrderPreserved(t *testing.T) {
	plan := Paginate(60, DefaultLayout())
	for i, p := range plan.Rows {
		if p.Index != i {
			t.Fatalf("placement %d has index %d", i, p.Index)
		}
		if i > 0 {
			prev := plan.Rows[i-1]
			if p.Page < prev.Page || (p.Page == prev.Page && p.Y <= prev.Y) {
				t.Fatalf("row %d placed before row %d", i, i-1)
			}
		}
	}
}

func TestPaginate_Deterministic(t *testing.T) {
	a := Paginate(53, DefaultLayout())
	b := Paginate(53, DefaultLayout())
	if !reflect.DeepEqual(a, b) {
		t.Error("Paginate is not deterministic")
	}
}

func TestPlacement_ShadeIsGlobal(t *testing.T) {
	plan := Paginate(26, DefaultLayout())
	// Row 24 opens page 2; it is even and keeps the even shade.
	if got := plan.Rows[24]; got.Page != 1 || got.Shade() != 0 {
		t.Errorf("row 24 = %+v, shade %d", got, got.Shade())
	}
	if got := plan.Rows[25].Shade(); got != 1 {
		t.Errorf("row 25 shade = %d, want 1", got)
	}
}

func TestPlan_PageRows(t *testing.T) {
	plan := Paginate(52, DefaultLayout())
	counts := []int{24, 27, 1}
	for p, want := range counts {
		if got := len(plan.PageRows(p)); got != want {
			t.Errorf("PageRows(%d) = %d rows, want %d", p, got, want)
		}
	}
	if got := plan.PageRows(3); len(got) != 0 {
		t.Errorf("PageRows(3) = %v, want none", got)
	}
}

func TestPaginate_CustomLayout(t *testing.T) {
	l := Layout{Orientation: Landscape}
	first, rest := RowsPerPage(l)
	plan := Paginate(first+rest+1, l)
	if plan.Pages != 3 {
		t.Errorf("landscape pages = %d, want 3 (first=%d rest=%d)", plan.Pages, first, rest)
	}
}
