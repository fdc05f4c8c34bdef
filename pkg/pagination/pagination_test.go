package pagination

import "testing"

func TestNormalize(t *testing.T) {
	p := Params{Page: 0, PageSize: 0}.Normalize()
	if p.Page != 1 || p.PageSize != DefaultPageSize {
		t.Fatalf("unexpected normalization: %+v", p)
	}

	p = Params{Page: 3, PageSize: 500}.Normalize()
	if p.PageSize != MaxPageSize {
		t.Fatalf("page size not capped: %+v", p)
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	page1 := Slice(items, Params{Page: 1, PageSize: 3})
	if len(page1) != 3 || page1[0] != 1 {
		t.Fatalf("unexpected first page: %v", page1)
	}

	page3 := Slice(items, Params{Page: 3, PageSize: 3})
	if len(page3) != 1 || page3[0] != 7 {
		t.Fatalf("unexpected last page: %v", page3)
	}

	if got := Slice(items, Params{Page: 4, PageSize: 3}); got != nil {
		t.Fatalf("expected nil past the end, got %v", got)
	}
}

func TestPageCount(t *testing.T) {
	if PageCount(0, 10) != 1 {
		t.Fatal("empty collections still render one page")
	}
	if PageCount(25, 10) != 3 {
		t.Fatalf("unexpected page count: %d", PageCount(25, 10))
	}
	if PageCount(30, 10) != 3 {
		t.Fatalf("unexpected exact page count: %d", PageCount(30, 10))
	}
}
