package pagination

import "testing"

func TestNormalizeClampsInputs(t *testing.T) {
	tests := []struct {
		name     string
		in       Params
		wantPage int
		wantSize int
	}{
		{name: "zeroValues", in: Params{}, wantPage: 0, wantSize: DefaultSize},
		{name: "negativePage", in: Params{Page: -3, Size: 10}, wantPage: 0, wantSize: 10},
		{name: "oversizedPage", in: Params{Page: 2, Size: 500}, wantPage: 2, wantSize: MaxSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got.Page != tt.wantPage || got.Size != tt.wantSize {
				t.Fatalf("Normalize() = %+v, want page=%d size=%d", got, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, Size: 25}
	if got := p.Offset(); got != 75 {
		t.Fatalf("Offset() = %d, want 75", got)
	}
}

func TestNewPageTotals(t *testing.T) {
	page := NewPage([]string{"a", "b"}, Params{Page: 0, Size: 2}, 5)
	if page.TotalElements != 5 {
		t.Fatalf("TotalElements = %d, want 5", page.TotalElements)
	}
	if page.TotalPages != 3 {
		t.Fatalf("TotalPages = %d, want 3", page.TotalPages)
	}
}

func TestNewPageNilContent(t *testing.T) {
	page := NewPage[string](nil, Params{}, 0)
	if page.Content == nil {
		t.Fatal("Content should be an empty slice, not nil")
	}
	if page.TotalPages != 0 {
		t.Fatalf("TotalPages = %d, want 0", page.TotalPages)
	}
}
