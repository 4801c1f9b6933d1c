package paging

import (
	"reflect"
	"testing"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestSlice(t *testing.T) {
	items := seq(25)
	tests := []struct {
		name string
		page int
		size int
		want []int
	}{
		{"first", 1, 10, seq(10)},
		{"second", 2, 10, []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}},
		{"short last", 3, 10, []int{21, 22, 23, 24, 25}},
		{"shrunk collection falls back to first page", 4, 10, seq(10)},
		{"shrunk with large size", 3, 50, items},
		{"page below one", 0, 10, seq(10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slice(items, tt.page, tt.size); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Slice(page=%d,size=%d) = %v, want %v", tt.page, tt.size, got, tt.want)
			}
		})
	}
}

func TestSlice_All(t *testing.T) {
	items := seq(7)
	for _, page := range []int{-3, 1, 2, 99} {
		got := Slice(items, page, PageSizeAll)
		if !reflect.DeepEqual(got, items) {
			t.Errorf("Slice(page=%d, all) = %v, want %v", page, got, items)
		}
	}
}

func TestSlice_EmptyFirstPage(t *testing.T) {
	if got := Slice([]int{}, 1, 10); len(got) != 0 {
		t.Errorf("Slice(empty) = %v", got)
	}
	if got := Slice[int](nil, 2, 10); len(got) != 0 {
		t.Errorf("Slice(nil, page 2) = %v", got)
	}
}

func TestSlice_RoundTrip(t *testing.T) {
	for total := 0; total <= 60; total++ {
		items := seq(total)
		for _, size := range []int{1, 4, 10, 17} {
			var joined []int
			for page := 1; page <= PageCountFor(size, total); page++ {
				joined = append(joined, Slice(items, page, size)...)
			}
			if total == 0 {
				if len(joined) != 0 {
					t.Fatalf("total=0 size=%d: joined = %v", size, joined)
				}
				continue
			}
			if !reflect.DeepEqual(joined, items) {
				t.Fatalf("total=%d size=%d: round trip = %v", total, size, joined)
			}
		}
	}
}

func TestSlice_DoesNotAliasAppends(t *testing.T) {
	items := seq(10)
	page := Slice(items, 1, 5)
	page = append(page, 99)
	if items[5] != 6 {
		t.Errorf("append through slice overwrote backing collection: %v", items)
	}
	if len(page) != 6 {
		t.Errorf("len(page) = %d", len(page))
	}
}

func TestFilter(t *testing.T) {
	got := Filter(seq(10), func(n int) bool { return n%3 == 0 })
	if !reflect.DeepEqual(got, []int{3, 6, 9}) {
		t.Errorf("Filter = %v", got)
	}
}

func TestMetadata(t *testing.T) {
	if got := Synthesize(8); got != (Metadata{Page: 1, Limit: 8, Total: 8, Pages: 1}) {
		t.Errorf("Synthesize = %+v", got)
	}
	if got := Empty(); got.Page != 1 || got.Total != 0 || got.Pages != 1 {
		t.Errorf("Empty = %+v", got)
	}

	m := Metadata{Page: 2, Limit: 10, Total: 28}.Normalize()
	if m.Pages != 3 || !m.HasPrev || !m.HasNext {
		t.Errorf("Normalize = %+v", m)
	}

	local := Local(9, 10, 28)
	if local.Page != 3 || local.Pages != 3 || local.HasNext {
		t.Errorf("Local = %+v", local)
	}
	if all := Local(4, PageSizeAll, 28); all.Limit != 28 || all.Pages != 1 {
		t.Errorf("Local all = %+v", all)
	}
}

func TestMetadata_WindowTrustsServer(t *testing.T) {
	// Server corrected the page after a deletion.
	m := Metadata{Page: 3, Pages: 3, Total: 28, Limit: 10}
	w := m.Window(10)
	if w.Page != 3 || w.From != 21 || w.To != 28 || w.HasNext {
		t.Errorf("window = %+v", w)
	}

	// Server page count wins over ceil(total/limit).
	odd := Metadata{Page: 2, Pages: 4, Total: 28, Limit: 10}.Window(10)
	if odd.PageCount != 4 || !odd.HasNext {
		t.Errorf("server pages ignored: %+v", odd)
	}

	// The range follows the server's page, not the locally clamped one.
	past := Metadata{Page: 4, Pages: 4, Total: 28, Limit: 10}.Window(10)
	if past.Page != 4 || past.From != 28 || past.To != 28 || past.HasNext {
		t.Errorf("range = %d-%d on page %d, want 28-28 on 4", past.From, past.To, past.Page)
	}
	short := Metadata{Page: 2, Pages: 2, Total: 35, Limit: 10}.Window(10)
	if short.Page != 2 || short.From != 11 || short.To != 20 || short.HasNext {
		t.Errorf("short = %+v", short)
	}

	if all := m.Window(PageSizeAll); !all.All() || all.To != 28 {
		t.Errorf("all window = %+v", all)
	}
}
