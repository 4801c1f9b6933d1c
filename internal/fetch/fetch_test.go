package fetch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync"
	"testing"

	"github.com/me/insadmin/internal/paging"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeCollection serves ints 1..total in pages, optionally without
// metadata and optionally failing on one page.
type fakeCollection struct {
	mu       sync.Mutex
	total    int
	withMeta bool
	failOn   int
	calls    []Query
}

func (f *fakeCollection) Fetch(ctx context.Context, q Query) ([]int, *paging.Metadata, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	f.mu.Unlock()

	if f.failOn != 0 && q.Page == f.failOn {
		return nil, nil, errors.New("upstream 502")
	}
	pages := paging.PageCountFor(q.Limit, f.total)
	page := q.Page
	if f.withMeta {
		// Servers with metadata normalize out-of-range pages.
		page = paging.ClampPage(q.Page, pages)
	}
	start := (page - 1) * q.Limit
	end := min(f.total, start+q.Limit)
	var items []int
	for i := start; i < end; i++ {
		items = append(items, i+1)
	}
	if !f.withMeta {
		return items, nil, nil
	}
	return items, &paging.Metadata{Page: page, Limit: q.Limit, Total: f.total, Pages: pages}, nil
}

func TestFetchPage_SingleRequest(t *testing.T) {
	fc := &fakeCollection{total: 95, withMeta: true}
	a := NewAdapter[int]("centers", fc, testLogger())

	params := url.Values{"q": {"dam"}}
	p, err := a.FetchPage(context.Background(), params, 2, 10)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if len(fc.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(fc.calls))
	}
	if got := fc.calls[0].Params.Get("q"); got != "dam" {
		t.Errorf("filter not forwarded: %q", got)
	}
	if len(p.Items) != 10 || p.Items[0] != 11 {
		t.Errorf("items = %v", p.Items)
	}
	if p.Meta.Page != 2 || p.Meta.Pages != 10 || p.Meta.Total != 95 || p.Corrected || !p.HasMeta {
		t.Errorf("page = %+v", p)
	}
}

func TestFetchPage_ServerCorrectsPage(t *testing.T) {
	// 28 items left after a deletion; the client still asks for page 4.
	fc := &fakeCollection{total: 28, withMeta: true}
	a := NewAdapter[int]("centers", fc, testLogger())

	p, err := a.FetchPage(context.Background(), nil, 4, 10)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if !p.Corrected || p.Meta.Page != 3 || p.Requested != 4 {
		t.Errorf("page = %+v, want corrected to 3", p)
	}
	if len(p.Items) != 8 {
		t.Errorf("items = %d, want 8", len(p.Items))
	}
	if len(fc.calls) != 1 {
		t.Errorf("calls = %d, want exactly 1 (no extra request)", len(fc.calls))
	}
}

func TestFetchPage_MissingMetaSynthesized(t *testing.T) {
	fc := &fakeCollection{total: 7}
	a := NewAdapter[int]("users", fc, testLogger())

	p, err := a.FetchPage(context.Background(), nil, 1, 50)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	want := paging.Metadata{Page: 1, Limit: 7, Total: 7, Pages: 1}
	if p.Meta != want || p.HasMeta {
		t.Errorf("meta = %+v, want %+v", p.Meta, want)
	}
}

func TestFetchPage_Error(t *testing.T) {
	fc := &fakeCollection{total: 50, withMeta: true, failOn: 2}
	a := NewAdapter[int]("centers", fc, testLogger())

	p, err := a.FetchPage(context.Background(), nil, 2, 10)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(p.Items) != 0 || p.Meta != paging.Empty() {
		t.Errorf("failed page = %+v, want empty", p)
	}
	if p.Meta.Window(10).Visible {
		t.Error("control should hide after failure")
	}
}

func TestFetchAll_TrustsMeta(t *testing.T) {
	// A full last page: the length heuristic would ask for an extra page,
	// metadata says there is none.
	fc := &fakeCollection{total: 300, withMeta: true}
	a := NewAdapter[int]("centers", fc, testLogger())

	res := a.FetchAll(context.Background(), url.Values{"q": {"x"}})
	if res.Err != nil {
		t.Fatalf("FetchAll: %v", res.Err)
	}
	if len(res.Items) != 300 || res.Chunks != 3 {
		t.Errorf("items=%d chunks=%d, want 300/3", len(res.Items), res.Chunks)
	}
	if len(fc.calls) != 3 {
		t.Errorf("calls = %d, want 3", len(fc.calls))
	}
	for i, q := range fc.calls {
		if q.Page != i+1 || q.Limit != DefaultChunkSize || q.Params.Get("q") != "x" {
			t.Errorf("call %d = %+v", i, q)
		}
	}
	if res.Meta.Total != 300 || res.Meta.Pages != 1 || res.ReportedTotal != 300 {
		t.Errorf("meta = %+v", res.Meta)
	}
}

// clampingCollection serves ints 1..total, clamping out-of-range pages to
// the last one, and reports whatever metadata report builds.
func clampingCollection(total int, calls *int, report func(page, pages, limit int) *paging.Metadata) FetcherFunc[int] {
	return func(ctx context.Context, q Query) ([]int, *paging.Metadata, error) {
		*calls++
		pages := paging.PageCountFor(q.Limit, total)
		page := paging.ClampPage(q.Page, pages)
		var items []int
		for i := (page - 1) * q.Limit; i < min(total, page*q.Limit); i++ {
			items = append(items, i+1)
		}
		return items, report(page, pages, q.Limit), nil
	}
}

func TestFetchAll_IncompleteMeta(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		report    func(page, pages, limit int) *paging.Metadata
		wantCalls int
	}{
		{"pages without page", 250, func(page, pages, limit int) *paging.Metadata {
			return &paging.Metadata{Limit: limit, Total: 250, Pages: pages}
		}, 3},
		{"hasNext without pages or limit", 250, func(page, pages, limit int) *paging.Metadata {
			return &paging.Metadata{Page: page, Total: 250, HasNext: page < pages}
		}, 3},
		{"hasNext only", 250, func(page, pages, limit int) *paging.Metadata {
			return &paging.Metadata{HasNext: page < pages}
		}, 3},
		{"hasNext always set", 250, func(page, pages, limit int) *paging.Metadata {
			return &paging.Metadata{Page: page, Total: 250, HasNext: true}
		}, 4},
		{"page only, full last chunk", 300, func(page, pages, limit int) *paging.Metadata {
			return &paging.Metadata{Page: page}
		}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			a := NewAdapter[int]("centers", clampingCollection(tt.total, &calls, tt.report), testLogger())

			res := a.FetchAll(context.Background(), nil)
			if res.Err != nil {
				t.Fatalf("FetchAll: %v", res.Err)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if len(res.Items) != tt.total {
				t.Fatalf("items = %d, want %d", len(res.Items), tt.total)
			}
			for i, v := range res.Items {
				if v != i+1 {
					t.Fatalf("item %d = %d, repeated chunk kept", i, v)
				}
			}
		})
	}
}

func TestFetchPage_MetaWithoutPage(t *testing.T) {
	a := NewAdapter[int]("centers", FetcherFunc[int](func(ctx context.Context, q Query) ([]int, *paging.Metadata, error) {
		return []int{11, 12}, &paging.Metadata{Total: 30}, nil
	}), testLogger())

	p, err := a.FetchPage(context.Background(), nil, 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	if p.Corrected || p.Meta.Page != 2 || p.Meta.Pages != 3 || !p.Meta.HasNext {
		t.Errorf("page = %+v, want requested page kept", p)
	}
}

func TestFetchAll_LengthHeuristic(t *testing.T) {
	fc := &fakeCollection{total: 250}
	a := NewAdapter[int]("payments", fc, testLogger())

	res := a.FetchAll(context.Background(), nil)
	if res.Err != nil {
		t.Fatalf("FetchAll: %v", res.Err)
	}
	if len(res.Items) != 250 || len(fc.calls) != 3 {
		t.Errorf("items=%d calls=%d, want 250/3", len(res.Items), len(fc.calls))
	}
	for i, v := range res.Items {
		if v != i+1 {
			t.Fatalf("items out of order at %d: %d", i, v)
		}
	}
}

func TestFetchAll_HeuristicFullLastPage(t *testing.T) {
	// Without metadata a full last chunk costs one extra (empty) request.
	fc := &fakeCollection{total: 200}
	a := NewAdapter[int]("payments", fc, testLogger())

	res := a.FetchAll(context.Background(), nil)
	if res.Err != nil || len(res.Items) != 200 {
		t.Fatalf("res = %d items, err %v", len(res.Items), res.Err)
	}
	if len(fc.calls) != 3 {
		t.Errorf("calls = %d, want 3", len(fc.calls))
	}
}

func TestFetchAll_PartialOnChunkError(t *testing.T) {
	fc := &fakeCollection{total: 450, withMeta: true, failOn: 3}
	a := NewAdapter[int]("centers", fc, testLogger())

	res := a.FetchAll(context.Background(), nil)
	if res.Err == nil {
		t.Fatal("expected chunk error")
	}
	if !res.Partial {
		t.Error("expected partial result")
	}
	if len(res.Items) != 200 {
		t.Errorf("kept items = %d, want 200", len(res.Items))
	}
	if len(fc.calls) != 3 {
		t.Errorf("calls = %d, want 3 (stop after failure)", len(fc.calls))
	}
}

func TestFetchAll_FirstChunkFails(t *testing.T) {
	fc := &fakeCollection{total: 10, failOn: 1}
	a := NewAdapter[int]("centers", fc, testLogger())

	res := a.FetchAll(context.Background(), nil)
	if res.Err == nil || res.Partial || len(res.Items) != 0 {
		t.Errorf("res = %+v", res)
	}
}

func TestFetchAll_MaxChunks(t *testing.T) {
	fc := &fakeCollection{total: 1000}
	a := NewAdapter[int]("centers", fc, testLogger(), WithChunkSize(10), WithMaxChunks(5))

	res := a.FetchAll(context.Background(), nil)
	if !errors.Is(res.Err, ErrTooManyChunks) {
		t.Fatalf("err = %v, want ErrTooManyChunks", res.Err)
	}
	if len(res.Items) != 50 || !res.Partial {
		t.Errorf("items = %d partial = %v", len(res.Items), res.Partial)
	}
}

func TestFetchAll_ContextCancelled(t *testing.T) {
	fc := &fakeCollection{total: 500}
	a := NewAdapter[int]("centers", fc, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := a.FetchAll(ctx, nil)
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", res.Err)
	}
	if len(fc.calls) != 0 {
		t.Errorf("calls = %d, want 0", len(fc.calls))
	}
}

func TestAdapter_FetchDispatch(t *testing.T) {
	fc := &fakeCollection{total: 120, withMeta: true}
	a := NewAdapter[int]("centers", fc, testLogger())

	p, err := a.Fetch(context.Background(), nil, 1, paging.PageSizeAll)
	if err != nil || len(p.Items) != 120 {
		t.Fatalf("all: %d items, err %v", len(p.Items), err)
	}
	p, err = a.Fetch(context.Background(), nil, 2, 50)
	if err != nil || len(p.Items) != 50 || p.Meta.Page != 2 {
		t.Fatalf("page: %+v, err %v", p.Meta, err)
	}
}

func TestQueryValues(t *testing.T) {
	q := Query{Page: 3, Limit: 20, Params: url.Values{"q": {"x"}, "empty": {""}}}
	v := q.Values()
	if v.Get("page") != "3" || v.Get("limit") != "20" || v.Get("q") != "x" {
		t.Errorf("Values = %v", v)
	}
	if _, ok := v["empty"]; ok {
		t.Error("empty filters should be dropped")
	}
}
