package listview

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/me/insadmin/internal/fetch"
	"github.com/me/insadmin/internal/paging"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

// remote serves the ints 1..total with server metadata. Queries listed in
// gates block until their channel is closed.
type remote struct {
	mu      sync.Mutex
	total   int
	calls   []fetch.Query
	failOn  int
	gates   map[string]chan struct{}
	started chan string
}

func (r *remote) Fetch(ctx context.Context, q fetch.Query) ([]int, *paging.Metadata, error) {
	r.mu.Lock()
	r.calls = append(r.calls, q)
	gate := r.gates[q.Params.Get("q")]
	r.mu.Unlock()

	if r.started != nil {
		r.started <- q.Params.Get("q")
	}
	if gate != nil {
		<-gate
	}
	if r.failOn != 0 && q.Page == r.failOn {
		return nil, nil, errors.New("upstream 500")
	}
	pages := paging.PageCountFor(q.Limit, r.total)
	page := paging.ClampPage(q.Page, pages)
	start := (page - 1) * q.Limit
	end := min(r.total, start+q.Limit)
	items := []int{}
	for i := start; i < end; i++ {
		items = append(items, i+1)
	}
	return items, &paging.Metadata{Page: page, Limit: q.Limit, Total: r.total, Pages: pages}, nil
}

func (r *remote) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func newView(t *testing.T, r *remote, initial Criteria) (*View[int], chan Snapshot[int]) {
	t.Helper()
	commits := make(chan Snapshot[int], 16)
	a := fetch.NewAdapter[int]("centers", r, testLogger())
	v := New(context.Background(), "centers", a, initial, testLogger(),
		WithDelay[int](15*time.Millisecond),
		WithOnCommit(func(s Snapshot[int]) { commits <- s }),
	)
	t.Cleanup(v.Close)
	return v, commits
}

func waitCommit(t *testing.T, commits chan Snapshot[int]) Snapshot[int] {
	t.Helper()
	select {
	case s := <-commits:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot committed")
		return Snapshot[int]{}
	}
}

func TestView_TypingCoalesces(t *testing.T) {
	r := &remote{total: 95}
	v, commits := newView(t, r, Criteria{Page: 3, PageSize: 10})

	for _, q := range []string{"d", "da", "dam", "dama", "damas"} {
		v.SetQuery(q)
	}
	s := waitCommit(t, commits)
	time.Sleep(50 * time.Millisecond)

	if n := r.callCount(); n != 1 {
		t.Fatalf("fetches = %d, want 1", n)
	}
	if got := r.calls[0].Params.Get("q"); got != "damas" {
		t.Errorf("q = %q, want damas", got)
	}
	if r.calls[0].Page != 1 {
		t.Errorf("page = %d, query change should reset to 1", r.calls[0].Page)
	}
	if s.State != Idle || s.Window.Page != 1 || !s.Window.Visible {
		t.Errorf("snapshot = %+v", s)
	}
}

func TestView_SetPageSizeResetsPageSynchronously(t *testing.T) {
	r := &remote{total: 500}
	v, commits := newView(t, r, Criteria{Page: 7, PageSize: 10})

	v.SetPageSize(50)
	if c := v.Criteria(); c.Page != 1 || c.PageSize != 50 {
		t.Fatalf("criteria = %+v, want page 1 size 50 before the fetch", c)
	}
	if v.Snapshot().State != Scheduled {
		t.Errorf("state = %v, want scheduled", v.Snapshot().State)
	}
	s := waitCommit(t, commits)
	if s.Meta.Page != 1 || len(s.Items) != 50 {
		t.Errorf("snapshot page=%d items=%d", s.Meta.Page, len(s.Items))
	}
}

func TestView_AdoptsServerCorrectedPage(t *testing.T) {
	r := &remote{total: 28}
	v, commits := newView(t, r, Criteria{Page: 4, PageSize: 10})

	v.Reload()
	s := waitCommit(t, commits)
	if s.Criteria.Page != 3 || s.Window.Page != 3 {
		t.Errorf("snapshot page = %d/%d, want 3", s.Criteria.Page, s.Window.Page)
	}
	if v.Criteria().Page != 3 {
		t.Errorf("criteria page = %d, want adopted 3", v.Criteria().Page)
	}
	if r.callCount() != 1 {
		t.Errorf("fetches = %d, want 1", r.callCount())
	}
}

func TestView_StaleResultDropped(t *testing.T) {
	slow := make(chan struct{})
	r := &remote{
		total:   95,
		gates:   map[string]chan struct{}{"slow": slow},
		started: make(chan string, 4),
	}
	v, commits := newView(t, r, Criteria{Page: 1, PageSize: 10})

	v.SetQuery("slow")
	if q := <-r.started; q != "slow" {
		t.Fatalf("first fetch = %q", q)
	}
	v.SetQuery("fast")
	<-r.started

	s := waitCommit(t, commits)
	if s.Criteria.Query != "fast" {
		t.Fatalf("committed %q, want fast", s.Criteria.Query)
	}
	close(slow)
	time.Sleep(50 * time.Millisecond)

	select {
	case s := <-commits:
		t.Fatalf("stale snapshot committed: %+v", s.Criteria)
	default:
	}
	if got := v.Snapshot().Criteria.Query; got != "fast" {
		t.Errorf("snapshot query = %q after stale completion", got)
	}
}

func TestView_FailureHidesControl(t *testing.T) {
	r := &remote{total: 95, failOn: 2}
	v, commits := newView(t, r, Criteria{Page: 1, PageSize: 10})

	v.SetPage(2)
	s := waitCommit(t, commits)
	if s.Err == nil {
		t.Fatal("expected error")
	}
	if len(s.Items) != 0 || s.Window.Visible || s.State != Idle {
		t.Errorf("failed snapshot = %+v", s)
	}
}

func TestView_ShowAllPartial(t *testing.T) {
	r := &remote{total: 450, failOn: 3}
	v, commits := newView(t, r, Criteria{Page: 2, PageSize: 10})

	v.SetPageSize(paging.PageSizeAll)
	s := waitCommit(t, commits)
	if s.Err == nil || !s.Partial {
		t.Fatalf("err=%v partial=%v", s.Err, s.Partial)
	}
	if len(s.Items) != 200 || !s.Window.All() || s.Window.To != 200 {
		t.Errorf("items=%d window=%+v", len(s.Items), s.Window)
	}
}

func TestView_SetFilter(t *testing.T) {
	r := &remote{total: 30}
	v, commits := newView(t, r, Criteria{Page: 2, PageSize: 10})

	v.SetFilter("province", "Damascus")
	waitCommit(t, commits)
	if got := r.calls[0].Params.Get("province"); got != "Damascus" || r.calls[0].Page != 1 {
		t.Errorf("call = %+v", r.calls[0])
	}

	v.SetFilter("province", "all")
	waitCommit(t, commits)
	if _, ok := r.calls[1].Params["province"]; ok {
		t.Errorf("\"all\" should clear the filter: %v", r.calls[1].Params)
	}
}

func TestView_SetPageClampsToKnownCount(t *testing.T) {
	r := &remote{total: 30}
	v, commits := newView(t, r, Criteria{Page: 1, PageSize: 10})

	v.Reload()
	waitCommit(t, commits)
	v.SetPage(99)
	if got := v.Criteria().Page; got != 3 {
		t.Errorf("page = %d, want clamped 3", got)
	}
	waitCommit(t, commits)
}

func TestCriteriaParams(t *testing.T) {
	c := Criteria{Query: "  dam ", Filters: map[string][]string{"center": {"c1"}}}
	p := c.Params()
	if p.Get("q") != "dam" || p.Get("center") != "c1" {
		t.Errorf("params = %v", p)
	}
	p.Set("center", "changed")
	if c.Filters.Get("center") != "c1" {
		t.Error("Params aliases the criteria filters")
	}
}
