// Package listview holds the state machine behind one server-paged list:
// criteria changes are debounced, fetched through a fetch.Adapter and
// committed as immutable snapshots.
package listview

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/me/insadmin/internal/debounce"
	"github.com/me/insadmin/internal/fetch"
	"github.com/me/insadmin/internal/paging"
)

// State is the lifecycle position of a view.
type State int

const (
	Idle State = iota
	Scheduled
	Fetching
)

func (s State) String() string {
	switch s {
	case Scheduled:
		return "scheduled"
	case Fetching:
		return "fetching"
	default:
		return "idle"
	}
}

// Criteria is everything that determines which rows a view shows.
type Criteria struct {
	Query    string
	Filters  url.Values
	Page     int
	PageSize int
}

// Params returns the filters plus the query as "q". Empty values are
// dropped by fetch.Query.Values.
func (c Criteria) Params() url.Values {
	v := url.Values{}
	for k, vals := range c.Filters {
		v[k] = append([]string(nil), vals...)
	}
	if q := strings.TrimSpace(c.Query); q != "" {
		v.Set("q", q)
	}
	return v
}

func (c Criteria) clone() Criteria {
	out := c
	out.Filters = url.Values{}
	for k, vals := range c.Filters {
		out.Filters[k] = append([]string(nil), vals...)
	}
	return out
}

// Snapshot is one committed result. Snapshots are never mutated after
// they are handed out.
type Snapshot[T any] struct {
	Criteria   Criteria
	Items      []T
	Meta       paging.Metadata
	Window     paging.Window
	Err        error
	Partial    bool
	Generation uint64
	State      State
	FetchedAt  time.Time
}

// Option configures a View.
type Option[T any] func(*View[T])

// WithDelay sets the debounce delay.
func WithDelay[T any](d time.Duration) Option[T] {
	return func(v *View[T]) { v.delay = d }
}

// WithOnCommit registers a callback invoked after every committed
// snapshot. It runs outside the view's lock.
func WithOnCommit[T any](fn func(Snapshot[T])) Option[T] {
	return func(v *View[T]) { v.onCommit = fn }
}

// View is the per-list state machine: Idle → Scheduled → Fetching → Idle.
type View[T any] struct {
	name     string
	adapter  *fetch.Adapter[T]
	trigger  *debounce.Trigger[Criteria]
	delay    time.Duration
	onCommit func(Snapshot[T])
	ctx      context.Context
	logger   *slog.Logger

	mu       sync.Mutex
	criteria Criteria
	snap     Snapshot[T]
}

// New creates a view over adapter starting from initial. Fetches use ctx;
// a superseded fetch is not cancelled, only dropped on completion.
func New[T any](ctx context.Context, name string, adapter *fetch.Adapter[T], initial Criteria, logger *slog.Logger, opts ...Option[T]) *View[T] {
	if initial.Page < 1 {
		initial.Page = 1
	}
	if initial.PageSize == 0 {
		initial.PageSize = paging.DefaultSizes[0]
	}
	v := &View[T]{
		name:     name,
		adapter:  adapter,
		delay:    debounce.DefaultDelay,
		ctx:      ctx,
		logger:   logger.With("component", "listview", "view", name),
		criteria: initial.clone(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.snap = Snapshot[T]{
		Criteria: v.criteria.clone(),
		Items:    []T{},
		Meta:     paging.Empty(),
		Window:   paging.Empty().Window(initial.PageSize),
	}
	v.trigger = debounce.New(v.delay, v.run)
	return v
}

// Snapshot returns the latest committed snapshot with the current state.
func (v *View[T]) Snapshot() Snapshot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snap
}

// Criteria returns a copy of the pending criteria.
func (v *View[T]) Criteria() Criteria {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criteria.clone()
}

// SetQuery changes the search text, resets the page to 1 and schedules.
func (v *View[T]) SetQuery(q string) uint64 {
	return v.update(func(c *Criteria) {
		c.Query = q
		c.Page = 1
	})
}

// SetFilter sets one filter, resets the page to 1 and schedules. An empty
// value removes the filter; "all" is treated the same way.
func (v *View[T]) SetFilter(key, value string) uint64 {
	return v.update(func(c *Criteria) {
		if value == "" || value == "all" {
			c.Filters.Del(key)
		} else {
			c.Filters.Set(key, value)
		}
		c.Page = 1
	})
}

// SetPage schedules a move to page, clamped to the known page count.
func (v *View[T]) SetPage(page int) uint64 {
	return v.update(func(c *Criteria) {
		c.Page = max(1, page)
		if v.snap.Window.Visible && !v.snap.Window.All() {
			c.Page = paging.ClampPage(c.Page, v.snap.Window.PageCount)
		}
	})
}

// SetPageSize changes the size. The page is reset to 1 before the fetch
// is scheduled.
func (v *View[T]) SetPageSize(size int) uint64 {
	return v.update(func(c *Criteria) {
		req := paging.PageRequest{Page: c.Page, PageSize: c.PageSize}.WithSize(size)
		c.Page = 1
		c.PageSize = req.PageSize
	})
}

// Reload fetches the current criteria immediately, bypassing the delay,
// and returns once the result is committed or dropped.
func (v *View[T]) Reload() uint64 {
	v.mu.Lock()
	c := v.criteria.clone()
	v.mu.Unlock()
	return v.trigger.Now(c)
}

// Close cancels any pending fetch. In-flight results are dropped.
func (v *View[T]) Close() {
	v.trigger.Stop()
}

func (v *View[T]) update(mutate func(*Criteria)) uint64 {
	v.mu.Lock()
	c := v.criteria.clone()
	mutate(&c)
	v.criteria = c
	gen := v.trigger.Schedule(c.clone())
	v.snap.State = Scheduled
	v.mu.Unlock()
	return gen
}

// run is the trigger callback. It executes on the timer goroutine, or on
// the caller's goroutine for Reload.
func (v *View[T]) run(c Criteria, gen uint64) {
	v.mu.Lock()
	if !v.trigger.IsCurrent(gen) {
		v.mu.Unlock()
		return
	}
	v.snap.State = Fetching
	v.mu.Unlock()

	next := Snapshot[T]{Criteria: c, Generation: gen, FetchedAt: time.Now()}
	if c.PageSize == paging.PageSizeAll {
		res := v.adapter.FetchAll(v.ctx, c.Params())
		next.Items, next.Meta, next.Err, next.Partial = res.Items, res.Meta, res.Err, res.Partial
	} else {
		p, err := v.adapter.FetchPage(v.ctx, c.Params(), c.Page, c.PageSize)
		next.Items, next.Meta, next.Err = p.Items, p.Meta, err
		if p.Corrected {
			next.Criteria.Page = p.Meta.Page
		}
	}
	next.Window = next.Meta.Window(c.PageSize)

	v.mu.Lock()
	if !v.trigger.IsCurrent(gen) {
		v.mu.Unlock()
		v.logger.Debug("dropped stale result", "generation", gen)
		return
	}
	if next.Criteria.Page != c.Page {
		v.criteria.Page = next.Criteria.Page
	}
	next.State = Idle
	v.snap = next
	onCommit := v.onCommit
	v.mu.Unlock()

	if next.Err != nil {
		v.logger.Warn("list fetch failed", "page", c.Page, "limit", c.PageSize, "partial", next.Partial, "error", next.Err)
	}
	if onCommit != nil {
		onCommit(next)
	}
}
