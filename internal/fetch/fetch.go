// Package fetch adapts server-paged collections of the remote API to the
// list views: one request per page, or an accumulating loop in show-all mode.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/me/insadmin/internal/paging"
)

const (
	// DefaultChunkSize is the page size used to walk a collection in show-all mode.
	DefaultChunkSize = 100
	// DefaultMaxChunks bounds the show-all loop.
	DefaultMaxChunks = 500
)

// ErrTooManyChunks reports that the show-all loop hit its chunk limit.
var ErrTooManyChunks = errors.New("fetch: chunk limit reached")

// Query is one collaborator request: a page, its size and opaque filters.
type Query struct {
	Page   int
	Limit  int
	Params url.Values
}

// Values returns the filters plus page and limit, ready for a query string.
func (q Query) Values() url.Values {
	v := url.Values{}
	for k, vals := range q.Params {
		for _, s := range vals {
			if s != "" {
				v.Add(k, s)
			}
		}
	}
	if q.Page > 0 {
		v.Set("page", fmt.Sprint(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", fmt.Sprint(q.Limit))
	}
	return v
}

// Fetcher returns one page of a collection. A nil *paging.Metadata means
// the response carried no metadata.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, q Query) ([]T, *paging.Metadata, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc[T any] func(ctx context.Context, q Query) ([]T, *paging.Metadata, error)

// Fetch calls f.
func (f FetcherFunc[T]) Fetch(ctx context.Context, q Query) ([]T, *paging.Metadata, error) {
	return f(ctx, q)
}

// Page is the result of a single-page fetch.
type Page[T any] struct {
	Items     []T
	Meta      paging.Metadata
	Requested int  // page the caller asked for
	Corrected bool // server returned a different page than Requested
	HasMeta   bool // Meta came from the server rather than being synthesized
}

// Result is the outcome of a show-all fetch. Err is set when accumulation
// stopped early; Items then holds what was gathered before the failure.
type Result[T any] struct {
	Items         []T
	Meta          paging.Metadata
	Chunks        int
	ReportedTotal int // last total the server reported, 0 if unknown
	Partial       bool
	Err           error
}

// Option configures an Adapter.
type Option func(*options)

type options struct {
	chunkSize int
	maxChunks int
}

// WithChunkSize sets the show-all chunk size.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithMaxChunks sets the show-all loop bound.
func WithMaxChunks(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxChunks = n
		}
	}
}

// Adapter reconciles a Fetcher's pages with a list view's state.
type Adapter[T any] struct {
	name    string
	fetcher Fetcher[T]
	opts    options
	logger  *slog.Logger
}

// NewAdapter creates an adapter for the named collection.
func NewAdapter[T any](name string, f Fetcher[T], logger *slog.Logger, opts ...Option) *Adapter[T] {
	o := options{chunkSize: DefaultChunkSize, maxChunks: DefaultMaxChunks}
	for _, opt := range opts {
		opt(&o)
	}
	return &Adapter[T]{
		name:    name,
		fetcher: f,
		opts:    o,
		logger:  logger.With("component", "fetch", "collection", name),
	}
}

// ChunkSize returns the show-all chunk size.
func (a *Adapter[T]) ChunkSize() int {
	return a.opts.chunkSize
}

// Fetch dispatches on size: PageSizeAll walks every page, anything else
// fetches one page. Partial show-all results are returned with their error.
func (a *Adapter[T]) Fetch(ctx context.Context, params url.Values, page, size int) (Page[T], error) {
	if size == paging.PageSizeAll {
		res := a.FetchAll(ctx, params)
		return Page[T]{Items: res.Items, Meta: res.Meta, Requested: 1}, res.Err
	}
	return a.FetchPage(ctx, params, page, size)
}

// FetchPage issues exactly one request. The server's metadata is
// authoritative: when it reports a different page the result is flagged
// Corrected and the caller adopts Meta.Page without another request.
// On failure the items are empty and Meta is paging.Empty().
func (a *Adapter[T]) FetchPage(ctx context.Context, params url.Values, page, size int) (Page[T], error) {
	page = max(1, page)
	items, meta, err := a.fetcher.Fetch(ctx, Query{Page: page, Limit: size, Params: params})
	if err != nil {
		observe(a.name, "page", "error")
		a.logger.Warn("fetch page failed", "page", page, "limit", size, "error", err)
		return Page[T]{Items: []T{}, Meta: paging.Empty(), Requested: page}, err
	}
	observe(a.name, "page", "ok")

	out := Page[T]{Items: items, Requested: page}
	if meta == nil {
		out.Meta = paging.Synthesize(len(items))
	} else {
		m := *meta
		if m.Page <= 0 {
			m.Page = page
		}
		if m.Limit <= 0 {
			m.Limit = size
		}
		m = m.Normalize()
		out.Meta = m
		out.HasMeta = true
		out.Corrected = m.Page != page
	}
	if out.Items == nil {
		out.Items = []T{}
	}
	if out.Corrected {
		a.logger.Debug("server corrected page", "requested", page, "page", out.Meta.Page, "pages", out.Meta.Pages)
	}
	return out, nil
}

// FetchAll walks the collection in chunks starting at page 1. It continues
// while the server's metadata reports a next page or, when the metadata
// carries no count, while each chunk comes back full. The loop counts pages itself: a server
// answering with an earlier page than requested has clamped the request
// and the walk ends without keeping that repeated chunk. A failing chunk
// stops the walk and the items gathered so far are kept.
func (a *Adapter[T]) FetchAll(ctx context.Context, params url.Values) Result[T] {
	size := a.opts.chunkSize
	res := Result[T]{Items: []T{}}

	for page := 1; ; page++ {
		if res.Chunks >= a.opts.maxChunks {
			res.Err = fmt.Errorf("%w after %d chunks", ErrTooManyChunks, res.Chunks)
			break
		}
		if err := ctx.Err(); err != nil {
			res.Err = err
			break
		}

		chunk, meta, err := a.fetcher.Fetch(ctx, Query{Page: page, Limit: size, Params: params})
		if err != nil {
			res.Err = fmt.Errorf("fetch chunk %d: %w", page, err)
			break
		}
		res.Chunks++
		if meta != nil && meta.Page > 0 && meta.Page < page {
			a.logger.Debug("server clamped chunk", "requested", page, "page", meta.Page)
			break
		}
		res.Items = append(res.Items, chunk...)
		a.logger.Debug("fetched chunk", "page", page, "items", len(chunk), "accumulated", len(res.Items))

		if len(chunk) == 0 {
			break
		}
		if meta != nil && (meta.Total > 0 || meta.Pages > 0 || meta.HasNext) {
			m := *meta
			m.Page = page
			if m.Limit <= 0 {
				m.Limit = size
			}
			m = m.Normalize()
			res.ReportedTotal = m.Total
			if !m.HasNext {
				break
			}
			continue
		}
		if len(chunk) < size {
			break
		}
	}

	if res.Err != nil {
		res.Partial = res.Chunks > 0
		observe(a.name, "all", "partial")
		a.logger.Warn("show-all fetch stopped early", "chunks", res.Chunks, "items", len(res.Items), "error", res.Err)
	} else {
		observe(a.name, "all", "ok")
	}
	chunksFetched.WithLabelValues(a.name).Add(float64(res.Chunks))

	res.Meta = paging.Metadata{Page: 1, Limit: len(res.Items), Total: len(res.Items), Pages: 1}
	return res
}
