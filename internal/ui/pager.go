package ui

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/me/insadmin/internal/paging"
)

// Pager is the template model of the shared pagination component.
type Pager struct {
	paging.Window
	Label string
	Sizes []paging.SizeOption
	path  string
	query url.Values
}

// newPager builds the control for w. Links keep every query parameter of
// r except page and limit.
func (ui *UI) newPager(r *http.Request, w paging.Window, size int, sizes []int) Pager {
	q := url.Values{}
	for k, v := range r.URL.Query() {
		switch k {
		case "page", "limit", "msg", "error":
		default:
			q[k] = v
		}
	}
	return Pager{
		Window: w,
		Label:  ui.labeler.Showing(w),
		Sizes:  paging.SizeOptions(sizes, size),
		path:   r.URL.Path,
		query:  q,
	}
}

// URL links page n at the current size.
func (p Pager) URL(n int) string {
	return p.link(n, p.PageSize)
}

// SizeURL links the first page at size.
func (p Pager) SizeURL(size int) string {
	return p.link(1, size)
}

func (p Pager) link(page, size int) string {
	q := url.Values{}
	for k, v := range p.query {
		q[k] = v
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	q.Set("limit", paging.SizeLabel(size))
	return p.path + "?" + q.Encode()
}

// clientPage slices a client-paged collection for the request's page and
// size. The page is clamped against the filtered total.
func clientPage[T any](ui *UI, r *http.Request, items []T, defSize int, sizes []int) ([]T, Pager) {
	req := paging.FromQuery(r.URL.Query(), defSize, sizes)
	w := paging.ComputeWindow(req.Page, req.PageSize, len(items))
	return paging.Slice(items, w.Page, req.PageSize), ui.newPager(r, w, req.PageSize, sizes)
}

// emptyPager is the hidden control shown after a failed load.
func (ui *UI) emptyPager(r *http.Request, size int, sizes []int) Pager {
	return ui.newPager(r, paging.Empty().Window(size), size, sizes)
}
