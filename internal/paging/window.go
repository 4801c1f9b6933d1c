// Package paging computes pagination windows, slices client-paged
// collections and normalizes page metadata.
package paging

import (
	"net/url"
	"strconv"
	"strings"
)

// PageSizeAll is the sentinel page size meaning "do not paginate".
const PageSizeAll = -1

// WindowSize is the number of numbered buttons around the current page.
const WindowSize = 5

// PageItem is one entry of the control strip: a page number or an ellipsis.
type PageItem struct {
	Number   int
	Ellipsis bool
	Current  bool
}

// Window describes the pagination control for one list view.
type Window struct {
	Page      int // clamped current page
	PageSize  int
	Total     int
	PageCount int
	From      int // 1-based index of the first visible item, 0 when empty
	To        int // 1-based index of the last visible item
	HasPrev   bool
	HasNext   bool
	Pages     []PageItem
	Visible   bool // false when there is nothing to paginate
}

// PrevPage returns the page before the current one, never below 1.
func (w Window) PrevPage() int {
	return max(1, w.Page-1)
}

// NextPage returns the page after the current one, never above PageCount.
func (w Window) NextPage() int {
	return min(w.PageCount, w.Page+1)
}

// All reports whether the window was computed in show-all mode.
func (w Window) All() bool {
	return w.PageSize == PageSizeAll
}

// PageCountFor returns max(1, ceil(total/pageSize)), or 1 for PageSizeAll.
func PageCountFor(pageSize, total int) int {
	if pageSize == PageSizeAll || pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage forces page into [1, pageCount].
func ClampPage(page, pageCount int) int {
	if pageCount < 1 {
		pageCount = 1
	}
	if page < 1 {
		return 1
	}
	if page > pageCount {
		return pageCount
	}
	return page
}

// ComputeWindow maps (page, pageSize, total) to the control strip.
// It is a pure function.
func ComputeWindow(page, pageSize, total int) Window {
	if total < 0 {
		total = 0
	}
	w := Window{PageSize: pageSize, Total: total, Visible: total > 0}

	if pageSize == PageSizeAll || pageSize <= 0 {
		w.PageSize = PageSizeAll
		w.Page = 1
		w.PageCount = 1
		if total > 0 {
			w.From = 1
			w.To = total
		}
		return w
	}

	w.PageCount = PageCountFor(pageSize, total)
	w.Page = ClampPage(page, w.PageCount)
	if total > 0 {
		w.From = (w.Page-1)*pageSize + 1
		w.To = min(total, w.Page*pageSize)
	}
	w.HasPrev = w.Page > 1
	w.HasNext = w.Page < w.PageCount
	if w.Visible {
		w.Pages = windowPages(w.Page, w.PageCount)
	}
	return w
}

// windowPages builds the numbered window centered on cur, shifted into
// [1, pages], with anchors for the first and last page.
func windowPages(cur, pages int) []PageItem {
	start := max(1, cur-WindowSize/2)
	end := min(pages, start+WindowSize-1)
	start = max(1, end-WindowSize+1)

	items := make([]PageItem, 0, WindowSize+4)
	if start > 1 {
		items = append(items, PageItem{Number: 1})
	}
	if start > 2 {
		items = append(items, PageItem{Ellipsis: true})
	}
	for p := start; p <= end; p++ {
		items = append(items, PageItem{Number: p, Current: p == cur})
	}
	if end < pages-1 {
		items = append(items, PageItem{Ellipsis: true})
	}
	if end < pages {
		items = append(items, PageItem{Number: pages})
	}
	return items
}

// PageRequest is a page number and size requested by the user.
type PageRequest struct {
	Page     int
	PageSize int
}

// WithPage returns a copy targeting page.
func (r PageRequest) WithPage(page int) PageRequest {
	r.Page = max(1, page)
	return r
}

// WithSize returns a copy with a new size. Changing the size always
// resets the page to 1.
func (r PageRequest) WithSize(size int) PageRequest {
	if size != r.PageSize {
		r.Page = 1
	}
	r.PageSize = size
	return r
}

// Clamp forces Page into [1, pageCount].
func (r PageRequest) Clamp(pageCount int) PageRequest {
	r.Page = ClampPage(r.Page, pageCount)
	return r
}

// All reports whether the request is in show-all mode.
func (r PageRequest) All() bool {
	return r.PageSize == PageSizeAll
}

// ParseSize parses a page size value. "all" and "-1" yield PageSizeAll.
// Values not in allowed (when allowed is non-empty) yield def.
func ParseSize(s string, def int, allowed []int) int {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return def
	}
	n := 0
	if s == "all" {
		n = PageSizeAll
	} else {
		v, err := strconv.Atoi(s)
		if err != nil || (v <= 0 && v != PageSizeAll) {
			return def
		}
		n = v
	}
	if len(allowed) == 0 {
		return n
	}
	for _, a := range allowed {
		if a == n {
			return n
		}
	}
	return def
}

// FromQuery reads page and limit from query values. Unparseable or
// non-positive pages default to 1.
func FromQuery(q url.Values, defSize int, allowed []int) PageRequest {
	page := 1
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}
	return PageRequest{Page: page, PageSize: ParseSize(q.Get("limit"), defSize, allowed)}
}

// SizeLabel renders a page size for selectors.
func SizeLabel(size int) string {
	if size == PageSizeAll {
		return "all"
	}
	return strconv.Itoa(size)
}
