package paging

// Metadata is the page metadata of one fetched page. When supplied by the
// remote API it is authoritative over anything computed locally.
type Metadata struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasPrev bool `json:"hasPrev"`
	HasNext bool `json:"hasNext"`
}

// Synthesize builds the metadata used when a response carries none: one
// page holding every returned item.
func Synthesize(count int) Metadata {
	return Metadata{Page: 1, Limit: count, Total: count, Pages: 1}
}

// Empty is the metadata shown after a failed fetch; it hides the control.
func Empty() Metadata {
	return Metadata{Page: 1, Total: 0, Pages: 1}
}

// Local computes metadata for a client-paged collection of total items.
func Local(page, pageSize, total int) Metadata {
	w := ComputeWindow(page, pageSize, total)
	limit := pageSize
	if w.All() {
		limit = total
	}
	return Metadata{
		Page:    w.Page,
		Limit:   limit,
		Total:   total,
		Pages:   w.PageCount,
		HasPrev: w.HasPrev,
		HasNext: w.HasNext,
	}
}

// Normalize fills derived fields the server may have omitted. Pages is
// recomputed from Total and Limit only when missing.
func (m Metadata) Normalize() Metadata {
	if m.Total < 0 {
		m.Total = 0
	}
	if m.Pages <= 0 {
		m.Pages = PageCountFor(m.Limit, m.Total)
	}
	if m.Page <= 0 {
		m.Page = 1
	}
	if !m.HasPrev {
		m.HasPrev = m.Page > 1
	}
	if !m.HasNext {
		m.HasNext = m.Page < m.Pages
	}
	return m
}

// Window derives the control strip from the metadata for the given
// requested page size.
func (m Metadata) Window(pageSize int) Window {
	if pageSize == PageSizeAll {
		return ComputeWindow(1, PageSizeAll, m.Total)
	}
	size := pageSize
	if m.Limit > 0 {
		size = m.Limit
	}
	w := ComputeWindow(m.Page, size, m.Total)
	if m.Pages > 0 && m.Pages != w.PageCount {
		// Trust the server's page count over ceil(total/limit).
		w.PageCount = m.Pages
		w.Page = ClampPage(m.Page, m.Pages)
		w.HasPrev = w.Page > 1
		w.HasNext = w.Page < w.PageCount
		if w.Total > 0 {
			w.To = min(w.Total, w.Page*size)
			w.From = min((w.Page-1)*size+1, w.To)
		}
		if w.Visible {
			w.Pages = windowPages(w.Page, w.PageCount)
		}
	}
	return w
}
