package paging

// Slice returns the items visible on page for a client-paged view.
//
// PageSizeAll returns items unchanged. When the collection has shrunk so
// that the page starts past the end, and page > 1, the first pageSize
// items are returned instead of an empty result; the caller resets the
// page on its next reload.
func Slice[T any](items []T, page, pageSize int) []T {
	if pageSize == PageSizeAll || pageSize <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		if page > 1 {
			return clip(items, 0, min(pageSize, len(items)))
		}
		return clip(items, 0, 0)
	}
	return clip(items, start, min(len(items), start+pageSize))
}

// clip returns items[lo:hi] with its capacity capped so appends by the
// caller never write into the backing collection.
func clip[T any](items []T, lo, hi int) []T {
	return items[lo:hi:hi]
}

// Filter returns a new slice holding the items for which keep is true.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
