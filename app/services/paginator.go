package services

// PageSize is how many catalog entries fit on one keyboard page.
const PageSize = 3

// PageWindow describes one page over an ordered list. The page index is the
// only paging token; the same index always yields the same window.
type PageWindow struct {
	Start   int
	End     int
	Page    int
	Pages   int
	HasPrev bool
	HasNext bool
}

// Paginate computes the window for a page of the given size. The page index
// is clamped into range, and an empty list yields exactly one empty page.
func Paginate(total, page, size int) PageWindow {
	if size < 1 {
		size = 1
	}
	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	if page < 0 {
		page = 0
	}
	if page > pages-1 {
		page = pages - 1
	}

	start := page * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return PageWindow{
		Start:   start,
		End:     end,
		Page:    page,
		Pages:   pages,
		HasPrev: page > 0,
		HasNext: page < pages-1,
	}
}

// ClampIndex bounds a single-item browse index into [0, total-1] without
// wraparound. A non-positive total maps to index 0.
func ClampIndex(total, index int) int {
	if total < 1 || index < 0 {
		return 0
	}
	if index > total-1 {
		return total - 1
	}
	return index
}
