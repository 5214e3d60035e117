package catalog

// PageSize is the number of cars shown per page.
const PageSize = 9

// maxWindow is the number of numbered page buttons shown at once.
const maxWindow = 5

// TotalPages returns the number of pages needed for n items.
func TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// Paginate returns the items of the 1-based page. Pages outside
// [1, TotalPages] yield no items.
func Paginate[T any](items []T, page int) []T {
	if page < 1 || page > TotalPages(len(items)) {
		return nil
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageWindow returns the numbered pages to offer around current.
func PageWindow(current, total int) []int {
	if total <= 0 {
		return nil
	}

	var first int
	switch {
	case total <= maxWindow:
		first = 1
	case current <= 3:
		first = 1
	case current >= total-2:
		first = total - maxWindow + 1
	default:
		first = current - 2
	}

	n := total
	if n > maxWindow {
		n = maxWindow
	}
	pages := make([]int, n)
	for i := range pages {
		pages[i] = first + i
	}
	return pages
}

// Navigation describes the pager controls for a page.
type Navigation struct {
	Current int
	Total   int
	Pages   []int

	FirstDisabled    bool
	PreviousDisabled bool
	NextDisabled     bool
	LastDisabled     bool
}

// Visible reports whether the pager is worth showing.
func (n Navigation) Visible() bool {
	return n.Total > 1
}

// Previous returns the page the Previous control leads to.
func (n Navigation) Previous() int {
	if n.Current <= 1 {
		return 1
	}
	return n.Current - 1
}

// Next returns the page the Next control leads to.
func (n Navigation) Next() int {
	if n.Current >= n.Total {
		return n.Total
	}
	return n.Current + 1
}

// Navigate builds the pager controls for current out of total pages.
func Navigate(current, total int) Navigation {
	return Navigation{
		Current:          current,
		Total:            total,
		Pages:            PageWindow(current, total),
		FirstDisabled:    current == 1,
		PreviousDisabled: current == 1,
		NextDisabled:     current == total,
		LastDisabled:     current == total,
	}
}
