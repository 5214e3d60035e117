package catalog

import (
	"sync"

	"car-rental/notify"
)

const msgFiltersCleared = "Filters cleared"

// View owns the browse criteria and the current page.
// Changing any filter or the search term moves back to page 1.
type View struct {
	mu       sync.Mutex
	criteria Criteria
	page     int
	notifier notify.Notifier
}

// ViewOption configures a View.
type ViewOption func(*View)

// WithViewNotifier sets where the view reports user actions.
func WithViewNotifier(n notify.Notifier) ViewOption {
	return func(v *View) { v.notifier = n }
}

// NewView returns a View with no filters on page 1.
func NewView(opts ...ViewOption) *View {
	v := &View{page: 1, notifier: notify.Nop{}}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Criteria returns the current criteria.
func (v *View) Criteria() Criteria {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criteria
}

// CurrentPage returns the current 1-based page.
func (v *View) CurrentPage() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// SetSearch replaces the search term.
func (v *View) SetSearch(term string) {
	v.Update(func(c *Criteria) { c.Search = term })
}

// Update applies fn to the criteria and resets the page.
func (v *View) Update(fn func(c *Criteria)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(&v.criteria)
	v.page = 1
}

// SetPage moves to page n.
func (v *View) SetPage(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = n
}

// Clear drops every filter and the search term and returns to page 1.
func (v *View) Clear() {
	v.mu.Lock()
	v.criteria = Criteria{}
	v.page = 1
	n := v.notifier
	v.mu.Unlock()

	n.Success(msgFiltersCleared)
}

// Render returns the current page of s under the view's criteria.
func (v *View) Render(s *Store) Page {
	v.mu.Lock()
	c, page := v.criteria, v.page
	v.mu.Unlock()
	return s.Page(c, page)
}
