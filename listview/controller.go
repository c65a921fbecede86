// Package listview keeps the interaction state of a tabular screen: tabs, filters,
// sorting and pagination. It knows nothing about the resource being listed.
package listview

import (
	"maps"
	"slices"
	"time"

	"github.com/jrsteele09/boutik-admin/internal/config"
)

// Controller is owned by a single screen and is not safe for concurrent use.
type Controller struct {
	tabs        []string
	activeTab   string
	onTabChange func(string)

	filters   map[string]Filter
	debounced *Debounced[map[string]any]

	sort Sort

	page      int
	pageSize  int
	pageSizes []int
}

type Option func(*Controller)

// WithTabs sets the tabs; the first one starts active
func WithTabs(tabs ...string) Option {
	return func(c *Controller) {
		c.tabs = append([]string(nil), tabs...)
	}
}

// OnTabChange registers a side effect, such as a refetch, run after every tab change
func OnTabChange(fn func(tab string)) Option {
	return func(c *Controller) {
		c.onTabChange = fn
	}
}

func WithSort(s Sort) Option {
	return func(c *Controller) {
		c.sort = Sort{Column: s.Column, Direction: s.direction()}
	}
}

// WithClock injects the time source of the filter debounce
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.debounced.now = now
	}
}

func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

func NewController(cfg config.ListConfig, opts ...Option) *Controller {
	c := &Controller{
		filters:   make(map[string]Filter),
		debounced: NewDebounced(map[string]any{}, cfg.GetFilterDebounce(), time.Now),
		sort:      Sort{Direction: Asc},
		page:      1,
		pageSize:  cfg.GetDefaultPageSize(),
		pageSizes: cfg.GetPageSizeOptions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.pageSize <= 0 {
		c.pageSize = 15
	}
	if len(c.tabs) > 0 {
		c.activeTab = c.tabs[0]
	}
	return c
}

func (c *Controller) Tabs() []string        { return slices.Clone(c.tabs) }
func (c *Controller) ActiveTab() string      { return c.activeTab }
func (c *Controller) Sort() Sort             { return c.sort }
func (c *Controller) SortQuery() string      { return c.sort.String() }
func (c *Controller) Page() int              { return c.page }
func (c *Controller) PageSize() int          { return c.pageSize }
func (c *Controller) PageSizeOptions() []int { return slices.Clone(c.pageSizes) }

// ChangeTab activates tab and runs the tab change callback. Filters, sort and page are kept.
func (c *Controller) ChangeTab(tab string) {
	c.activeTab = tab
	if c.onTabChange != nil {
		c.onTabChange(tab)
	}
}

// ChangeFilter stores a filter that has a value and removes one that does not
func (c *Controller) ChangeFilter(f Filter) {
	if !f.Defined() {
		c.RemoveFilter(f.Name)
		return
	}
	name := f.Name
	f.OnRemove = func() { c.RemoveFilter(name) }
	c.filters[name] = f
	c.filtersChanged()
}

func (c *Controller) RemoveFilter(name string) {
	if _, ok := c.filters[name]; !ok {
		return
	}
	delete(c.filters, name)
	c.filtersChanged()
}

func (c *Controller) ClearFilters() {
	if len(c.filters) == 0 {
		return
	}
	c.filters = make(map[string]Filter)
	c.filtersChanged()
}

// Filter returns the raw filter stored under name
func (c *Controller) Filter(name string) (Filter, bool) {
	f, ok := c.filters[name]
	return f, ok
}

// Filters returns the raw filters, without waiting for the debounce
func (c *Controller) Filters() map[string]Filter {
	return maps.Clone(c.filters)
}

// QueryFilters is the debounced name→value projection of the defined filters
func (c *Controller) QueryFilters() map[string]any {
	return maps.Clone(c.debounced.Value())
}

// FiltersSettleAt is when the latest filter change reaches QueryFilters
func (c *Controller) FiltersSettleAt() (time.Time, bool) {
	return c.debounced.SettlesAt()
}

func (c *Controller) filtersChanged() {
	c.debounced.Set(project(c.filters))
}

// SortBy sets the column and direction
func (c *Controller) SortBy(column string, dir Direction) {
	c.sort = Sort{Column: column, Direction: Sort{Direction: dir}.direction()}
}

// ToggleSort sorts by column, flipping the direction when it is already the sort column
func (c *Controller) ToggleSort(column string) {
	if c.sort.Column == column {
		c.sort.Direction = c.sort.direction().Opposite()
		return
	}
	c.sort = Sort{Column: column, Direction: Asc}
}

// SetPage moves to page n, never below the first page
func (c *Controller) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	c.page = n
}

func (c *Controller) NextPage(total int) {
	if c.page < PageCount(total, c.pageSize) {
		c.page++
	}
}

func (c *Controller) PrevPage() {
	c.SetPage(c.page - 1)
}

// SetPageSize changes the page size and goes back to the first page
func (c *Controller) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	c.pageSize = n
	c.page = 1
}

// Params is the query for the current state with the debounced filters
func (c *Controller) Params() Params {
	return Params{
		Limit:   c.pageSize,
		Skip:    (c.page - 1) * c.pageSize,
		SortBy:  c.sort.Column,
		Order:   c.sort.direction(),
		Filters: c.QueryFilters(),
	}
}

// PageCount is the number of pages needed for total rows, at least one
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}
