package listview

import (
	"fmt"
	"net/url"
	"sort"
)

// Params is the query a list screen sends: paging, sorting and the settled filters
type Params struct {
	Limit   int
	Skip    int
	SortBy  string
	Order   Direction
	Filters map[string]any
}

// Values encodes the params as list endpoint query parameters
func (p Params) Values() url.Values {
	v := url.Values{}
	if p.Limit > 0 {
		v.Set("limit", fmt.Sprint(p.Limit))
	}
	v.Set("skip", fmt.Sprint(p.Skip))
	if p.SortBy != "" {
		v.Set("sort_by", p.SortBy)
		order := p.Order
		if order == "" {
			order = Asc
		}
		v.Set("order", string(order))
	}
	names := make([]string, 0, len(p.Filters))
	for name := range p.Filters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !isDefined(p.Filters[name]) {
			continue
		}
		if value := plain(p.Filters[name]); value != nil {
			v.Set(name, fmt.Sprint(value))
		}
	}
	return v
}
