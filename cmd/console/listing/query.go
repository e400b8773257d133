package listing

import (
	"maps"
	"net/url"
	"strconv"
	"strings"

	"locker-console/cmd/console/validation"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is an optional server-side ordering.
type Sort struct {
	Field     string    `json:"field" validate:"required"`
	Direction Direction `json:"direction" validate:"oneof=asc desc"`
}

type Page struct {
	Index int `json:"index" validate:"min=1"`
	Size  int `json:"size" validate:"min=1,max=500"`
}

// Query is the QueryState of one list page. Absent filter keys mean no constraint.
type Query struct {
	Filters map[string]string `json:"filters"`
	Page    Page              `json:"page"`
	Sort    *Sort             `json:"sort,omitempty"`
}

func NewQuery(size int) Query {
	return Query{Filters: map[string]string{}, Page: Page{Index: 1, Size: size}}
}

func (q Query) Validate() error {
	if err := validation.Struct(q.Page); err != nil {
		return err
	}
	if q.Sort != nil {
		return validation.Struct(*q.Sort)
	}
	return nil
}

// Merge returns a copy with partial applied. A nil or blank value removes the constraint.
func (q Query) Merge(partial map[string]*string) Query {
	out := q.clone()
	for k, v := range partial {
		if v == nil || strings.TrimSpace(*v) == "" {
			delete(out.Filters, k)
			continue
		}
		out.Filters[k] = strings.TrimSpace(*v)
	}
	return out
}

// WithFilters merges partial and resets to the first page.
func (q Query) WithFilters(partial map[string]*string) Query {
	out := q.Merge(partial)
	out.Page.Index = 1
	return out
}

// WithPage replaces pagination; filters and sort are kept.
func (q Query) WithPage(index, size int) Query {
	out := q.clone()
	out.Page = Page{Index: index, Size: size}
	return out
}

// WithSort replaces ordering and resets to the first page. nil clears it.
func (q Query) WithSort(s *Sort) Query {
	out := q.clone()
	if s != nil {
		cp := *s
		out.Sort = &cp
	} else {
		out.Sort = nil
	}
	out.Page.Index = 1
	return out
}

// SortParams maps a sortable field to the list parameter that carries its direction,
// e.g. "size" -> "sortBySize".
type SortParams map[string]string

// Values encodes the query in the backend's list parameter format. The sort is
// sent only when sorts declares its field.
func (q Query) Values(sorts SortParams) url.Values {
	v := url.Values{}
	v.Set("pageIndex", strconv.Itoa(q.Page.Index))
	v.Set("pageSize", strconv.Itoa(q.Page.Size))
	for k, val := range q.Filters {
		if val != "" {
			v.Set(k, val)
		}
	}
	if q.Sort != nil {
		if param, ok := sorts[q.Sort.Field]; ok {
			v.Set(param, string(q.Sort.Direction))
		}
	}
	return v
}

func (q Query) clone() Query {
	out := q
	out.Filters = maps.Clone(q.Filters)
	if out.Filters == nil {
		out.Filters = map[string]string{}
	}
	if q.Sort != nil {
		cp := *q.Sort
		out.Sort = &cp
	}
	return out
}
