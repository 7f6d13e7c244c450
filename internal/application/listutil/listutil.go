// Package listutil holds the search, sort and pagination parameters shared by
// the admin list views (users, payments).
package listutil

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// ListParams carries the parameters of one admin list request.
type ListParams struct {
	Search  string // free-text search query
	Sort    string // column name, "" for natural order
	Desc    bool
	Page    int // 1-indexed page number
	PerPage int
}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// DefaultPerPage is the default number of rows per page.
const DefaultPerPage = 20

// PerPageOptions are the allowed rows-per-page values.
var PerPageOptions = []int{10, 20, 50, 100}

// ParseListParams extracts q, sort, dir, page and per_page from URL query values.
// PRE: allowedSort lists the sortable column names
// POST: Page >= 1; PerPage is one of PerPageOptions; Sort is allowed or ""
func ParseListParams(q url.Values, allowedSort []string) ListParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !contains(PerPageOptions, perPage) {
		perPage = DefaultPerPage
	}
	sort := q.Get("sort")
	if !contains(allowedSort, sort) {
		sort = ""
	}
	return ListParams{
		Search:  strings.TrimSpace(q.Get("q")),
		Sort:    sort,
		Desc:    q.Get("dir") == "desc",
		Page:    page,
		PerPage: perPage,
	}
}

// NewPageInfo computes pagination metadata.
// PRE: total >= 0
// POST: TotalPages >= 1; Page clamped to [1, TotalPages]
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset returns the index of the first row on the current page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Bounds returns the [start, end) slice indexes of the current page.
func (p PageInfo) Bounds() (int, int) {
	start := p.Offset()
	if start > p.Total {
		start = p.Total
	}
	end := start + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	return start, end
}

// Paginate returns the current page of items together with its metadata.
func Paginate[T any](items []T, page, perPage int) ([]T, PageInfo) {
	info := NewPageInfo(page, perPage, len(items))
	start, end := info.Bounds()
	return items[start:end], info
}

// Matcher reports whether any field contains the query, ignoring case.
// Case folding is Unicode-aware so "ÁLEX" matches "álex".
type Matcher struct {
	folded string
	caser  cases.Caser
}

// NewMatcher creates a Matcher for query. An empty query matches everything.
func NewMatcher(query string) Matcher {
	c := cases.Fold()
	return Matcher{folded: c.String(strings.TrimSpace(query)), caser: c}
}

// Match reports whether any of fields contains the query.
func (m Matcher) Match(fields ...string) bool {
	if m.folded == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(m.caser.String(f), m.folded) {
			return true
		}
	}
	return false
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
