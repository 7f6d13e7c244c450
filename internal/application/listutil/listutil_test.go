package listutil

import (
	"net/url"
	"testing"
)

// TestParseListParams_Defaults verifies defaults when no query values are provided.
func TestParseListParams_Defaults(t *testing.T) {
	p := ParseListParams(url.Values{}, []string{"name"})
	if p.Page != 1 {
		t.Errorf("expected page 1, got %d", p.Page)
	}
	if p.PerPage != DefaultPerPage {
		t.Errorf("expected per_page %d, got %d", DefaultPerPage, p.PerPage)
	}
	if p.Sort != "" || p.Desc {
		t.Errorf("expected natural order, got %q desc=%v", p.Sort, p.Desc)
	}
}

// TestParseListParams_Values verifies parsing and rejection of invalid values.
func TestParseListParams_Values(t *testing.T) {
	tests := []struct {
		name    string
		q       url.Values
		page    int
		perPage int
		sort    string
		desc    bool
		search  string
	}{
		{"valid", url.Values{"page": {"3"}, "per_page": {"50"}, "sort": {"email"}, "dir": {"desc"}, "q": {" alex "}}, 3, 50, "email", true, "alex"},
		{"negative page", url.Values{"page": {"-1"}}, 1, DefaultPerPage, "", false, ""},
		{"per_page not allowed", url.Values{"per_page": {"25"}}, 1, DefaultPerPage, "", false, ""},
		{"sort not allowed", url.Values{"sort": {"password"}}, 1, DefaultPerPage, "", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseListParams(tt.q, []string{"name", "email"})
			if p.Page != tt.page || p.PerPage != tt.perPage || p.Sort != tt.sort || p.Desc != tt.desc || p.Search != tt.search {
				t.Errorf("got %+v", p)
			}
		})
	}
}

// TestNewPageInfo verifies total pages and clamping.
func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		page, perPage, total int
		wantPage, wantPages  int
	}{
		{1, 20, 0, 1, 1},
		{1, 20, 45, 1, 3},
		{9, 20, 45, 3, 3},
		{0, 10, 10, 1, 1},
	}
	for _, tt := range tests {
		info := NewPageInfo(tt.page, tt.perPage, tt.total)
		if info.Page != tt.wantPage || info.TotalPages != tt.wantPages {
			t.Errorf("NewPageInfo(%d,%d,%d) = %+v", tt.page, tt.perPage, tt.total, info)
		}
	}
}

// TestPaginate verifies the slice returned for the last partial page.
func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	page, info := Paginate(items, 2, 10)
	if len(page) != 2 || page[0] != 11 {
		t.Errorf("page = %v", page)
	}
	if info.Total != 12 || info.TotalPages != 2 {
		t.Errorf("info = %+v", info)
	}

	empty, info := Paginate([]int{}, 1, 10)
	if len(empty) != 0 || info.TotalPages != 1 {
		t.Errorf("empty page = %v, info = %+v", empty, info)
	}
}

// TestMatcher verifies case-insensitive substring search across fields.
func TestMatcher(t *testing.T) {
	tests := []struct {
		query  string
		fields []string
		want   bool
	}{
		{"", []string{"Alex Morgan"}, true},
		{"alex", []string{"Alex Morgan", "alex.morgan@example.com"}, true},
		{"EXAMPLE.COM", []string{"Sara", "sara@example.com"}, true},
		{"josé", []string{"JOSÉ Pérez"}, true},
		{"zzz", []string{"Alex Morgan", "alex.morgan@example.com"}, false},
	}
	for _, tt := range tests {
		if got := NewMatcher(tt.query).Match(tt.fields...); got != tt.want {
			t.Errorf("Match(%q, %v) = %v, want %v", tt.query, tt.fields, got, tt.want)
		}
	}
}
