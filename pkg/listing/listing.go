package listing

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const (
	// DefaultPerPage is the standard page size when none is provided.
	DefaultPerPage = 25
	// MaxPerPage caps how many rows any table query can request.
	MaxPerPage = 100
)

// Params holds the table inputs sent by the dashboard: page/per-page plus an
// optional sort column, sort direction and free-text search term.
type Params struct {
	Page          int
	PerPage       int
	SortColumn    string
	SortDirection string
	Search        string
}

// Options declares, per entity, which columns may be sorted or searched.
// Columns outside the whitelist are rejected rather than interpolated.
type Options struct {
	SortColumns   []string
	SearchColumns []string
	DefaultSort   string
}

// Page is the envelope returned by table endpoints.
type Page struct {
	Rows       any   `json:"rows"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

// Normalize clamps paging inputs to sane bounds.
func Normalize(p Params) Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	p.SortDirection = strings.ToLower(strings.TrimSpace(p.SortDirection))
	if p.SortDirection != "asc" && p.SortDirection != "desc" {
		p.SortDirection = "asc"
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

// ApplySearch adds a case-insensitive LIKE across the whitelisted search
// columns. Call before counting so totals reflect the filtered set.
func ApplySearch(q *gorm.DB, p Params, o Options) *gorm.DB {
	if p.Search == "" || len(o.SearchColumns) == 0 {
		return q
	}
	pattern := "%" + strings.ToLower(p.Search) + "%"
	clauses := make([]string, 0, len(o.SearchColumns))
	args := make([]any, 0, len(o.SearchColumns))
	for _, col := range o.SearchColumns {
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", col))
		args = append(args, pattern)
	}
	return q.Where(strings.Join(clauses, " OR "), args...)
}

// ApplyOrdering adds sorting and paging. The sort column must be in the
// whitelist; an empty column falls back to the entity default.
func ApplyOrdering(q *gorm.DB, p Params, o Options) (*gorm.DB, error) {
	order := o.DefaultSort
	if p.SortColumn != "" {
		if !contains(o.SortColumns, p.SortColumn) {
			return nil, fmt.Errorf("sorting by %q is not allowed", p.SortColumn)
		}
		order = fmt.Sprintf("%s %s", p.SortColumn, strings.ToUpper(p.SortDirection))
	}
	if order != "" {
		q = q.Order(order)
	}
	return q.Offset((p.Page - 1) * p.PerPage).Limit(p.PerPage), nil
}

// NewPage wraps the fetched rows with paging metadata.
func NewPage(rows any, total int64, p Params) *Page {
	pages := int(total) / p.PerPage
	if int(total)%p.PerPage != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return &Page{
		Rows:       rows,
		Total:      total,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: pages,
	}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
