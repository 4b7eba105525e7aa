// Package repository implements the data access layer for the application.
package repository

// PageParams carries normalized pagination input. Zero values are replaced
// with defaults by Normalize.
type PageParams struct {
	Page  int
	Limit int
}

// Normalize clamps pagination input: page starts at 1, limit defaults to 10
// and is capped at 100.
func (p PageParams) Normalize() PageParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is a paginated result set. A page past the end carries an empty Docs
// slice, never an error.
type Page[T any] struct {
	Docs       []T   `json:"docs"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// NewPage assembles a Page from a result slice and the total row count.
func NewPage[T any](docs []T, total int64, params PageParams) *Page[T] {
	if docs == nil {
		docs = []T{}
	}
	totalPages := int(total) / params.Limit
	if int(total)%params.Limit != 0 {
		totalPages++
	}
	return &Page[T]{
		Docs:       docs,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages,
	}
}
