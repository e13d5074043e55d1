package domain

import "math"

// Page size bounds applied to every list endpoint.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPage keeps Offset within the int32 range.
	MaxPage = math.MaxInt32/MaxPageSize + 1
)

// PaginationParams selects one page of a list. Page counts from 1.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams normalises the optional ?page= and ?limit= values.
// Missing or non-positive values fall back to page 1 and DefaultPageSize;
// values above MaxPage and MaxPageSize are clamped.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageSize}
	if page != nil && *page > 0 {
		p.Page = min(*page, MaxPage)
	}
	if limit != nil && *limit > 0 {
		p.Limit = min(*limit, MaxPageSize)
	}
	return p
}

// Offset is the number of rows skipped before this page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
