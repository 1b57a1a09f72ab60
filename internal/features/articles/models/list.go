package models

import "time"

// ListParams filters and pages an article listing. Filters combine with AND.
type ListParams struct {
	Page         int
	Limit        int
	Category     string
	FeaturedOnly bool
	StartDate    *time.Time
	EndDate      *time.Time
}

// Skip returns the number of articles before the requested page
func (p ListParams) Skip() int {
	return (p.Page - 1) * p.Limit
}

// Pagination describes where a page sits in the full result
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

// ListResult is one page of articles
type ListResult struct {
	Articles   []Article  `json:"articles"`
	Pagination Pagination `json:"pagination"`
}

// PageCount returns ceil(total/limit)
func PageCount(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
