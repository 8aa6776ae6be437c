package common

import (
	"net/http"
	"strconv"
)

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// ExtractPaginationParams extracts page and page_size from the request,
// falling back to defaultSize and capping at maxSize. Non-numeric or
// non-positive values are ignored.
func ExtractPaginationParams(r *http.Request, defaultSize, maxSize int) PaginationParams {
	params := PaginationParams{Page: 1, PageSize: defaultSize}

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}

	if pageSize := r.URL.Query().Get("page_size"); pageSize != "" {
		if ps, err := strconv.Atoi(pageSize); err == nil && ps > 0 {
			if ps > maxSize {
				ps = maxSize
			}
			params.PageSize = ps
		}
	}

	return params
}

// CalculateOffset calculates the offset for database queries
func (p PaginationParams) CalculateOffset() int {
	return (p.Page - 1) * p.PageSize
}

// CalculateTotalPages calculates total number of pages
func CalculateTotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}

// PaginationInfo contains pagination details
type PaginationInfo struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// BuildPaginationMeta builds pagination metadata
func BuildPaginationMeta(page, pageSize, total int) PaginationInfo {
	totalPages := CalculateTotalPages(total, pageSize)

	return PaginationInfo{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// PaginatedResult is a page of results with the total match count
type PaginatedResult struct {
	Count      int            `json:"count"`
	Results    interface{}    `json:"results"`
	Pagination PaginationInfo `json:"pagination"`
}

// NewPaginatedResult creates a new paginated result
func NewPaginatedResult(results interface{}, page, pageSize, total int) *PaginatedResult {
	return &PaginatedResult{
		Count:      total,
		Results:    results,
		Pagination: BuildPaginationMeta(page, pageSize, total),
	}
}
