// Package helpers holds small shared utilities for list endpoints
package helpers

import (
	"github.com/yigit/clubsphere/internal/app/models/dto"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Window is a 1-based page of a listing expressed as a row offset and limit
type Window struct {
	Page   int
	Offset int
	Limit  int
}

// PageWindow clamps page and size into a Window. Out of range sizes fall back
// to DefaultPageSize; pages below 1 become 1.
func PageWindow(page, size int) Window {
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	return Window{Page: page, Offset: (page - 1) * size, Limit: size}
}

// Info describes the window against totalItems matching rows. A page past
// the end reports the last page.
func (w Window) Info(totalItems int) dto.PaginationInfo {
	totalPages := 1
	if totalItems > 0 {
		totalPages = (totalItems + w.Limit - 1) / w.Limit
	}
	return dto.PaginationInfo{
		CurrentPage: min(w.Page, totalPages),
		TotalPages:  totalPages,
		PageSize:    w.Limit,
		TotalItems:  totalItems,
	}
}
