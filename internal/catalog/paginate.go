// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

// PagedResult is one window of an ordered result set.
type PagedResult[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
}

// Paginate returns the window [(page-1)*size, page*size) of items.
// A page past the end yields no items but keeps the totals.
func Paginate[T any](items []T, page, size int) (*PagedResult[T], error) {
	if page < 1 {
		return nil, invalidArg("page must be >= 1, got %d", page)
	}
	if size < 1 {
		return nil, invalidArg("page size must be >= 1, got %d", size)
	}

	total := len(items)
	result := &PagedResult[T]{
		Items:      []T{},
		TotalCount: total,
		Page:       page,
		PageSize:   size,
	}
	if total > 0 {
		result.TotalPages = (total-1)/size + 1
	}

	// Compare page numbers first; (page-1)*size overflows for large pages.
	if page-1 >= result.TotalPages {
		return result, nil
	}
	start := (page - 1) * size
	end := min(start+size, total)
	result.Items = append(result.Items, items[start:end]...)
	return result, nil
}

// HasNext reports whether another page follows this one.
func (r *PagedResult[T]) HasNext() bool {
	return r.Page < r.TotalPages
}
