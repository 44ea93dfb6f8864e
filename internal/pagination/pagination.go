// Package pagination slices sorted result lists into pages.
package pagination

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Paginate returns the requested page of items. perPage is capped at
// MaxPerPage, TotalPages is ceil(len(items)/perPage) and page is clamped to
// [1, TotalPages].
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	total := len(items)
	totalPages := (total + perPage - 1) / perPage
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return Page[T]{Items: out, Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}
