package queries

import (
	"feedme/internal/pkg/querybuilder"
)

// ListResult is one page of a list query.
type ListResult[T any] struct {
	Items      []T
	Page       querybuilder.Page
	Total      int64
	Projection querybuilder.Projection
}

// TotalPages is the number of pages needed for Total at the current limit.
func (r ListResult[T]) TotalPages() int {
	return r.Page.TotalPages(r.Total)
}

func newListResult[T any](items []T, total int64, query querybuilder.Query) ListResult[T] {
	page := querybuilder.Page{Number: querybuilder.DefaultPage, Limit: querybuilder.DefaultLimit}
	if query.Page != nil {
		page = *query.Page
	}
	if items == nil {
		items = make([]T, 0)
	}
	return ListResult[T]{
		Items:      items,
		Page:       page,
		Total:      total,
		Projection: query.Projection,
	}
}
