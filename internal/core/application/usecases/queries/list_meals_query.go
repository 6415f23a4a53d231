package queries

import (
	"errors"

	"feedme/internal/core/ports"
	"feedme/internal/pkg/guard"
	"feedme/internal/pkg/querybuilder"
)

var (
	ErrListMealsQueryIsNotConstructed = errors.New(
		"ListMealsQuery must be created via NewListMealsQuery constructor",
	)
)

// ListMealsQuery browses the catalog.
//
// Example:
//
//	query := NewListMealsQuery(querybuilder.Params{
//	    "searchTerm": "wrap",
//	    "category":   "Lunch",
//	    "sortBy":     "price",
//	    "sortOrder":  "asc",
//	})
//	page, err := handler.Handle(ctx, query)
type ListMealsQuery struct {
	query querybuilder.Query

	guard guard.ConstructorGuard
}

func NewListMealsQuery(params querybuilder.Params) ListMealsQuery {
	return ListMealsQuery{
		query: querybuilder.Standard(params, ports.MealSearchFields...),
		guard: guard.NewConstructorGuard(),
	}
}

func (q ListMealsQuery) Validate() error {
	return q.guard.Validate(ErrListMealsQueryIsNotConstructed)
}

func (q ListMealsQuery) Query() querybuilder.Query {
	return q.query
}
