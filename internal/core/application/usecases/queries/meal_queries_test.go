package queries_test

import (
	"testing"

	"feedme/internal/core/application/usecases/queries"
	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/querybuilder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetMealQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	m := newTestMeal(t, kernel.NewUUID())
	repo := new(MockMealRepository)
	repo.On("Get", ctx, m.ID()).Return(m, nil).Once()

	query, err := queries.NewGetMealQuery(m.ID())
	require.NoError(t, err)

	got, err := queries.NewGetMealQueryHandler(repo).Handle(ctx, query)

	require.NoError(t, err)
	assert.Same(t, m, got)
	repo.AssertExpectations(t)
}

func TestGetMealQueryHandler_Handle_NotConstructed(t *testing.T) {
	repo := new(MockMealRepository)

	_, err := queries.NewGetMealQueryHandler(repo).Handle(t.Context(), queries.GetMealQuery{})

	require.ErrorIs(t, err, queries.ErrGetMealQueryIsNotConstructed)
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestListMealsQueryHandler_Handle(t *testing.T) {
	// Arrange
	ctx := t.Context()
	query := queries.NewListMealsQuery(querybuilder.Params{
		"searchTerm": "pizza",
		"category":   "Pizza",
		"sortBy":     "price",
		"sortOrder":  "desc",
		"page":       "2",
		"limit":      "1",
		"fields":     "name,price",
	})
	meals := []*meal.Meal{newTestMeal(t, kernel.NewUUID())}

	repo := new(MockMealRepository)
	repo.On("List", ctx, mock.MatchedBy(func(q querybuilder.Query) bool {
		return q.Search != nil && q.Search.Term == "pizza" &&
			assert.ObjectsAreEqual([]string{"name", "description"}, q.Search.Fields) &&
			q.Filters["category"] == "Pizza" &&
			q.Sort != nil && q.Sort.Field == "price" && q.Sort.Descending
	})).Return(meals, int64(3), nil).Once()

	// Act
	result, err := queries.NewListMealsQueryHandler(repo).Handle(ctx, query)

	// Assert
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(3), result.Total)
	assert.Equal(t, querybuilder.Page{Number: 2, Limit: 1}, result.Page)
	assert.Equal(t, 3, result.TotalPages())
	assert.True(t, result.Projection.Includes("price"))
	assert.False(t, result.Projection.Includes("description"))
	repo.AssertExpectations(t)
}

func TestListMealsQueryHandler_Handle_EmptyPage(t *testing.T) {
	ctx := t.Context()
	repo := new(MockMealRepository)
	repo.On("List", ctx, mock.Anything).Return([]*meal.Meal(nil), int64(0), nil).Once()

	result, err := queries.NewListMealsQueryHandler(repo).Handle(ctx, queries.NewListMealsQuery(nil))

	require.NoError(t, err)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Equal(t, querybuilder.Page{Number: querybuilder.DefaultPage, Limit: querybuilder.DefaultLimit}, result.Page)
}

func TestListMealsQueryHandler_Handle_StorageError(t *testing.T) {
	ctx := t.Context()
	repo := new(MockMealRepository)
	repo.On("List", ctx, mock.Anything).Return(nil, int64(0), errs.NewValueIsInvalidError("sortBy")).Once()

	_, err := queries.NewListMealsQueryHandler(repo).Handle(ctx, queries.NewListMealsQuery(nil))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
