package meal_test

import (
	"testing"
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

func validDetails() meal.Details {
	return meal.Details{
		Name:        "Chicken Wrap",
		Description: "Grilled chicken, lettuce and garlic sauce",
		Price:       kernel.MustMoney(8.5),
		Category:    "Lunch",
		ImageURL:    "https://cdn.example.com/wrap.jpg",
		IsAvailable: true,
		Nutrition:   meal.Nutrition{Calories: 540, Protein: 32, Carbs: 48, Fat: 18},
		Customization: meal.Options{
			RemovableIngredients: []string{"Lettuce", "Garlic sauce"},
			AddOns: []meal.AddOn{
				{Name: "Cheese", Price: kernel.MustMoney(1)},
				{Name: "Bacon", Price: kernel.MustMoney(1.5)},
			},
			SpiceLevels: []string{"Mild", "Hot"},
		},
	}
}

func newMeal(t *testing.T) *meal.Meal {
	t.Helper()
	m, err := meal.NewMeal(kernel.NewUUID(), kernel.NewUUID(), validDetails(), createdAt)
	require.NoError(t, err)
	return m
}

func TestNewMeal(t *testing.T) {
	t.Run("should create an unrated meal", func(t *testing.T) {
		providerID := kernel.NewUUID()

		m, err := meal.NewMeal(kernel.NewUUID(), providerID, validDetails(), createdAt)

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.True(t, m.IsOwnedBy(providerID))
		assert.False(t, m.IsOwnedBy(kernel.NewUUID()))
		assert.Equal(t, "Chicken Wrap", m.Name())
		assert.Equal(t, kernel.Money(850), m.Price())
		assert.Equal(t, 0, m.Rating().Count())
		assert.InDelta(t, 0.0, m.Rating().Average(), 1e-9)
		assert.Empty(t, m.Reviews())
	})

	t.Run("should collect validation errors", func(t *testing.T) {
		details := validDetails()
		details.Name = " "
		details.Price = 0
		details.ImageURL = "not a url"
		details.Nutrition.Calories = -1
		details.Customization.AddOns = append(details.Customization.AddOns, meal.AddOn{Name: "cheese"})

		m, err := meal.NewMeal(kernel.NewUUID(), kernel.UUID{}, details, createdAt)

		require.Error(t, err)
		assert.Nil(t, m)
		for _, fragment := range []string{"providerId", "name", "price", "imageUrl", "nutritionalInfo", "listed twice"} {
			assert.Contains(t, err.Error(), fragment)
		}
	})
}

func TestMeal_Update(t *testing.T) {
	t.Run("should apply only the given fields", func(t *testing.T) {
		m := newMeal(t)
		price := kernel.MustMoney(9.25)
		unavailable := false

		err := m.Update(meal.Patch{Price: &price, IsAvailable: &unavailable}, createdAt.Add(time.Hour))

		require.NoError(t, err)
		assert.Equal(t, price, m.Price())
		assert.False(t, m.IsAvailable())
		assert.Equal(t, "Chicken Wrap", m.Name())
		assert.Equal(t, createdAt.Add(time.Hour), m.UpdatedAt())
	})

	t.Run("should leave the meal unchanged when invalid", func(t *testing.T) {
		m := newMeal(t)
		empty := ""

		err := m.Update(meal.Patch{Name: &empty}, createdAt.Add(time.Hour))

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, "Chicken Wrap", m.Name())
		assert.Equal(t, createdAt, m.UpdatedAt())
	})

	t.Run("should reject an empty patch", func(t *testing.T) {
		require.ErrorIs(t, newMeal(t).Update(meal.Patch{}, createdAt), errs.ErrValueIsRequired)
	})
}

func TestMeal_UnitPrice(t *testing.T) {
	m := newMeal(t)

	t.Run("should add add-on prices", func(t *testing.T) {
		price, err := m.UnitPrice([]string{"cheese", "Bacon"}, []string{"lettuce"}, "hot")

		require.NoError(t, err)
		assert.Equal(t, kernel.Money(1100), price)
	})

	t.Run("should accept no customization", func(t *testing.T) {
		price, err := m.UnitPrice(nil, nil, "")

		require.NoError(t, err)
		assert.Equal(t, kernel.Money(850), price)
	})

	tests := map[string]struct {
		addOns  []string
		removed []string
		spice   string
		param   string
	}{
		"unknown add-on":           {addOns: []string{"Avocado"}, param: "addOns"},
		"ingredient not removable": {removed: []string{"Chicken"}, param: "removedIngredients"},
		"spice level not offered":  {spice: "Extra hot", param: "spiceLevel"},
	}
	for name, tt := range tests {
		t.Run("should reject "+name, func(t *testing.T) {
			_, err := m.UnitPrice(tt.addOns, tt.removed, tt.spice)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), tt.param)
		})
	}

	t.Run("should reject unavailable meals", func(t *testing.T) {
		unavailable := newMeal(t)
		no := false
		require.NoError(t, unavailable.Update(meal.Patch{IsAvailable: &no}, createdAt))

		_, err := unavailable.UnitPrice(nil, nil, "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "not available")
	})
}

func TestMeal_AddReview(t *testing.T) {
	m := newMeal(t)
	orderID := kernel.NewUUID()

	first, err := meal.NewReview(kernel.NewUUID(), orderID, 5, "Great", createdAt)
	require.NoError(t, err)
	second, err := meal.NewReview(kernel.NewUUID(), kernel.NewUUID(), 2, "", createdAt)
	require.NoError(t, err)

	require.NoError(t, m.AddReview(first))
	require.NoError(t, m.AddReview(second))

	assert.Equal(t, 2, m.Rating().Count())
	assert.Equal(t, 7, m.Rating().Sum())
	assert.InDelta(t, 3.5, m.Rating().Average(), 1e-9)
	assert.True(t, m.HasReviewFor(orderID))

	again, err := meal.NewReview(first.UserID(), orderID, 1, "changed my mind", createdAt)
	require.NoError(t, err)
	require.ErrorIs(t, m.AddReview(again), errs.ErrConflict)
	assert.Equal(t, 2, m.Rating().Count())
}

func TestNewReview(t *testing.T) {
	for _, score := range []int{0, 6, -1} {
		_, err := meal.NewReview(kernel.NewUUID(), kernel.NewUUID(), score, "", createdAt)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	}

	long := make([]rune, meal.MaxCommentLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := meal.NewReview(kernel.NewUUID(), kernel.NewUUID(), 3, string(long), createdAt)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	review, err := meal.NewReview(kernel.NewUUID(), kernel.NewUUID(), 4, "  tasty ", createdAt)
	require.NoError(t, err)
	assert.Equal(t, "tasty", review.Comment())
	assert.Equal(t, 4, review.Score())
}

func TestRestoreMeal(t *testing.T) {
	review, err := meal.NewReview(kernel.NewUUID(), kernel.NewUUID(), 4, "", createdAt)
	require.NoError(t, err)

	snapshot := meal.Snapshot{
		ID:          kernel.NewUUID(),
		ProviderID:  kernel.NewUUID(),
		Details:     validDetails(),
		RatingSum:   9,
		RatingCount: 2,
		Reviews:     []meal.Review{review},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
		Revision:    3,
	}

	m, err := meal.RestoreMeal(snapshot)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, m.Rating().Average(), 1e-9)
	assert.Equal(t, 3, m.Revision())

	snapshot.RatingSum = 11
	_, err = meal.RestoreMeal(snapshot)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
