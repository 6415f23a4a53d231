package mealrepo_test

import (
	"context"
	"sync"
	"testing"

	"feedme/internal/adapters/out/postgres/mealrepo"
	"feedme/internal/adapters/out/postgres/pgtest"
	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/querybuilder"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type MealRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *mealrepo.GormMealRepository
	tracker    *MockAggregateTracker
	providerID kernel.UUID
}

func (suite *MealRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *MealRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = mealrepo.NewGormMealRepository(suite.db, suite.tracker)
	suite.providerID = kernel.NewUUID()
}

func (suite *MealRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *MealRepositoryIntegrationTestSuite) addMeal(name string, price float64) *meal.Meal {
	m := pgtest.NewMeal(suite.T(), suite.providerID, name, price)
	suite.Require().NoError(suite.repository.Add(context.Background(), m))
	return m
}

func (suite *MealRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	// Arrange
	m := suite.addMeal("Chicken Wrap", 9.99)

	// Act
	got, err := suite.repository.Get(ctx, m.ID())

	// Assert
	suite.Require().NoError(err)
	suite.True(got.IsEqual(m))
	suite.True(got.ProviderID().IsEqual(suite.providerID))
	suite.Equal("Chicken Wrap", got.Name())
	suite.Equal(kernel.MustMoney(9.99), got.Price())
	suite.Equal(meal.Nutrition{Calories: 640, Protein: 32.5, Carbs: 48, Fat: 21}, got.Nutrition())
	suite.Equal(m.Customization(), got.Customization())
	suite.True(got.CreatedAt().Equal(m.CreatedAt()))
	suite.Equal(0, got.Rating().Count())
	suite.Empty(got.Reviews())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", m.ID(), m)
}

func (suite *MealRepositoryIntegrationTestSuite) TestGet_Missing() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *MealRepositoryIntegrationTestSuite) TestUpdate_BumpsRevision() {
	ctx := context.Background()

	// Arrange
	m := suite.addMeal("Chicken Wrap", 9.99)
	price := kernel.MustMoney(11.25)
	unavailable := false
	suite.Require().NoError(m.Update(meal.Patch{Price: &price, IsAvailable: &unavailable}, pgtest.Now()))

	// Act
	suite.Require().NoError(suite.repository.Update(ctx, m))
	suite.Require().NoError(suite.repository.Update(ctx, m))

	// Assert
	got, err := suite.repository.Get(ctx, m.ID())
	suite.Require().NoError(err)
	suite.Equal(price, got.Price())
	suite.False(got.IsAvailable())
	suite.Equal(2, got.Revision())
}

func (suite *MealRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	m := suite.addMeal("Chicken Wrap", 9.99)
	review, err := meal.NewReview(kernel.NewUUID(), kernel.NewUUID(), 4, "", pgtest.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AddReview(ctx, m.ID(), review))

	suite.Require().NoError(suite.repository.Delete(ctx, m.ID()))

	_, err = suite.repository.Get(ctx, m.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	var reviews int64
	suite.Require().NoError(suite.db.Model(&mealrepo.ReviewDTO{}).Count(&reviews).Error)
	suite.Zero(reviews)

	suite.Require().ErrorIs(suite.repository.Delete(ctx, m.ID()), errs.ErrObjectNotFound)
}

func (suite *MealRepositoryIntegrationTestSuite) TestGetMany_SkipsMissing() {
	first := suite.addMeal("Chicken Wrap", 9.99)
	second := suite.addMeal("Greek Salad", 6.5)

	meals, err := suite.repository.GetMany(context.Background(), []kernel.UUID{first.ID(), kernel.NewUUID(), second.ID()})

	suite.Require().NoError(err)
	suite.Len(meals, 2)
}

func (suite *MealRepositoryIntegrationTestSuite) TestList() {
	ctx := context.Background()
	suite.addMeal("Chicken Wrap", 9.99)
	suite.addMeal("Greek Salad", 6.5)
	suite.addMeal("Chicken Soup", 5.5)
	suite.addMeal("100% Beef Burger", 12.5)

	testCases := []struct {
		name   string
		params querybuilder.Params
		names  []string
		total  int64
	}{
		{
			name:   "search ignores case and sorts by price",
			params: querybuilder.Params{"searchTerm": "CHICKEN", "sortBy": "price", "sortOrder": "desc"},
			names:  []string{"Chicken Wrap", "Chicken Soup"},
			total:  2,
		},
		{
			name:   "percent sign is literal",
			params: querybuilder.Params{"searchTerm": "%"},
			names:  []string{"100% Beef Burger"},
			total:  1,
		},
		{
			name:   "price filter in currency units",
			params: querybuilder.Params{"price": "6.50"},
			names:  []string{"Greek Salad"},
			total:  1,
		},
		{
			name:   "provider filter",
			params: querybuilder.Params{"providerId": suite.providerID.String(), "limit": "2", "page": "2", "sortBy": "name", "sortOrder": "asc"},
			names:  []string{"Chicken Wrap", "Greek Salad"},
			total:  4,
		},
		{
			name:   "unknown filter matches nothing",
			params: querybuilder.Params{"color": "red"},
			names:  []string{},
			total:  0,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			meals, total, err := suite.repository.List(ctx, querybuilder.Standard(tc.params, "name", "description"))

			suite.Require().NoError(err)
			names := make([]string, 0, len(meals))
			for _, m := range meals {
				names = append(names, m.Name())
			}
			suite.Equal(tc.names, names)
			suite.Equal(tc.total, total)
		})
	}
}

func (suite *MealRepositoryIntegrationTestSuite) TestAddReview() {
	ctx := context.Background()
	m := suite.addMeal("Chicken Wrap", 9.99)
	orderID := kernel.NewUUID()
	review, err := meal.NewReview(kernel.NewUUID(), orderID, 4, "Great wrap", pgtest.Now())
	suite.Require().NoError(err)

	suite.Run("stores review and rating", func() {
		suite.Require().NoError(suite.repository.AddReview(ctx, m.ID(), review))

		got, getErr := suite.repository.Get(ctx, m.ID())
		suite.Require().NoError(getErr)
		suite.Equal(1, got.Rating().Count())
		suite.InDelta(4.0, got.Rating().Average(), 0.0001)
		suite.Require().Len(got.Reviews(), 1)
		suite.Equal("Great wrap", got.Reviews()[0].Comment())
	})

	suite.Run("same order again is a conflict and keeps the rating", func() {
		again, reviewErr := meal.NewReview(kernel.NewUUID(), orderID, 1, "", pgtest.Now())
		suite.Require().NoError(reviewErr)

		suite.Require().ErrorIs(suite.repository.AddReview(ctx, m.ID(), again), errs.ErrConflict)

		got, getErr := suite.repository.Get(ctx, m.ID())
		suite.Require().NoError(getErr)
		suite.Equal(4, got.Rating().Sum())
		suite.Equal(1, got.Rating().Count())
	})

	suite.Run("missing meal", func() {
		suite.Require().ErrorIs(suite.repository.AddReview(ctx, kernel.NewUUID(), review), errs.ErrObjectNotFound)
	})
}

func (suite *MealRepositoryIntegrationTestSuite) TestAddReview_ConcurrentReviewsAreNotLost() {
	ctx := context.Background()
	m := suite.addMeal("Chicken Wrap", 9.99)
	const reviewers = 20

	var wg sync.WaitGroup
	failures := make(chan error, reviewers)
	for i := range reviewers {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			review, err := meal.NewReview(kernel.NewUUID(), kernel.NewUUID(), score, "", pgtest.Now())
			if err == nil {
				err = suite.repository.AddReview(ctx, m.ID(), review)
			}
			if err != nil {
				failures <- err
			}
		}(i%5 + 1)
	}
	wg.Wait()
	close(failures)

	for err := range failures {
		suite.Require().NoError(err)
	}
	got, err := suite.repository.Get(ctx, m.ID())
	suite.Require().NoError(err)
	suite.Equal(reviewers, got.Rating().Count())
	suite.Equal(60, got.Rating().Sum())
	suite.InDelta(3.0, got.Rating().Average(), 0.0001)
	suite.Len(got.Reviews(), reviewers)
}

func TestMealRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(MealRepositoryIntegrationTestSuite))
}
