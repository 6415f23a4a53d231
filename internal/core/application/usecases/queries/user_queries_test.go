package queries_test

import (
	"errors"
	"testing"
	"time"

	"feedme/internal/core/application/usecases/queries"
	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/querybuilder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetUserQueryHandler_Handle(t *testing.T) {
	t.Run("self", func(t *testing.T) {
		ctx := t.Context()
		u := newTestUser(t, user.RoleCustomer)
		repo := new(MockUserRepository)
		repo.On("Get", ctx, u.ID()).Return(u, nil).Once()

		query, err := queries.NewGetUserQuery(actorOf(t, u.ID(), user.RoleCustomer), u.ID())
		require.NoError(t, err)

		got, err := queries.NewGetUserQueryHandler(repo).Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, "grace@example.com", got.Email())
	})

	t.Run("someone else", func(t *testing.T) {
		repo := new(MockUserRepository)
		query, err := queries.NewGetUserQuery(actorOf(t, kernel.NewUUID(), user.RoleProvider), kernel.NewUUID())
		require.NoError(t, err)

		_, err = queries.NewGetUserQueryHandler(repo).Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrForbidden)
		repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestListUsersQueryHandler_Handle(t *testing.T) {
	t.Run("admin", func(t *testing.T) {
		ctx := t.Context()
		users := []*user.User{newTestUser(t, user.RoleProvider)}
		repo := new(MockUserRepository)
		repo.On("List", ctx, mock.MatchedBy(func(q querybuilder.Query) bool {
			return q.Filters["role"] == "provider" && q.Search == nil
		})).Return(users, int64(1), nil).Once()

		query, err := queries.NewListUsersQuery(actorOf(t, kernel.NewUUID(), user.RoleAdmin), querybuilder.Params{
			"role":       "provider",
			"searchTerm": "   ",
		})
		require.NoError(t, err)

		result, err := queries.NewListUsersQueryHandler(repo).Handle(ctx, query)

		require.NoError(t, err)
		assert.Len(t, result.Items, 1)
		repo.AssertExpectations(t)
	})

	t.Run("non-admin", func(t *testing.T) {
		repo := new(MockUserRepository)
		query, err := queries.NewListUsersQuery(actorOf(t, kernel.NewUUID(), user.RoleCustomer), nil)
		require.NoError(t, err)

		_, err = queries.NewListUsersQueryHandler(repo).Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestAuthenticateUserQueryHandler_Handle(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		u := newTestUser(t, user.RoleCustomer)
		repo := new(MockUserRepository)
		hasher := new(MockPasswordHasher)
		repo.On("GetByEmail", ctx, "grace@example.com").Return(u, nil).Once()
		hasher.On("Compare", "$2a$10$stored", "hunter2hunter2").Return(nil).Once()

		query, err := queries.NewAuthenticateUserQuery(" Grace@Example.com", "hunter2hunter2")
		require.NoError(t, err)

		// Act
		got, err := queries.NewAuthenticateUserQueryHandler(repo, hasher).Handle(ctx, query)

		// Assert
		require.NoError(t, err)
		assert.Same(t, u, got)
		hasher.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		ctx := t.Context()
		repo := new(MockUserRepository)
		hasher := new(MockPasswordHasher)
		repo.On("GetByEmail", ctx, "nobody@example.com").
			Return(nil, errs.NewObjectNotFoundError("email", "nobody@example.com")).Once()

		query, err := queries.NewAuthenticateUserQuery("nobody@example.com", "whatever1")
		require.NoError(t, err)

		_, err = queries.NewAuthenticateUserQueryHandler(repo, hasher).Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrUnauthenticated)
		assert.EqualError(t, err, "authentication failed: invalid credentials")
	})

	t.Run("wrong password", func(t *testing.T) {
		ctx := t.Context()
		repo := new(MockUserRepository)
		hasher := new(MockPasswordHasher)
		repo.On("GetByEmail", ctx, mock.Anything).Return(newTestUser(t, user.RoleCustomer), nil).Once()
		hasher.On("Compare", mock.Anything, mock.Anything).
			Return(errs.NewAuthenticationError("password mismatch")).Once()

		query, err := queries.NewAuthenticateUserQuery("grace@example.com", "wrong-password")
		require.NoError(t, err)

		_, err = queries.NewAuthenticateUserQueryHandler(repo, hasher).Handle(ctx, query)

		require.ErrorIs(t, err, queries.ErrInvalidCredentials)
	})

	t.Run("blocked account", func(t *testing.T) {
		ctx := t.Context()
		u := newTestUser(t, user.RoleCustomer)
		require.NoError(t, u.SetBlocked(true, kernel.NewUUID(), time.Now()))
		repo := new(MockUserRepository)
		hasher := new(MockPasswordHasher)
		repo.On("GetByEmail", ctx, mock.Anything).Return(u, nil).Once()
		hasher.On("Compare", mock.Anything, mock.Anything).Return(nil).Once()

		query, err := queries.NewAuthenticateUserQuery("grace@example.com", "hunter2hunter2")
		require.NoError(t, err)

		_, err = queries.NewAuthenticateUserQueryHandler(repo, hasher).Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("hasher failure is not masked", func(t *testing.T) {
		ctx := t.Context()
		repo := new(MockUserRepository)
		hasher := new(MockPasswordHasher)
		repo.On("GetByEmail", ctx, mock.Anything).Return(newTestUser(t, user.RoleCustomer), nil).Once()
		hasher.On("Compare", mock.Anything, mock.Anything).Return(errors.New("malformed hash")).Once()

		query, err := queries.NewAuthenticateUserQuery("grace@example.com", "hunter2hunter2")
		require.NoError(t, err)

		_, err = queries.NewAuthenticateUserQueryHandler(repo, hasher).Handle(ctx, query)

		require.EqualError(t, err, "malformed hash")
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := queries.NewAuthenticateUserQuery(" ", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
