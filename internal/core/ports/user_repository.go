package ports

import (
	"context"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/querybuilder"
)

// UserSchema declares the user fields list queries may filter and sort on.
var UserSchema = querybuilder.NewSchema(map[string]querybuilder.Kind{
	"name":      querybuilder.KindString,
	"email":     querybuilder.KindString,
	"role":      querybuilder.KindString,
	"isBlocked": querybuilder.KindBool,
	"createdAt": querybuilder.KindTime,
}, "name", "email", "createdAt")

// UserSearchFields are matched by searchTerm.
var UserSearchFields = []string{"name", "email"}

type UserRepository interface {
	// Add persists a new user. A taken email is a ConflictError.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists profile, role and blocked flag.
	Update(ctx context.Context, aggregate *user.User) error

	Delete(ctx context.Context, id kernel.UUID) error

	// Get returns the user, or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail looks up a normalized email, or returns an ObjectNotFoundError.
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	// List runs a list query and returns one page with the total number of matches.
	List(ctx context.Context, query querybuilder.Query) ([]*user.User, int64, error)
}
