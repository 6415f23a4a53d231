package queries

import (
	"context"
	"errors"

	"feedme/internal/core/domain/model/user"
	"feedme/internal/core/ports"
	"feedme/internal/pkg/errs"
)

// ListUsersQueryHandler lists accounts. Admin only.
type ListUsersQueryHandler struct {
	repo ports.UserRepository
}

func NewListUsersQueryHandler(repo ports.UserRepository) ListUsersQueryHandler {
	return ListUsersQueryHandler{repo: repo}
}

func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) (ListResult[*user.User], error) {
	if err := query.Validate(); err != nil {
		return ListResult[*user.User]{}, err
	}
	if !query.Actor().IsAdmin() {
		return ListResult[*user.User]{}, errs.NewAuthorizationErrorWithCause("list users", errors.New("admin only"))
	}

	users, total, err := h.repo.List(ctx, query.Query())
	if err != nil {
		return ListResult[*user.User]{}, err
	}

	return newListResult(users, total, query.Query()), nil
}
