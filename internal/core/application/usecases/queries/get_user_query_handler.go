package queries

import (
	"context"
	"errors"

	"feedme/internal/core/domain/model/user"
	"feedme/internal/core/ports"
	"feedme/internal/pkg/errs"
)

// GetUserQueryHandler returns a user to themselves or to an admin.
type GetUserQueryHandler struct {
	repo ports.UserRepository
}

func NewGetUserQueryHandler(repo ports.UserRepository) GetUserQueryHandler {
	return GetUserQueryHandler{repo: repo}
}

func (h GetUserQueryHandler) Handle(ctx context.Context, query GetUserQuery) (*user.User, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	if !actor.IsAdmin() && !actor.Is(query.UserID()) {
		return nil, errs.NewAuthorizationErrorWithCause("view user", errors.New("not your account"))
	}

	return h.repo.Get(ctx, query.UserID())
}
