package queries

import (
	"context"
	"errors"

	"feedme/internal/core/domain/model/user"
	"feedme/internal/core/ports"
	"feedme/internal/pkg/errs"
)

// ErrInvalidCredentials hides whether the email or the password was wrong.
var ErrInvalidCredentials = errs.NewAuthenticationError("invalid credentials")

// AuthenticateUserQueryHandler resolves an email and password to an active user.
type AuthenticateUserQueryHandler struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
}

func NewAuthenticateUserQueryHandler(repo ports.UserRepository, hasher ports.PasswordHasher) AuthenticateUserQueryHandler {
	return AuthenticateUserQueryHandler{repo: repo, hasher: hasher}
}

func (h AuthenticateUserQueryHandler) Handle(ctx context.Context, query AuthenticateUserQuery) (*user.User, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	u, err := h.repo.GetByEmail(ctx, query.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err = h.hasher.Compare(u.PasswordHash(), query.Password()); err != nil {
		if errors.Is(err, errs.ErrUnauthenticated) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err = u.EnsureActive(); err != nil {
		return nil, err
	}
	return u, nil
}
