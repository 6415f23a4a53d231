package commands

import (
	"context"
	"errors"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/core/ports"
	"feedme/internal/pkg/errs"
)

// SeedAdminCommandHandler creates the bootstrap admin unless an account with
// that email already exists. It reports whether an account was created.
type SeedAdminCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

func NewSeedAdminCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) SeedAdminCommandHandler {
	return SeedAdminCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

func (h *SeedAdminCommandHandler) Handle(ctx context.Context, cmd SeedAdminCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	err := createUser(ctx, h.uowFactory, h.hasher, kernel.NewUUID(), cmd.Profile(), cmd.Password(), user.RoleAdmin)
	if errors.Is(err, errs.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
