package commands

import (
	"context"
	"errors"
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/core/ports"
	"feedme/internal/pkg/errs"
)

type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

func NewRegisterUserCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

// Handle hashes the password and stores the account. A taken email is a ConflictError.
func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return createUser(ctx, h.uowFactory, h.hasher, cmd.UserID(), cmd.Profile(), cmd.Password(), cmd.Role())
}

// createUser is shared by registration and admin seeding.
func createUser(
	ctx context.Context,
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	id kernel.UUID,
	profile user.Profile,
	password string,
	role user.Role,
) error {
	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	u, err := user.NewUser(id, profile, hash, role, time.Now())
	if err != nil {
		return err
	}

	uow := uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	if err = ensureEmailFree(ctx, userRepo, u.Email()); err != nil {
		return err
	}

	if err = userRepo.Add(ctx, u); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func ensureEmailFree(ctx context.Context, repo ports.UserRepository, email string) error {
	_, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return errs.NewConflictError("email")
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil
	default:
		return err
	}
}
