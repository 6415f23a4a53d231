package commands

import (
	"context"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
)

// mutateUser runs an admin-only change against a stored user in one transaction.
func mutateUser(
	ctx context.Context,
	uowFactory UserUoWFactory,
	actor user.Actor,
	action string,
	userID kernel.UUID,
	change func(*user.User) error,
) error {
	if err := requireRole(actor, action, user.RoleAdmin); err != nil {
		return err
	}

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	u, err := userRepo.Get(ctx, userID)
	if err != nil {
		return err
	}

	if err = change(u); err != nil {
		return err
	}

	if err = userRepo.Update(ctx, u); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
