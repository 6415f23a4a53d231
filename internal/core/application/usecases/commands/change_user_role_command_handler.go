package commands

import (
	"context"
	"time"

	"feedme/internal/core/domain/model/user"
)

type ChangeUserRoleCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewChangeUserRoleCommandHandler(uowFactory UserUoWFactory) ChangeUserRoleCommandHandler {
	return ChangeUserRoleCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ChangeUserRoleCommandHandler) Handle(ctx context.Context, cmd ChangeUserRoleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateUser(ctx, h.uowFactory, cmd.Actor(), "change role", cmd.UserID(), func(u *user.User) error {
		return u.ChangeRole(cmd.Role(), cmd.Actor().ID, time.Now())
	})
}
