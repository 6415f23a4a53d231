package commands

import (
	"context"
	"time"

	"feedme/internal/core/domain/model/user"
)

// SetUserBlockedCommandHandler blocks or unblocks an account. Blocked users
// keep their data but can no longer sign in or use an issued token.
type SetUserBlockedCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewSetUserBlockedCommandHandler(uowFactory UserUoWFactory) SetUserBlockedCommandHandler {
	return SetUserBlockedCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SetUserBlockedCommandHandler) Handle(ctx context.Context, cmd SetUserBlockedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateUser(ctx, h.uowFactory, cmd.Actor(), "block user", cmd.UserID(), func(u *user.User) error {
		return u.SetBlocked(cmd.Blocked(), cmd.Actor().ID, time.Now())
	})
}
