package commands

import (
	"errors"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/guard"
)

var (
	ErrSetUserBlockedCommandIsNotConstructed = errors.New(
		"SetUserBlockedCommand must be created via NewSetUserBlockedCommand constructor",
	)
)

type SetUserBlockedCommand struct {
	actor   user.Actor
	userID  kernel.UUID
	blocked bool

	guard guard.ConstructorGuard
}

func NewSetUserBlockedCommand(actor user.Actor, userID kernel.UUID, blocked bool) (SetUserBlockedCommand, error) {
	if err := errors.Join(actor.Validate(), userID.Validate()); err != nil {
		return SetUserBlockedCommand{}, err
	}

	return SetUserBlockedCommand{
		actor:   actor,
		userID:  userID,
		blocked: blocked,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetUserBlockedCommand) Validate() error {
	return c.guard.Validate(ErrSetUserBlockedCommandIsNotConstructed)
}

func (c SetUserBlockedCommand) Actor() user.Actor {
	return c.actor
}

func (c SetUserBlockedCommand) UserID() kernel.UUID {
	return c.userID
}

func (c SetUserBlockedCommand) Blocked() bool {
	return c.blocked
}
