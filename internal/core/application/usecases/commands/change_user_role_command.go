package commands

import (
	"errors"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/guard"
)

var (
	ErrChangeUserRoleCommandIsNotConstructed = errors.New(
		"ChangeUserRoleCommand must be created via NewChangeUserRoleCommand constructor",
	)
)

type ChangeUserRoleCommand struct {
	actor  user.Actor
	userID kernel.UUID
	role   user.Role

	guard guard.ConstructorGuard
}

func NewChangeUserRoleCommand(actor user.Actor, userID kernel.UUID, role user.Role) (ChangeUserRoleCommand, error) {
	if err := errors.Join(actor.Validate(), userID.Validate(), role.Validate()); err != nil {
		return ChangeUserRoleCommand{}, err
	}

	return ChangeUserRoleCommand{
		actor:  actor,
		userID: userID,
		role:   role,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeUserRoleCommand) Validate() error {
	return c.guard.Validate(ErrChangeUserRoleCommandIsNotConstructed)
}

func (c ChangeUserRoleCommand) Actor() user.Actor {
	return c.actor
}

func (c ChangeUserRoleCommand) UserID() kernel.UUID {
	return c.userID
}

func (c ChangeUserRoleCommand) Role() user.Role {
	return c.role
}
