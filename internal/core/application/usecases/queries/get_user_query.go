package queries

import (
	"errors"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/guard"
)

var (
	ErrGetUserQueryIsNotConstructed = errors.New(
		"GetUserQuery must be created via NewGetUserQuery constructor",
	)
)

type GetUserQuery struct {
	actor  user.Actor
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetUserQuery(actor user.Actor, userID kernel.UUID) (GetUserQuery, error) {
	if err := errors.Join(actor.Validate(), userID.Validate()); err != nil {
		return GetUserQuery{}, err
	}
	return GetUserQuery{actor: actor, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserQuery) Validate() error {
	return q.guard.Validate(ErrGetUserQueryIsNotConstructed)
}

func (q GetUserQuery) Actor() user.Actor {
	return q.actor
}

func (q GetUserQuery) UserID() kernel.UUID {
	return q.userID
}
