package queries

import (
	"errors"

	"feedme/internal/core/domain/model/user"
	"feedme/internal/core/ports"
	"feedme/internal/pkg/guard"
	"feedme/internal/pkg/querybuilder"
)

var (
	ErrListUsersQueryIsNotConstructed = errors.New(
		"ListUsersQuery must be created via NewListUsersQuery constructor",
	)
)

type ListUsersQuery struct {
	actor user.Actor
	query querybuilder.Query

	guard guard.ConstructorGuard
}

func NewListUsersQuery(actor user.Actor, params querybuilder.Params) (ListUsersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListUsersQuery{}, err
	}
	return ListUsersQuery{
		actor: actor,
		query: querybuilder.Standard(params, ports.UserSearchFields...),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

func (q ListUsersQuery) Actor() user.Actor {
	return q.actor
}

func (q ListUsersQuery) Query() querybuilder.Query {
	return q.query
}
