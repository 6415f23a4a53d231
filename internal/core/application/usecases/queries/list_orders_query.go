package queries

import (
	"errors"

	"feedme/internal/core/domain/model/user"
	"feedme/internal/core/ports"
	"feedme/internal/pkg/guard"
	"feedme/internal/pkg/querybuilder"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery lists the orders visible to actor: customers see their own,
// providers those containing one of their meals, admins all of them.
type ListOrdersQuery struct {
	actor user.Actor
	query querybuilder.Query

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(actor user.Actor, params querybuilder.Params) (ListOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{
		actor: actor,
		query: querybuilder.Standard(params, ports.OrderSearchFields...),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() user.Actor {
	return q.actor
}

func (q ListOrdersQuery) Query() querybuilder.Query {
	return q.query
}

// Scope derives the storage scope from the actor's role.
func (q ListOrdersQuery) Scope() ports.OrderScope {
	id := q.actor.ID
	switch q.actor.Role {
	case user.RoleCustomer:
		return ports.OrderScope{CustomerID: &id}
	case user.RoleProvider:
		return ports.OrderScope{ProviderID: &id}
	default:
		return ports.OrderScope{}
	}
}
