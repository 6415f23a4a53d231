package commands

import (
	"errors"

	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/errs"
)

var (
	errNotOwner    = errors.New("not the owner")
	errWrongRole   = errors.New("role not allowed")
	errNotProvider = errors.New("no line item belongs to the provider")
)

func requireRole(actor user.Actor, action string, roles ...user.Role) error {
	for _, role := range roles {
		if actor.Role == role {
			return nil
		}
	}
	return errs.NewAuthorizationErrorWithCause(action, errWrongRole)
}

// ensureMealEditor allows the meal's provider and admins.
func ensureMealEditor(actor user.Actor, m *meal.Meal, action string) error {
	if actor.IsAdmin() || (actor.IsProvider() && m.IsOwnedBy(actor.ID)) {
		return nil
	}
	return errs.NewAuthorizationErrorWithCause(action, errNotOwner)
}

// ensureOrderCustomer allows the customer who placed the order and admins.
func ensureOrderCustomer(actor user.Actor, o *order.Order, action string) error {
	if actor.IsAdmin() || (actor.IsCustomer() && actor.Is(o.CustomerID())) {
		return nil
	}
	return errs.NewAuthorizationErrorWithCause(action, errNotOwner)
}

// ensureOrderFulfiller allows providers of at least one line item and admins.
func ensureOrderFulfiller(actor user.Actor, o *order.Order, action string) error {
	if actor.IsAdmin() || (actor.IsProvider() && o.HasProvider(actor.ID)) {
		return nil
	}
	return errs.NewAuthorizationErrorWithCause(action, errNotProvider)
}
