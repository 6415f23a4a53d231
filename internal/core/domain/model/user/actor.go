package user

import (
	"errors"

	"feedme/internal/core/domain/model/kernel"
)

// Actor is the authenticated user on whose behalf an operation runs.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}

func (a Actor) Validate() error {
	return errors.Join(a.ID.Validate(), a.Role.Validate())
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsProvider() bool {
	return a.Role == RoleProvider
}

func (a Actor) IsCustomer() bool {
	return a.Role == RoleCustomer
}

// Is reports whether the actor is the user id.
func (a Actor) Is(id kernel.UUID) bool {
	return a.ID.IsEqual(id)
}
