package user

import (
	"fmt"
	"strings"

	"feedme/internal/pkg/errs"
)

// Role is stored and rendered by its name.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleProvider Role = "provider"
	RoleCustomer Role = "customer"
)

// ParseRole accepts a role name in any letter case.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := role.Validate(); err != nil {
		return "", err
	}
	return role, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleProvider, RoleCustomer:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

// CanSelfRegister reports whether an account with the role may be created by sign-up.
func (r Role) CanSelfRegister() bool {
	return r == RoleCustomer || r == RoleProvider
}
