package commands

import (
	"errors"

	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/guard"
)

var (
	ErrSeedAdminCommandIsNotConstructed = errors.New(
		"SeedAdminCommand must be created via NewSeedAdminCommand constructor",
	)
)

// SeedAdminCommand carries the configured bootstrap admin account.
type SeedAdminCommand struct {
	profile  user.Profile
	password string

	guard guard.ConstructorGuard
}

func NewSeedAdminCommand(profile user.Profile, password string) (SeedAdminCommand, error) {
	if err := validatePassword(password); err != nil {
		return SeedAdminCommand{}, err
	}

	profile.Email = user.NormalizeEmail(profile.Email)

	return SeedAdminCommand{
		profile:  profile,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SeedAdminCommand) Validate() error {
	return c.guard.Validate(ErrSeedAdminCommandIsNotConstructed)
}

func (c SeedAdminCommand) Profile() user.Profile {
	return c.profile
}

func (c SeedAdminCommand) Password() string {
	return c.password
}
