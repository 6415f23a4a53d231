package commands

import (
	"errors"
	"unicode/utf8"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/guard"
)

var (
	ErrRegisterUserCommandIsNotConstructed = errors.New(
		"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
	)
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// RegisterUserCommand creates a customer or provider account.
type RegisterUserCommand struct {
	userID   kernel.UUID
	profile  user.Profile
	password string
	role     user.Role

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(
	userID kernel.UUID,
	profile user.Profile,
	password string,
	role user.Role,
) (RegisterUserCommand, error) {
	if err := errors.Join(
		userID.Validate(),
		validatePassword(password),
		validateSelfRegisterRole(role),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	profile.Email = user.NormalizeEmail(profile.Email)

	return RegisterUserCommand{
		userID:   userID,
		profile:  profile,
		password: password,
		role:     role,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() kernel.UUID {
	return c.userID
}

func (c RegisterUserCommand) Profile() user.Profile {
	return c.profile
}

func (c RegisterUserCommand) Password() string {
	return c.password
}

func (c RegisterUserCommand) Role() user.Role {
	return c.role
}

func validatePassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}
	if n := utf8.RuneCountInString(password); n < MinPasswordLength || len(password) > MaxPasswordLength {
		return errs.NewValueIsOutOfRangeError("password length", n, MinPasswordLength, MaxPasswordLength)
	}
	return nil
}

func validateSelfRegisterRole(role user.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	if !role.CanSelfRegister() {
		return errs.NewValueIsInvalidErrorWithCause("role", errors.New("only customer and provider accounts can register"))
	}
	return nil
}
