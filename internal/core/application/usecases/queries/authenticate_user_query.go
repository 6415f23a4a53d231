package queries

import (
	"errors"

	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/guard"
)

var (
	ErrAuthenticateUserQueryIsNotConstructed = errors.New(
		"AuthenticateUserQuery must be created via NewAuthenticateUserQuery constructor",
	)
)

// AuthenticateUserQuery checks a login attempt.
type AuthenticateUserQuery struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewAuthenticateUserQuery(email, password string) (AuthenticateUserQuery, error) {
	email = user.NormalizeEmail(email)

	var emailErr, passwordErr error
	if email == "" {
		emailErr = errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}
	if err := errors.Join(emailErr, passwordErr); err != nil {
		return AuthenticateUserQuery{}, err
	}

	return AuthenticateUserQuery{email: email, password: password, guard: guard.NewConstructorGuard()}, nil
}

func (q AuthenticateUserQuery) Validate() error {
	return q.guard.Validate(ErrAuthenticateUserQueryIsNotConstructed)
}

func (q AuthenticateUserQuery) Email() string {
	return q.email
}

func (q AuthenticateUserQuery) Password() string {
	return q.password
}
