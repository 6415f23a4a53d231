// Package bcrypt implements ports.PasswordHasher with golang.org/x/crypto/bcrypt.
package bcrypt

import (
	"errors"
	"fmt"

	"feedme/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordMismatch = errs.NewAuthenticationError("password does not match")

type Hasher struct {
	cost int
}

// NewHasher uses bcrypt.DefaultCost when cost is outside bcrypt's accepted range.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (h *Hasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return errs.NewAuthenticationErrorWithCause("stored password hash is unusable", err)
	}
}
