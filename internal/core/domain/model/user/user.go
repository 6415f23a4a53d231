package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/guard"
)

var (
	// ErrUserIsNotConstructed is returned when a User was not created through
	// NewUser or RestoreUser.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser constructor")
)

// Profile holds the contact details of a user.
type Profile struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// User is an account. Emails are unique and stored lower-cased.
type User struct {
	id           kernel.UUID
	profile      Profile
	passwordHash string
	role         Role
	blocked      bool
	createdAt    time.Time
	updatedAt    time.Time

	guard guard.ConstructorGuard
}

// Snapshot carries persisted state into RestoreUser.
type Snapshot struct {
	ID           kernel.UUID
	Profile      Profile
	PasswordHash string
	Role         Role
	Blocked      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates an unblocked account. The password must already be hashed.
func NewUser(id kernel.UUID, profile Profile, passwordHash string, role Role, at time.Time) (*User, error) {
	u := &User{
		createdAt: at.UTC(),
		updatedAt: at.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setProfile(profile),
		u.setPasswordHash(passwordHash),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

func RestoreUser(s Snapshot) (*User, error) {
	u := &User{
		blocked:   s.Blocked,
		createdAt: s.CreatedAt.UTC(),
		updatedAt: s.UpdatedAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(s.ID),
		u.setProfile(s.Profile),
		u.setPasswordHash(s.PasswordHash),
		u.setRole(s.Role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// NormalizeEmail trims and lower-cases an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Name() string {
	return u.profile.Name
}

func (u *User) Email() string {
	return u.profile.Email
}

func (u *User) Phone() string {
	return u.profile.Phone
}

func (u *User) Address() string {
	return u.profile.Address
}

func (u *User) Profile() Profile {
	return u.profile
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) IsBlocked() bool {
	return u.blocked
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// EnsureActive rejects blocked accounts.
func (u *User) EnsureActive() error {
	if u.blocked {
		return errs.NewAuthorizationErrorWithCause("use account", errors.New("account is blocked"))
	}
	return nil
}

// SetBlocked blocks or unblocks the account. An admin cannot block themselves.
func (u *User) SetBlocked(blocked bool, actorID kernel.UUID, at time.Time) error {
	if blocked && u.id.IsEqual(actorID) {
		return errs.NewAuthorizationErrorWithCause("block user", errors.New("admins cannot block themselves"))
	}
	u.blocked = blocked
	u.touch(at)
	return nil
}

// ChangeRole sets a new role. An admin cannot demote themselves.
func (u *User) ChangeRole(role Role, actorID kernel.UUID, at time.Time) error {
	if err := role.Validate(); err != nil {
		return err
	}
	if u.id.IsEqual(actorID) && u.role == RoleAdmin && role != RoleAdmin {
		return errs.NewAuthorizationErrorWithCause("change role", errors.New("admins cannot demote themselves"))
	}
	u.role = role
	u.touch(at)
	return nil
}

// EnsureDeletableBy rejects an admin deleting their own account.
func (u *User) EnsureDeletableBy(actorID kernel.UUID) error {
	if u.id.IsEqual(actorID) {
		return errs.NewAuthorizationErrorWithCause("delete user", errors.New("admins cannot delete themselves"))
	}
	return nil
}

func (u *User) touch(at time.Time) {
	if at.After(u.updatedAt) {
		u.updatedAt = at.UTC()
	}
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setProfile(p Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = NormalizeEmail(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Address = strings.TrimSpace(p.Address)

	var nameErr error
	if p.Name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	var emailErr error
	if p.Email == "" {
		emailErr = errs.NewValueIsRequiredError("email")
	} else if addr, err := mail.ParseAddress(p.Email); err != nil || addr.Address != p.Email {
		emailErr = errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an email address", p.Email))
	}

	if err := errors.Join(nameErr, emailErr); err != nil {
		return err
	}
	u.profile = p
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password")
	}
	u.passwordHash = hash
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
