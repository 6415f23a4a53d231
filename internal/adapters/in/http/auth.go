package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

var (
	ErrMissingToken = errs.NewAuthenticationError("missing bearer token")
	ErrInvalidToken = errs.NewAuthenticationError("invalid or expired token")
)

// Claims are carried by every access token. The subject is the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("jwt secret")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("jwt ttl", ttl, "1ns", "unbounded")
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (i *TokenIssuer) Issue(u *user.User) (string, error) {
	now := i.now()
	claims := Claims{
		Role: u.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry of raw and returns its claims.
func (i *TokenIssuer) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}

type userFinder interface {
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}

// Authenticator resolves the bearer token of a request to an Actor. The user
// is reloaded on every request so blocking and role changes apply immediately.
type Authenticator struct {
	tokens *TokenIssuer
	users  userFinder
}

func NewAuthenticator(tokens *TokenIssuer, users userFinder) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

func (a *Authenticator) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, err := bearerToken(c.Request())
		if err != nil {
			return err
		}

		claims, err := a.tokens.Parse(raw)
		if err != nil {
			return err
		}

		id, err := kernel.UUIDFromString(claims.Subject)
		if err != nil {
			return ErrInvalidToken
		}

		u, err := a.users.Get(c.Request().Context(), id)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewAuthenticationErrorWithCause("account no longer exists", err)
		}
		if err != nil {
			return err
		}
		if err = u.EnsureActive(); err != nil {
			return err
		}

		actor, err := user.NewActor(u.ID(), u.Role())
		if err != nil {
			return err
		}
		c.Set(actorContextKey, actor)
		return next(c)
	}
}

// RequireRole lets the request through only for actors with one of roles.
// It must run after Authenticator.Middleware.
func RequireRole(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := actorFrom(c)
			if err != nil {
				return err
			}
			if !slices.Contains(roles, actor.Role) {
				return errs.NewAuthorizationErrorWithCause(
					c.Request().Method+" "+c.Path(),
					fmt.Errorf("role %s is not allowed", actor.Role),
				)
			}
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (user.Actor, error) {
	actor, ok := c.Get(actorContextKey).(user.Actor)
	if !ok {
		return user.Actor{}, ErrMissingToken
	}
	return actor, nil
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", ErrMissingToken
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}
