package http

import (
	"net/http"

	"feedme/internal/core/application/usecases/commands"
	"feedme/internal/core/application/usecases/queries"
	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

// Register handles POST /api/v1/auth/register. Without a role the account is a customer.
func (s *Server) Register(c echo.Context) error {
	var body registerRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}

	role := user.RoleCustomer
	if body.Role != "" {
		parsed, err := user.ParseRole(body.Role)
		if err != nil {
			return err
		}
		role = parsed
	}

	userID := kernel.NewUUID()
	cmd, err := commands.NewRegisterUserCommand(userID, user.Profile{
		Name:    body.Name,
		Email:   string(body.Email),
		Phone:   body.Phone,
		Address: body.Address,
	}, body.Password, role)
	if err != nil {
		return err
	}
	if err = s.handlers.RegisterUser.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	actor, err := user.NewActor(userID, role)
	if err != nil {
		return err
	}
	u, err := s.getUser(c, actor, userID)
	if err != nil {
		return err
	}
	return s.respondWithSession(c, http.StatusCreated, u)
}

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(c echo.Context) error {
	var body loginRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}

	query, err := queries.NewAuthenticateUserQuery(body.Email, body.Password)
	if err != nil {
		return err
	}
	u, err := s.handlers.Authenticate.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return s.respondWithSession(c, http.StatusOK, u)
}

// Me handles GET /api/v1/auth/me.
func (s *Server) Me(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	u, err := s.getUser(c, actor, actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, renderUser(u))
}

// ListUsers handles GET /api/v1/users.
func (s *Server) ListUsers(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListUsersQuery(actor, queryParams(c))
	if err != nil {
		return err
	}
	result, err := s.handlers.ListUsers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, renderList(result, renderUser))
}

// SetUserBlocked handles PATCH /api/v1/users/{id}/block.
func (s *Server) SetUserBlocked(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}
	var body blockRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewSetUserBlockedCommand(actor, id, body.IsBlocked)
	if err != nil {
		return err
	}
	if err = s.handlers.SetUserBlocked.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithUser(c, actor, id)
}

// ChangeUserRole handles PATCH /api/v1/users/{id}/role.
func (s *Server) ChangeUserRole(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}
	var body roleRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}
	role, err := user.ParseRole(body.Role)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeUserRoleCommand(actor, id, role)
	if err != nil {
		return err
	}
	if err = s.handlers.ChangeUserRole.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithUser(c, actor, id)
}

// DeleteUser handles DELETE /api/v1/users/{id}.
func (s *Server) DeleteUser(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteUserCommand(actor, id)
	if err != nil {
		return err
	}
	if err = s.handlers.DeleteUser.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) getUser(c echo.Context, actor user.Actor, id kernel.UUID) (*user.User, error) {
	query, err := queries.NewGetUserQuery(actor, id)
	if err != nil {
		return nil, err
	}
	return s.handlers.GetUser.Handle(c.Request().Context(), query)
}

func (s *Server) respondWithUser(c echo.Context, actor user.Actor, id kernel.UUID) error {
	u, err := s.getUser(c, actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, renderUser(u))
}

func (s *Server) respondWithSession(c echo.Context, status int, u *user.User) error {
	token, err := s.tokens.Issue(u)
	if err != nil {
		return err
	}
	return c.JSON(status, sessionResponse{Token: token, User: renderUser(u)})
}

func actorAndID(c echo.Context) (user.Actor, kernel.UUID, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return user.Actor{}, kernel.UUID{}, err
	}
	id, err := pathID(c)
	if err != nil {
		return user.Actor{}, kernel.UUID{}, err
	}
	return actor, id, nil
}
