package http

import (
	"net/http"

	"feedme/internal/core/application/usecases/commands"
	"feedme/internal/core/application/usecases/queries"
	"feedme/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListMeals handles GET /api/v1/meals.
func (s *Server) ListMeals(c echo.Context) error {
	result, err := s.handlers.ListMeals.Handle(c.Request().Context(), queries.NewListMealsQuery(queryParams(c)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, renderList(result, renderMeal))
}

// GetMeal handles GET /api/v1/meals/{id}.
func (s *Server) GetMeal(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return s.respondWithMeal(c, http.StatusOK, id)
}

// CreateMeal handles POST /api/v1/meals.
func (s *Server) CreateMeal(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var body createMealRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}

	mealID := kernel.NewUUID()
	cmd, err := commands.NewCreateMealCommand(actor, mealID, body.toDomain())
	if err != nil {
		return err
	}
	if err = s.handlers.CreateMeal.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithMeal(c, http.StatusCreated, mealID)
}

// UpdateMeal handles PATCH /api/v1/meals/{id}.
func (s *Server) UpdateMeal(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}
	var body updateMealRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateMealCommand(actor, id, body.toDomain())
	if err != nil {
		return err
	}
	if err = s.handlers.UpdateMeal.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithMeal(c, http.StatusOK, id)
}

// DeleteMeal handles DELETE /api/v1/meals/{id}.
func (s *Server) DeleteMeal(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteMealCommand(actor, id)
	if err != nil {
		return err
	}
	if err = s.handlers.DeleteMeal.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SubmitRating handles POST /api/v1/ratings and answers with the rated meal.
func (s *Server) SubmitRating(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var body ratingRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}

	mealID, err := kernel.UUIDFromBytes(body.MealID[:])
	if err != nil {
		return err
	}
	orderID, err := kernel.UUIDFromBytes(body.OrderID[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewSubmitRatingCommand(actor, mealID, orderID, body.Rating, body.Comment)
	if err != nil {
		return err
	}
	if err = s.handlers.SubmitRating.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithMeal(c, http.StatusCreated, mealID)
}

func (s *Server) respondWithMeal(c echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetMealQuery(id)
	if err != nil {
		return err
	}
	m, err := s.handlers.GetMeal.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(status, renderMeal(m))
}
