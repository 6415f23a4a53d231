package http

import (
	"net/http"

	"feedme/internal/core/application/usecases/commands"
	"feedme/internal/core/application/usecases/queries"
	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var body createOrderRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}
	lines, err := body.cartLines()
	if err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(actor, orderID, lines, body.DeliveryAddress)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(c, http.StatusCreated, actor, orderID)
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(actor, queryParams(c))
	if err != nil {
		return err
	}
	result, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, renderList(result, renderOrder))
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}
	return s.respondWithOrder(c, http.StatusOK, actor, id)
}

// ConfirmPayment handles POST /api/v1/orders/{id}/payment.
func (s *Server) ConfirmPayment(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}
	var body paymentRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewConfirmPaymentCommand(actor, id, body.PaymentReference)
	if err != nil {
		return err
	}
	if err = s.handlers.ConfirmPayment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(c, http.StatusOK, actor, id)
}

// CancelOrder handles POST /api/v1/orders/{id}/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(actor, id)
	if err != nil {
		return err
	}
	if err = s.handlers.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(c, http.StatusOK, actor, id)
}

// AppendTrackingUpdate handles POST /api/v1/orders/{id}/tracking-updates.
func (s *Server) AppendTrackingUpdate(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}
	var body trackingUpdateRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}
	stage, err := order.ParseStage(body.Stage)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAppendTrackingUpdateCommand(actor, id, stage, body.Message)
	if err != nil {
		return err
	}
	if err = s.handlers.AppendTrackingUpdate.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(c, http.StatusOK, actor, id)
}

// AssignTrackingNumber handles PUT /api/v1/orders/{id}/tracking-number.
func (s *Server) AssignTrackingNumber(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}
	var body trackingNumberRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewAssignTrackingNumberCommand(actor, id, body.TrackingNumber)
	if err != nil {
		return err
	}
	if err = s.handlers.AssignTrackingNumber.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(c, http.StatusOK, actor, id)
}

// SetEstimatedDeliveryDate handles PUT /api/v1/orders/{id}/estimated-delivery.
func (s *Server) SetEstimatedDeliveryDate(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}
	var body estimatedDeliveryRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewSetEstimatedDeliveryDateCommand(actor, id, body.EstimatedDeliveryDate)
	if err != nil {
		return err
	}
	if err = s.handlers.SetEstimatedDeliveryDate.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(c, http.StatusOK, actor, id)
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) DeleteOrder(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(actor, id)
	if err != nil {
		return err
	}
	if err = s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) respondWithOrder(c echo.Context, status int, actor user.Actor, id kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(actor, id)
	if err != nil {
		return err
	}
	o, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(status, renderOrder(o))
}
