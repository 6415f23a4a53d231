package http

import (
	"log/slog"
	"net/http"

	"feedme/internal/core/domain/model/user"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const BasePath = "/api/v1"

// NewEcho returns an echo instance with recovery, CORS, request logging and
// the JSON error envelope installed.
func NewEcho(logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.RequestID != "" {
				attrs = append(attrs, "request_id", v.RequestID)
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelWarn
				attrs = append(attrs, "error", v.Error.Error())
			}
			logger.Log(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	}))
	return e
}

// RegisterRoutes mounts the API under BasePath, plus /health and /swagger/*.
func RegisterRoutes(e *echo.Echo, s *Server, auth *Authenticator, doc *openapi3.T) error {
	validate, err := RequestValidator(doc)
	if err != nil {
		return err
	}
	if err = RegisterSwaggerDoc(doc); err != nil {
		return err
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(BasePath, validate)
	authenticated := auth.Middleware
	admin := RequireRole(user.RoleAdmin)
	provider := RequireRole(user.RoleProvider)
	customer := RequireRole(user.RoleCustomer)
	providerOrAdmin := RequireRole(user.RoleProvider, user.RoleAdmin)
	customerOrAdmin := RequireRole(user.RoleCustomer, user.RoleAdmin)

	api.POST("/auth/register", s.Register)
	api.POST("/auth/login", s.Login)
	api.GET("/auth/me", s.Me, authenticated)

	api.GET("/meals", s.ListMeals)
	api.GET("/meals/:id", s.GetMeal)
	api.POST("/meals", s.CreateMeal, authenticated, provider)
	api.PATCH("/meals/:id", s.UpdateMeal, authenticated, providerOrAdmin)
	api.DELETE("/meals/:id", s.DeleteMeal, authenticated, providerOrAdmin)

	api.POST("/orders", s.CreateOrder, authenticated, customer)
	api.GET("/orders", s.ListOrders, authenticated)
	api.GET("/orders/:id", s.GetOrder, authenticated)
	api.POST("/orders/:id/payment", s.ConfirmPayment, authenticated, customerOrAdmin)
	api.POST("/orders/:id/cancel", s.CancelOrder, authenticated, customerOrAdmin)
	api.POST("/orders/:id/tracking-updates", s.AppendTrackingUpdate, authenticated, providerOrAdmin)
	api.PUT("/orders/:id/tracking-number", s.AssignTrackingNumber, authenticated, providerOrAdmin)
	api.PUT("/orders/:id/estimated-delivery", s.SetEstimatedDeliveryDate, authenticated, providerOrAdmin)
	api.DELETE("/orders/:id", s.DeleteOrder, authenticated, admin)

	api.POST("/ratings", s.SubmitRating, authenticated, customer)

	api.GET("/users", s.ListUsers, authenticated, admin)
	api.PATCH("/users/:id/block", s.SetUserBlocked, authenticated, admin)
	api.PATCH("/users/:id/role", s.ChangeUserRole, authenticated, admin)
	api.DELETE("/users/:id", s.DeleteUser, authenticated, admin)

	return nil
}
