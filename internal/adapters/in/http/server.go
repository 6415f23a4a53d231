package http

import (
	"context"
	"log/slog"

	"feedme/internal/core/application/usecases/commands"
	"feedme/internal/core/application/usecases/queries"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/domain/model/user"
)

// CommandHandler is satisfied by every handler in the commands package.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler is satisfied by every handler in the queries package.
type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers are the use cases exposed over HTTP.
type Handlers struct {
	RegisterUser   CommandHandler[commands.RegisterUserCommand]
	SetUserBlocked CommandHandler[commands.SetUserBlockedCommand]
	ChangeUserRole CommandHandler[commands.ChangeUserRoleCommand]
	DeleteUser     CommandHandler[commands.DeleteUserCommand]
	Authenticate   QueryHandler[queries.AuthenticateUserQuery, *user.User]
	GetUser        QueryHandler[queries.GetUserQuery, *user.User]
	ListUsers      QueryHandler[queries.ListUsersQuery, queries.ListResult[*user.User]]

	CreateMeal   CommandHandler[commands.CreateMealCommand]
	UpdateMeal   CommandHandler[commands.UpdateMealCommand]
	DeleteMeal   CommandHandler[commands.DeleteMealCommand]
	SubmitRating CommandHandler[commands.SubmitRatingCommand]
	GetMeal      QueryHandler[queries.GetMealQuery, *meal.Meal]
	ListMeals    QueryHandler[queries.ListMealsQuery, queries.ListResult[*meal.Meal]]

	CreateOrder              CommandHandler[commands.CreateOrderCommand]
	ConfirmPayment           CommandHandler[commands.ConfirmPaymentCommand]
	CancelOrder              CommandHandler[commands.CancelOrderCommand]
	AppendTrackingUpdate     CommandHandler[commands.AppendTrackingUpdateCommand]
	AssignTrackingNumber     CommandHandler[commands.AssignTrackingNumberCommand]
	SetEstimatedDeliveryDate CommandHandler[commands.SetEstimatedDeliveryDateCommand]
	DeleteOrder              CommandHandler[commands.DeleteOrderCommand]
	GetOrder                 QueryHandler[queries.GetOrderQuery, *order.Order]
	ListOrders               QueryHandler[queries.ListOrdersQuery, queries.ListResult[*order.Order]]
}

// Server translates HTTP requests into commands and queries and renders their results.
type Server struct {
	handlers Handlers
	tokens   *TokenIssuer
	logger   *slog.Logger
}

func NewServer(handlers Handlers, tokens *TokenIssuer, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		tokens:   tokens,
		logger:   logger.With("component", "http"),
	}
}
