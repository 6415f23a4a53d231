package cmd

import (
	"context"
	"log/slog"

	httpin "feedme/internal/adapters/in/http"
	"feedme/internal/adapters/out/bcrypt"
	"feedme/internal/core/application/usecases/commands"
	"feedme/internal/core/application/usecases/queries"
	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/core/domain/services"
	"feedme/internal/core/ports"
	"feedme/internal/jobs"
)

// CompositionRoot builds the use cases on top of one store.
type CompositionRoot struct {
	cfg        Config
	uowFactory ports.UnitOfWorkFactory
	hasher     ports.PasswordHasher
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, uowFactory ports.UnitOfWorkFactory, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		uowFactory: uowFactory,
		hasher:     bcrypt.NewHasher(cfg.BcryptCost),
		logger:     logger,
	}
}

func (c *CompositionRoot) mealUoWFactory() commands.MealUoWFactory {
	return FuncMealUoWFactory(func() commands.MealUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW { return c.uowFactory.Create() })
}

// Repositories obtained outside Begin serve the read side.
func (c *CompositionRoot) mealRepository() ports.MealRepository {
	return c.uowFactory.Create().MealRepository()
}

func (c *CompositionRoot) orderRepository() ports.OrderRepository {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) userRepository() ports.UserRepository {
	return c.uowFactory.Create().UserRepository()
}

func (c *CompositionRoot) Pricing() (order.Pricing, error) {
	fee, err := kernel.NewMoneyFromFloat(c.cfg.ShippingFee)
	if err != nil {
		return order.Pricing{}, err
	}
	return order.NewPricing(c.cfg.TaxRate, fee)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() (commands.CreateOrderCommandHandler, error) {
	pricing, err := c.Pricing()
	if err != nil {
		return commands.CreateOrderCommandHandler{}, err
	}
	return commands.NewCreateOrderCommandHandler(c.fullUoWFactory(), services.NewCheckoutPricer(), pricing), nil
}

func (c *CompositionRoot) CreateExpireUnpaidOrdersCommandHandler() commands.ExpireUnpaidOrdersCommandHandler {
	return commands.NewExpireUnpaidOrdersCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSeedAdminCommandHandler() commands.SeedAdminCommandHandler {
	return commands.NewSeedAdminCommandHandler(c.userUoWFactory(), c.hasher)
}

// SeedAdmin creates the configured admin account on first start.
func (c *CompositionRoot) SeedAdmin(ctx context.Context) error {
	if !c.cfg.SeedsAdmin() {
		return nil
	}
	cmd, err := commands.NewSeedAdminCommand(user.Profile{
		Name:  c.cfg.AdminName,
		Email: c.cfg.AdminEmail,
	}, c.cfg.AdminPassword)
	if err != nil {
		return err
	}

	handler := c.CreateSeedAdminCommandHandler()
	created, err := handler.Handle(ctx, cmd)
	if err != nil {
		return err
	}
	if created {
		c.logger.InfoContext(ctx, "Admin account created", "email", cmd.Profile().Email)
	}
	return nil
}

// CreateHTTPHandlers wires every use case exposed over HTTP.
func (c *CompositionRoot) CreateHTTPHandlers() (httpin.Handlers, error) {
	registerUser := commands.NewRegisterUserCommandHandler(c.userUoWFactory(), c.hasher)
	setUserBlocked := commands.NewSetUserBlockedCommandHandler(c.userUoWFactory())
	changeUserRole := commands.NewChangeUserRoleCommandHandler(c.userUoWFactory())
	deleteUser := commands.NewDeleteUserCommandHandler(c.userUoWFactory())

	createMeal := commands.NewCreateMealCommandHandler(c.mealUoWFactory())
	updateMeal := commands.NewUpdateMealCommandHandler(c.mealUoWFactory())
	deleteMeal := commands.NewDeleteMealCommandHandler(c.mealUoWFactory())
	submitRating := commands.NewSubmitRatingCommandHandler(c.fullUoWFactory())

	createOrder, err := c.CreateCreateOrderCommandHandler()
	if err != nil {
		return httpin.Handlers{}, err
	}
	confirmPayment := commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory())
	cancelOrder := commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
	appendTrackingUpdate := commands.NewAppendTrackingUpdateCommandHandler(c.orderUoWFactory())
	assignTrackingNumber := commands.NewAssignTrackingNumberCommandHandler(c.orderUoWFactory())
	setEstimatedDeliveryDate := commands.NewSetEstimatedDeliveryDateCommandHandler(c.orderUoWFactory())
	deleteOrder := commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())

	return httpin.Handlers{
		RegisterUser:   &registerUser,
		SetUserBlocked: &setUserBlocked,
		ChangeUserRole: &changeUserRole,
		DeleteUser:     &deleteUser,
		Authenticate:   queries.NewAuthenticateUserQueryHandler(c.userRepository(), c.hasher),
		GetUser:        queries.NewGetUserQueryHandler(c.userRepository()),
		ListUsers:      queries.NewListUsersQueryHandler(c.userRepository()),

		CreateMeal:   &createMeal,
		UpdateMeal:   &updateMeal,
		DeleteMeal:   &deleteMeal,
		SubmitRating: &submitRating,
		GetMeal:      queries.NewGetMealQueryHandler(c.mealRepository()),
		ListMeals:    queries.NewListMealsQueryHandler(c.mealRepository()),

		CreateOrder:              &createOrder,
		ConfirmPayment:           &confirmPayment,
		CancelOrder:              &cancelOrder,
		AppendTrackingUpdate:     &appendTrackingUpdate,
		AssignTrackingNumber:     &assignTrackingNumber,
		SetEstimatedDeliveryDate: &setEstimatedDeliveryDate,
		DeleteOrder:              &deleteOrder,
		GetOrder:                 queries.NewGetOrderQueryHandler(c.orderRepository()),
		ListOrders:               queries.NewListOrdersQueryHandler(c.orderRepository()),
	}, nil
}

func (c *CompositionRoot) CreateTokenIssuer() (*httpin.TokenIssuer, error) {
	return httpin.NewTokenIssuer(c.cfg.JWTSecret, c.cfg.JWTTTL)
}

func (c *CompositionRoot) CreateAuthenticator(tokens *httpin.TokenIssuer) *httpin.Authenticator {
	return httpin.NewAuthenticator(tokens, c.userRepository())
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	expire := c.CreateExpireUnpaidOrdersCommandHandler()
	return jobs.NewJobManager(
		jobs.NewUnpaidOrderExpiryJob(&expire, c.cfg.ExpirySchedule, c.cfg.UnpaidOrderTTL, c.cfg.ExpiryBatchSize, c.logger),
	)
}

type FuncMealUoWFactory func() commands.MealUoW

func (f FuncMealUoWFactory) Create() commands.MealUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
