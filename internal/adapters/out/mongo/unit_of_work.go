// Package mongo is the MongoDB store of the service.
//
// Every write of a repository touches one document and is atomic on its own,
// so the unit of work does not open a server transaction: Begin, Commit and
// Rollback only track state, and a successful Commit acknowledges the
// pending tracking updates of the orders written since Begin.
package mongo

import (
	"context"
	"errors"

	"feedme/internal/adapters/out/mongo/mealrepo"
	"feedme/internal/adapters/out/mongo/orderrepo"
	"feedme/internal/adapters/out/mongo/userrepo"
	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/ports"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// ErrNoActiveUnitOfWork is returned by Commit and Rollback without a preceding Begin.
var ErrNoActiveUnitOfWork = errors.New("no active unit of work")

type pendingAcknowledger interface {
	ClearPendingTrackingUpdates()
}

type UnitOfWorkFactory struct {
	db *mongodriver.Database
}

func NewUnitOfWorkFactory(db *mongodriver.Database) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{db: f.db}
}

type UnitOfWork struct {
	db      *mongodriver.Database
	active  bool
	tracked []any
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveUnitOfWork
	}
	uow.active = false

	for _, aggregate := range uow.tracked {
		if a, ok := aggregate.(pendingAcknowledger); ok {
			a.ClearPendingTrackingUpdates()
		}
	}
	uow.tracked = nil
	return nil
}

// Rollback ends the unit of work. Writes already issued are not undone.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveUnitOfWork
	}
	uow.active = false
	uow.tracked = nil
	return nil
}

func (uow *UnitOfWork) MealRepository() ports.MealRepository {
	return mealrepo.NewMongoMealRepository(uow.db, uow)
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewMongoOrderRepository(uow.db, uow)
}

func (uow *UnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewMongoUserRepository(uow.db)
}

func (uow *UnitOfWork) TrackAggregate(_ kernel.UUID, aggregate any) {
	uow.tracked = append(uow.tracked, aggregate)
}
