package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"feedme/internal/adapters/out/mongo/listquery"
	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/ports"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/querybuilder"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var orderCollection = listquery.Collection{
	Schema: ports.OrderSchema,
	Fields: map[string]listquery.Field{
		"status":          {Name: "status", Convert: statusName},
		"trackingNumber":  {Name: "trackingNumber"},
		"customerId":      {Name: "customerId", Convert: querybuilder.Text},
		"totalPrice":      {Name: "totalCents", Convert: querybuilder.Cents},
		"deliveryAddress": {Name: "deliveryAddress"},
		"createdAt":       {Name: "createdAt"},
	},
}

func statusName(v any) (any, bool) {
	raw, ok := v.(string)
	if !ok {
		return nil, false
	}
	status, err := order.ParseStatus(raw)
	if err != nil {
		return nil, false
	}
	return status.String(), true
}

// MongoOrderRepository implements ports.OrderRepository on a MongoDB collection.
type MongoOrderRepository struct {
	collection *mongo.Collection
	tracker    aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewMongoOrderRepository(db *mongo.Database, tracker aggregateTracker) *MongoOrderRepository {
	return &MongoOrderRepository{
		collection: db.Collection(CollectionName),
		tracker:    tracker,
	}
}

func (r *MongoOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if _, err := r.collection.InsertOne(ctx, fromDomain(aggregate)); err != nil {
		return translateWriteError(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update sets the scalar fields and pushes the pending tracking updates in one
// atomic document update. The document is only matched while its status still
// equals the order's stored status.
func (r *MongoOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	doc := fromDomain(aggregate)
	set := bson.D{
		{Key: "status", Value: doc.Status},
		{Key: "paymentReference", Value: doc.PaymentReference},
		{Key: "updatedAt", Value: doc.UpdatedAt},
	}
	var unset bson.D
	if doc.TrackingNumber != nil {
		set = append(set, bson.E{Key: "trackingNumber", Value: *doc.TrackingNumber})
	} else {
		unset = append(unset, bson.E{Key: "trackingNumber", Value: ""})
	}
	if doc.EstimatedDeliveryDate != nil {
		set = append(set, bson.E{Key: "estimatedDeliveryDate", Value: *doc.EstimatedDeliveryDate})
	} else {
		unset = append(unset, bson.E{Key: "estimatedDeliveryDate", Value: ""})
	}

	update := bson.D{{Key: "$set", Value: set}}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}
	if pending := trackingFromDomain(aggregate.PendingTrackingUpdates()); len(pending) > 0 {
		update = append(update, bson.E{Key: "$push", Value: bson.D{
			{Key: "trackingUpdates", Value: bson.D{{Key: "$each", Value: pending}}},
		}})
	}

	filter := bson.D{
		{Key: "_id", Value: doc.ID},
		{Key: "status", Value: aggregate.StoredStatus().String()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return translateWriteError(err)
	}
	if result.MatchedCount == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *MongoOrderRepository) missingOrStale(ctx context.Context, aggregate *order.Order) error {
	var current struct {
		Status string `bson:"status"`
	}
	err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: aggregate.ID().String()}},
		options.FindOne().SetProjection(bson.D{{Key: "status", Value: 1}}),
	).Decode(&current)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if err != nil {
		return err
	}
	return errs.NewConflictErrorWithCause("status", fmt.Errorf(
		"order %s is %s, expected %s", aggregate.ID(), current.Status, aggregate.StoredStatus(),
	))
}

func (r *MongoOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

func (r *MongoOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var doc OrderDocument
	if err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}
	return toDomain(doc)
}

func (r *MongoOrderRepository) List(
	ctx context.Context,
	scope ports.OrderScope,
	query querybuilder.Query,
) ([]*order.Order, int64, error) {
	filter := orderCollection.Filter(query, scopeFilter(scope))

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	orders, err := r.find(ctx, filter, orderCollection.FindOptions(query))
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

func (r *MongoOrderRepository) GetUnpaidPlacedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error) {
	filter := bson.D{
		{Key: "status", Value: order.Processing.String()},
		{Key: "createdAt", Value: bson.D{{Key: "$lt", Value: cutoff.UTC()}}},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	return r.find(ctx, filter, opts)
}

func (r *MongoOrderRepository) find(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]*order.Order, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var docs []OrderDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(docs))
	for _, doc := range docs {
		o, domainErr := toDomain(doc)
		if domainErr != nil {
			return nil, domainErr
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func scopeFilter(scope ports.OrderScope) bson.D {
	filter := bson.D{}
	if scope.CustomerID != nil {
		filter = append(filter, bson.E{Key: "customerId", Value: scope.CustomerID.String()})
	}
	if scope.ProviderID != nil {
		// Equality on an array field matches any element.
		filter = append(filter, bson.E{Key: "providerIds", Value: scope.ProviderID.String()})
	}
	return filter
}

func translateWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return errs.NewConflictErrorWithCause("trackingNumber", err)
	}
	return err
}
