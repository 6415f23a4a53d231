package mealrepo

import (
	"context"
	"errors"
	"fmt"

	"feedme/internal/adapters/out/mongo/listquery"
	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/ports"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/querybuilder"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mealCollection = listquery.Collection{
	Schema: ports.MealSchema,
	Fields: map[string]listquery.Field{
		"name":        {Name: "name"},
		"description": {Name: "description"},
		"category":    {Name: "category"},
		"isAvailable": {Name: "isAvailable"},
		"providerId":  {Name: "providerId", Convert: querybuilder.Text},
		"price":       {Name: "priceCents", Convert: querybuilder.Cents},
		"rating":      {Name: "rating"},
		"createdAt":   {Name: "createdAt"},
	},
}

// MongoMealRepository implements ports.MealRepository on a MongoDB collection.
type MongoMealRepository struct {
	collection *mongo.Collection
	tracker    aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewMongoMealRepository(db *mongo.Database, tracker aggregateTracker) *MongoMealRepository {
	return &MongoMealRepository{
		collection: db.Collection(CollectionName),
		tracker:    tracker,
	}
}

func (r *MongoMealRepository) Add(ctx context.Context, aggregate *meal.Meal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if _, err := r.collection.InsertOne(ctx, fromDomain(aggregate)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.NewConflictErrorWithCause("meal", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update sets the editable fields and increments __v.
func (r *MongoMealRepository) Update(ctx context.Context, aggregate *meal.Meal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	doc := fromDomain(aggregate)
	result, err := r.collection.UpdateByID(ctx, doc.ID, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "name", Value: doc.Name},
			{Key: "description", Value: doc.Description},
			{Key: "priceCents", Value: doc.PriceCents},
			{Key: "category", Value: doc.Category},
			{Key: "imageUrl", Value: doc.ImageURL},
			{Key: "isAvailable", Value: doc.IsAvailable},
			{Key: "nutritionalInfo", Value: doc.Nutrition},
			{Key: "customization", Value: doc.Customization},
			{Key: "updatedAt", Value: doc.UpdatedAt},
		}},
		{Key: "$inc", Value: bson.D{{Key: "__v", Value: 1}}},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errs.NewObjectNotFoundError("meal", doc.ID)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *MongoMealRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return errs.NewObjectNotFoundError("meal", id.String())
	}
	return nil
}

func (r *MongoMealRepository) Get(ctx context.Context, id kernel.UUID) (*meal.Meal, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var doc MealDocument
	if err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NewObjectNotFoundError("meal", id.String())
		}
		return nil, err
	}
	return toDomain(doc)
}

func (r *MongoMealRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*meal.Meal, error) {
	if len(ids) == 0 {
		return []*meal.Meal{}, nil
	}

	raw := make(bson.A, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.String())
	}

	return r.find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: raw}}}})
}

func (r *MongoMealRepository) List(ctx context.Context, query querybuilder.Query) ([]*meal.Meal, int64, error) {
	filter := mealCollection.Filter(query, bson.D{})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count meals: %w", err)
	}

	meals, err := r.find(ctx, filter, mealCollection.FindOptions(query))
	if err != nil {
		return nil, 0, fmt.Errorf("list meals: %w", err)
	}
	return meals, total, nil
}

// AddReview pushes the review and recomputes the rating in one single-document
// update that only matches while the order has not reviewed the meal yet.
func (r *MongoMealRepository) AddReview(ctx context.Context, mealID kernel.UUID, review meal.Review) error {
	if err := mealID.Validate(); err != nil {
		return err
	}

	doc := reviewFromDomain(review)
	filter := bson.D{
		{Key: "_id", Value: mealID.String()},
		{Key: "reviews.orderId", Value: bson.D{{Key: "$ne", Value: doc.OrderID}}},
	}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "ratingSum", Value: bson.D{{Key: "$add", Value: bson.A{"$ratingSum", doc.Score}}}},
			{Key: "ratingCount", Value: bson.D{{Key: "$add", Value: bson.A{"$ratingCount", 1}}}},
			{Key: "reviews", Value: bson.D{{Key: "$concatArrays", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$reviews", bson.A{}}}},
				bson.A{bson.D{{Key: "$literal", Value: doc}}},
			}}}},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "rating", Value: bson.D{{Key: "$divide", Value: bson.A{"$ratingSum", "$ratingCount"}}}},
		}}},
	}

	result, err := r.collection.UpdateOne(ctx, filter, pipeline)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}

	exists, err := r.collection.CountDocuments(ctx, bson.D{{Key: "_id", Value: mealID.String()}})
	if err != nil {
		return err
	}
	if exists == 0 {
		return errs.NewObjectNotFoundError("meal", mealID.String())
	}
	return errs.NewConflictErrorWithCause(
		"review",
		fmt.Errorf("order %s already reviewed meal %s", review.OrderID(), mealID),
	)
}

func (r *MongoMealRepository) find(ctx context.Context, filter bson.D, opts ...*options.FindOptions) ([]*meal.Meal, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}

	var docs []MealDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	meals := make([]*meal.Meal, 0, len(docs))
	for _, doc := range docs {
		m, domainErr := toDomain(doc)
		if domainErr != nil {
			return nil, domainErr
		}
		meals = append(meals, m)
	}
	return meals, nil
}
