package mongo

import (
	"context"
	"fmt"

	"feedme/internal/adapters/out/mongo/mealrepo"
	"feedme/internal/adapters/out/mongo/orderrepo"
	"feedme/internal/adapters/out/mongo/userrepo"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens a client for uri and checks that the primary is reachable.
func Connect(ctx context.Context, uri string) (*mongodriver.Client, error) {
	client, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique and lookup indexes of every collection.
func EnsureIndexes(ctx context.Context, db *mongodriver.Database) error {
	indexes := map[string][]mongodriver.IndexModel{
		userrepo.CollectionName: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "createdAt", Value: 1}}},
		},
		mealrepo.CollectionName: {
			{Keys: bson.D{{Key: "providerId", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: 1}}},
		},
		orderrepo.CollectionName: {
			{
				Keys: bson.D{{Key: "trackingNumber", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.D{{Key: "trackingNumber", Value: bson.D{{Key: "$type", Value: "string"}}}}),
			},
			{Keys: bson.D{{Key: "customerId", Value: 1}}},
			{Keys: bson.D{{Key: "providerIds", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", collection, err)
		}
	}
	return nil
}
