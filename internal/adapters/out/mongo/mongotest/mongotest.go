// Package mongotest starts a throwaway MongoDB container for integration suites.
package mongotest

import (
	"context"
	"time"

	feedmemongo "feedme/internal/adapters/out/mongo"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// Start runs mongo:7 and returns a client with indexes created on database.
func Start(ctx context.Context, database string) (*mongodb.MongoDBContainer, *mongodriver.Client, *mongodriver.Database, error) {
	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		return nil, nil, nil, err
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		return container, nil, nil, err
	}

	client, err := feedmemongo.Connect(ctx, uri)
	if err != nil {
		return container, nil, nil, err
	}

	db := client.Database(database)
	if err = feedmemongo.EnsureIndexes(ctx, db); err != nil {
		return container, client, nil, err
	}
	return container, client, db, nil
}

// Clear deletes every document and keeps the indexes.
func Clear(ctx context.Context, db *mongodriver.Database) error {
	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, err = db.Collection(name).DeleteMany(ctx, bson.D{}); err != nil {
			return err
		}
	}
	return nil
}

// Now is truncated to milliseconds, the resolution of BSON dates.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
