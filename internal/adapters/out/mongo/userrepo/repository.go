package userrepo

import (
	"context"
	"errors"
	"fmt"

	"feedme/internal/adapters/out/mongo/listquery"
	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/core/ports"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/querybuilder"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var userCollection = listquery.Collection{
	Schema: ports.UserSchema,
	Fields: map[string]listquery.Field{
		"name":      {Name: "name"},
		"email":     {Name: "email", Convert: normalizedEmail},
		"role":      {Name: "role", Convert: roleName},
		"isBlocked": {Name: "isBlocked"},
		"createdAt": {Name: "createdAt"},
	},
}

func normalizedEmail(v any) (any, bool) {
	raw, ok := v.(string)
	return user.NormalizeEmail(raw), ok
}

func roleName(v any) (any, bool) {
	raw, ok := v.(string)
	if !ok {
		return nil, false
	}
	role, err := user.ParseRole(raw)
	if err != nil {
		return nil, false
	}
	return role.String(), true
}

// MongoUserRepository implements ports.UserRepository on a MongoDB collection.
type MongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection(CollectionName)}
}

func (r *MongoUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	doc := fromDomain(aggregate)
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.NewConflictErrorWithCause("email", fmt.Errorf("%s is already registered", doc.Email))
		}
		return err
	}
	return nil
}

func (r *MongoUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	doc := fromDomain(aggregate)
	result, err := r.collection.UpdateByID(ctx, doc.ID, bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: doc.Name},
		{Key: "phone", Value: doc.Phone},
		{Key: "address", Value: doc.Address},
		{Key: "role", Value: doc.Role},
		{Key: "isBlocked", Value: doc.IsBlocked},
		{Key: "updatedAt", Value: doc.UpdatedAt},
	}}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errs.NewObjectNotFoundError("user", doc.ID)
	}
	return nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return errs.NewObjectNotFoundError("user", id.String())
	}
	return nil
}

func (r *MongoUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.findOne(ctx, "user", id.String(), bson.D{{Key: "_id", Value: id.String()}})
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	email = user.NormalizeEmail(email)
	return r.findOne(ctx, "email", email, bson.D{{Key: "email", Value: email}})
}

func (r *MongoUserRepository) List(ctx context.Context, query querybuilder.Query) ([]*user.User, int64, error) {
	filter := userCollection.Filter(query, bson.D{})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, userCollection.FindOptions(query))
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	var docs []UserDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	users := make([]*user.User, 0, len(docs))
	for _, doc := range docs {
		u, domainErr := toDomain(doc)
		if domainErr != nil {
			return nil, 0, domainErr
		}
		users = append(users, u)
	}
	return users, total, nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, param, key string, filter bson.D) (*user.User, error) {
	var doc UserDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NewObjectNotFoundError(param, key)
		}
		return nil, err
	}
	return toDomain(doc)
}
