package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cosmospt/internal/common"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection holding user documents.
const CollectionName = "users"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// EnsureIndexes creates the unique index on name.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_name_key"),
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Version = 1

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *MongoRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	return r.findOne(ctx, bson.D{{Key: "name", Value: name}})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.D) (*models.User, error) {
	user := &models.User{}
	if err := r.coll.FindOne(ctx, filter).Decode(user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// Save overwrites the stored document and increments the stored version,
// whatever version the caller read.
func (r *MongoRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	fields, err := documentFields(user)
	if err != nil {
		return nil, err
	}

	update := bson.D{
		{Key: "$set", Value: fields},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.D{{Key: "version", Value: 1}})

	var stored struct {
		Version int64 `bson:"version"`
	}
	err = r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: user.ID}}, update, opts).Decode(&stored)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.Version = stored.Version
	return user, nil
}

// documentFields encodes user without the immutable _id and the version,
// which the store maintains.
func documentFields(user *models.User) (bson.M, error) {
	raw, err := bson.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}
	delete(fields, "_id")
	delete(fields, "version")
	return fields, nil
}

func (r *MongoRepository) SaveIfVersion(ctx context.Context, user *models.User, expected int64) (*models.User, error) {
	next := user.Clone()
	next.Version = expected + 1

	filter := bson.D{{Key: "_id", Value: user.ID}, {Key: "version", Value: expected}}
	res, err := r.coll.ReplaceOne(ctx, filter, next)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, common.ErrVersionConflict
	}
	user.Version = next.Version
	return user, nil
}
