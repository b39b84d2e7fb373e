package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepository keeps one MongoDB collection per catalog collection, the
// layout the web client's original backend used.
type MongoRepository struct {
	db *mongo.Database
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{db: db}
}

func (r *MongoRepository) List(ctx context.Context, c models.Collection) ([]json.RawMessage, error) {
	cur, err := r.db.Collection(string(c)).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cur.Close(ctx)

	docs := make([]json.RawMessage, 0)
	for cur.Next(ctx) {
		var d bson.D
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		// ObjectIDs are emitted as plain hex strings, matching what clients
		// received from the original API.
		for i := range d {
			if oid, ok := d[i].Value.(primitive.ObjectID); ok {
				d[i].Value = oid.Hex()
			}
		}
		b, err := bson.MarshalExtJSON(d, false, false)
		if err != nil {
			return nil, fmt.Errorf("encode document: %w", err)
		}
		docs = append(docs, json.RawMessage(b))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return docs, nil
}

// Replace is not atomic: standalone MongoDB servers have no multi-document
// transactions.
func (r *MongoRepository) Replace(ctx context.Context, c models.Collection, docs []json.RawMessage) error {
	batch := make([]any, 0, len(docs))
	for _, doc := range docs {
		var d bson.D
		if err := bson.UnmarshalExtJSON(doc, false, &d); err != nil {
			return fmt.Errorf("decode document: %w", err)
		}
		batch = append(batch, d)
	}

	coll := r.db.Collection(string(c))
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if len(batch) == 0 {
		return nil
	}
	if _, err := coll.InsertMany(ctx, batch); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
