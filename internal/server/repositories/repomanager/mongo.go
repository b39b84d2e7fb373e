package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cosmospt/internal/server/repositories/catalog"
	"github.com/dmitrijs2005/cosmospt/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepositoryManager vends MongoDB-backed repositories. It has no
// schema; RunMigrations only ensures indexes.
type MongoRepositoryManager struct {
	client *mongo.Client
	db     *mongo.Database
}

var mongoConnect = func(ctx context.Context, opts ...*options.ClientOptions) (*mongo.Client, error) {
	return mongo.Connect(ctx, opts...)
}

func NewMongoRepositoryManager(ctx context.Context, uri, database string) (*MongoRepositoryManager, error) {
	client, err := mongoConnect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	return NewMongoRepositoryManagerFromClient(client, database), nil
}

func NewMongoRepositoryManagerFromClient(client *mongo.Client, database string) *MongoRepositoryManager {
	return &MongoRepositoryManager{client: client, db: client.Database(database)}
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return m.users()
}

func (m *MongoRepositoryManager) users() *users.MongoRepository {
	return users.NewMongoRepository(m.db.Collection(users.CollectionName))
}

func (m *MongoRepositoryManager) Catalog() catalog.Repository {
	return catalog.NewMongoRepository(m.db)
}

func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	return m.users().EnsureIndexes(ctx)
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
