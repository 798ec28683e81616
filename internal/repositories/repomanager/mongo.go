package repomanager

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaultkeeper/internal/repositories/credentials"
	"github.com/dmitrijs2005/vaultkeeper/internal/repositories/users"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoRepositoryManager struct {
	client      *mongo.Client
	credentials *credentials.MongoRepository
	users       *users.MongoRepository
}

// OpenMongo connects to uri, verifies the server is reachable within
// timeout and ensures the credential indexes exist in database.
func OpenMongo(ctx context.Context, uri, database string, timeout time.Duration) (*MongoRepositoryManager, error) {
	client, err := mongo.Connect(
		options.Client().
			ApplyURI(uri).
			SetConnectTimeout(timeout).
			SetRetryWrites(true).
			SetRetryReads(true),
	)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	m := &MongoRepositoryManager{
		client:      client,
		credentials: credentials.NewMongoRepository(db),
		users:       users.NewMongoRepository(db),
	}
	if err := m.credentials.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return m, nil
}

func (m *MongoRepositoryManager) Credentials() credentials.Repository {
	return m.credentials
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
