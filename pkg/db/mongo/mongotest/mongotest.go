// Package mongotest connects repository tests to a disposable MongoDB
// database. Tests are skipped unless STAYBOOK_TEST_MONGO_URI is set.
package mongotest

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"staybook/pkg/client"
	"staybook/pkg/config"
	"staybook/pkg/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	EnvTestMongoURI   = "STAYBOOK_TEST_MONGO_URI"
	ConnectionTimeout = 10 * time.Second
)

type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
	DBName   string
	Config   *config.Config
}

// New connects to the test server and returns a helper bound to a fresh,
// uniquely named database that is dropped when the test finishes.
func New(t *testing.T) *MongoHelper {
	t.Helper()

	mongoURI := os.Getenv(EnvTestMongoURI)
	if mongoURI == "" {
		t.Skipf("%s not set, skipping MongoDB test", EnvTestMongoURI)
	}

	testLogger := logger.New(logger.Config{
		Service: "test",
		Level:   logger.ERROR,
	})

	c := client.NewClient()
	c.SetMongo(testLogger, mongoURI, ConnectionTimeout)

	dbName := fmt.Sprintf("staybook_test_%s", uuid.NewString()[:8])
	h := &MongoHelper{
		Client:   c.Mongo,
		Database: c.Mongo.Database(dbName),
		DBName:   dbName,
		Config: &config.Config{
			MongoDatabaseName: dbName,
			ReadTimeout:       5 * time.Second,
			WriteTimeout:      5 * time.Second,
			Log:               testLogger,
			Client:            c,
		},
	}

	t.Cleanup(func() {
		h.drop(t)
		c.GracefulShutdown(testLogger, 5*time.Second)
	})
	return h
}

func (m *MongoHelper) drop(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := m.Database.Drop(ctx); err != nil {
		t.Logf("warning: failed to drop test database %s: %v", m.DBName, err)
	}
}

func (m *MongoHelper) CountDocuments(t *testing.T, collectionName string) int64 {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := m.Database.Collection(collectionName).CountDocuments(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("failed to count documents in %s: %v", collectionName, err)
	}
	return count
}
