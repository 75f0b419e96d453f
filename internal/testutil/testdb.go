// Package testutil provides test database setup, fixtures and HTTP
// helpers shared by handler and store tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestContext returns a context with the standard test timeout.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// SetupTestDB connects to the Mongo instance named by
// MYTENNISTEAM_TEST_MONGO_URI and returns a fresh, uniquely named
// database. Tests that need Mongo are skipped when the variable is
// unset. The database is dropped and the client disconnected during
// test cleanup.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MYTENNISTEAM_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MYTENNISTEAM_TEST_MONGO_URI not set; skipping database test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect to test mongo: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("ping test mongo: %v", err)
	}

	name := fmt.Sprintf("mytennisteam_test_%d", time.Now().UnixNano())
	db := client.Database(name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}
