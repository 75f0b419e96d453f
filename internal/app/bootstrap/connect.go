// internal/app/bootstrap/connect.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/rjinka/mytennisteam/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection used by every store.
// The pool is sized from app config and the connection is verified with
// a ping before startup continues.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error("MongoDB connect failed", zap.Error(err))
		return DBDeps{}, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		logger.Error("MongoDB ping failed", zap.Error(err))
		_ = client.Disconnect(ctx)
		return DBDeps{}, err
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}
