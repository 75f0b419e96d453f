// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the service.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: MYTENNISTEAM_MONGO_URI, MYTENNISTEAM_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "mytennisteam", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	// Token auth
	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Bearer token signing key (must be strong in production)"},
	{Name: "jwt_issuer", Default: "mytennisteam", Desc: "Issuer claim for bearer tokens"},
	{Name: "token_ttl", Default: "720h", Desc: "Bearer token lifetime (e.g., 24h, 720h)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// Merging precedence: flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MYTENNISTEAM", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		JWTIssuer: appValues.String("jwt_issuer"),
		TokenTTL:  appValues.Duration("token_ttl", 30*24*time.Hour),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI format is checked early to catch configuration errors
// before attempting to connect, and production refuses to run with the
// development signing key.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" && appCfg.JWTSecret == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("jwt_secret must be set in production")
	}
	if appCfg.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}

	return nil
}
