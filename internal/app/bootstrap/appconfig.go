// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging level, request limits); AppConfig is everything specific to
// this application. The struct is passed to most lifecycle hooks, so
// any configuration needed during startup, request handling, or
// shutdown lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Token auth configuration
	JWTSecret string        // Secret key for signing bearer tokens (must be strong in production)
	JWTIssuer string        // Issuer claim stamped into tokens
	TokenTTL  time.Duration // How long issued tokens stay valid
}
