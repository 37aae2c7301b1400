// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging level, timeouts). AppConfig is everything specific to the
// job board itself: the Mongo connection, the JWT signing material,
// and the geocoding provider credentials.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Min connections kept warm in the pool

	// Bearer-token auth configuration
	JWTSecret string        // HMAC secret for signing access tokens (must be strong in production)
	JWTExpiry time.Duration // Access token lifetime (e.g., 7d for a job-seeker session)

	// Geocoding provider configuration
	GeocoderBaseURL string // Geocoding API base URL
	GeocoderKey     string // Geocoding API key
}
