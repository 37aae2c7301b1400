// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	authnfeature "github.com/joblane/joblane/internal/app/features/authn"
	healthfeature "github.com/joblane/joblane/internal/app/features/health"
	jobsfeature "github.com/joblane/joblane/internal/app/features/jobs"
	userstore "github.com/joblane/joblane/internal/app/store/users"
	"github.com/joblane/joblane/internal/app/system/auth"
	"github.com/joblane/joblane/internal/app/system/respond"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The whole API is mounted under
// /api/v1; the health endpoint lives at the root for load balancers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	users := userstore.New(deps.MongoDatabase)
	am := auth.NewManager(appCfg.JWTSecret, appCfg.JWTExpiry, users, logger)

	r := chi.NewRouter()
	r.NotFound(respond.NotFoundHandler())

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	api := chi.NewRouter()
	api.NotFound(respond.NotFoundHandler())

	jobsHandler := jobsfeature.NewHandler(deps.MongoDatabase, deps.Geocoder, logger)
	jobsfeature.Register(api, jobsHandler, am)

	authnHandler := authnfeature.NewHandler(deps.MongoDatabase, am, logger)
	authnfeature.Register(api, authnHandler)

	r.Mount("/api/v1", api)

	return r, nil
}
