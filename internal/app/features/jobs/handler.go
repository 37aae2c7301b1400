// internal/app/features/jobs/handler.go
package jobs

import (
	jobstore "github.com/joblane/joblane/internal/app/store/jobs"
	"github.com/joblane/joblane/internal/app/system/geocode"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves every job endpoint: list, single fetch, radius search,
// stats, and the authenticated create/update/delete routes.
type Handler struct {
	jobs *jobstore.Store
	geo  geocode.Geocoder
	log  *zap.Logger
}

func NewHandler(db *mongo.Database, geo geocode.Geocoder, logger *zap.Logger) *Handler {
	return &Handler{
		jobs: jobstore.New(db, geo),
		geo:  geo,
		log:  logger,
	}
}
