// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/joblane/joblane/internal/app/system/geocode"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Geocoder      geocode.Geocoder
}
