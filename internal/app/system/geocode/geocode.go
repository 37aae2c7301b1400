// internal/app/system/geocode/geocode.go
//
// Address resolution. The rest of the app only sees the Geocoder
// interface; the MapQuest client below is the production implementation
// and tests substitute their own.
package geocode

import (
	"context"
	"errors"
)

// ErrNoResults is returned when the provider resolves nothing for the
// given address or zipcode.
var ErrNoResults = errors.New("geocoder: no results")

// Location is one resolved candidate for an address.
type Location struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
	Street           string
	City             string
	State            string
	Zipcode          string
	Country          string
}

// Geocoder converts a free-text address (or bare zipcode) into zero or
// more candidate locations. Callers take the first result when the
// provider returns several.
type Geocoder interface {
	Geocode(ctx context.Context, address string) ([]Location, error)
}
