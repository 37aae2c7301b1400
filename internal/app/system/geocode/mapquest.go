// internal/app/system/geocode/mapquest.go
package geocode

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

// MapQuest calls the MapQuest geocoding REST API.
type MapQuest struct {
	client *resty.Client
	key    string
	log    *zap.Logger
}

// NewMapQuest builds a client for the given base URL (e.g.
// https://www.mapquestapi.com) and API key.
func NewMapQuest(baseURL, key string, logger *zap.Logger) *MapQuest {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout)

	return &MapQuest{client: client, key: key, log: logger}
}

type mapquestResponse struct {
	Results []struct {
		Locations []struct {
			LatLng struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"latLng"`
			Street     string `json:"street"`
			City       string `json:"adminArea5"`
			State      string `json:"adminArea3"`
			PostalCode string `json:"postalCode"`
			Country    string `json:"adminArea1"`
		} `json:"locations"`
	} `json:"results"`
}

// Geocode resolves address against MapQuest. Zero candidate locations is
// ErrNoResults, not a transport error.
func (m *MapQuest) Geocode(ctx context.Context, address string) ([]Location, error) {
	var out mapquestResponse

	resp, err := m.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":      m.key,
			"location": address,
		}).
		SetResult(&out).
		Get("/geocoding/v1/address")
	if err != nil {
		return nil, fmt.Errorf("geocoder: request failed: %w", err)
	}
	if resp.IsError() {
		m.log.Warn("geocoder returned error status",
			zap.Int("status", resp.StatusCode()),
			zap.String("address", address))
		return nil, fmt.Errorf("geocoder: unexpected status %d", resp.StatusCode())
	}

	var locs []Location
	for _, res := range out.Results {
		for _, l := range res.Locations {
			if l.LatLng.Lat == 0 && l.LatLng.Lng == 0 {
				continue
			}
			loc := Location{
				Latitude:  l.LatLng.Lat,
				Longitude: l.LatLng.Lng,
				Street:    l.Street,
				City:      l.City,
				State:     l.State,
				Zipcode:   l.PostalCode,
				Country:   l.Country,
			}
			loc.FormattedAddress = formatAddress(loc)
			locs = append(locs, loc)
		}
	}
	if len(locs) == 0 {
		return nil, ErrNoResults
	}
	return locs, nil
}

func formatAddress(l Location) string {
	parts := make([]string, 0, 5)
	for _, p := range []string{l.Street, l.City, l.State, l.Zipcode, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
