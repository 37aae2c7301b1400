// internal/app/features/jobs/radius.go
package jobs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/joblane/joblane/internal/app/system/apperr"
	"github.com/joblane/joblane/internal/app/system/geocode"
	"github.com/joblane/joblane/internal/app/system/respond"
)

// HandleRadius serves GET /jobs/{zipcode}/{distance}: resolve the
// zipcode to a point, then return every job within distance miles.
// Results are unpaginated.
func (h *Handler) HandleRadius(w http.ResponseWriter, r *http.Request) {
	zipcode := chi.URLParam(r, "zipcode")

	distance, err := strconv.ParseFloat(chi.URLParam(r, "distance"), 64)
	if err != nil || distance <= 0 {
		respond.Error(w, h.log, apperr.New(apperr.Validation, "distance must be a positive number of miles"))
		return
	}

	locs, err := h.geo.Geocode(r.Context(), zipcode)
	if err != nil {
		// An unresolvable zipcode reads as "nothing there", not as a
		// malformed request.
		if errors.Is(err, geocode.ErrNoResults) {
			respond.Error(w, h.log, apperr.Wrap(apperr.NotFound, err, "could not resolve zipcode: %s", zipcode))
			return
		}
		respond.Error(w, h.log, err)
		return
	}
	center := locs[0]

	found, err := h.jobs.WithinRadius(r.Context(), center.Longitude, center.Latitude, distance)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.List(w, len(found), found)
}
