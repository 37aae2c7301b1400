// internal/app/features/jobs/list.go
package jobs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	jobstore "github.com/joblane/joblane/internal/app/store/jobs"
	"github.com/joblane/joblane/internal/app/system/apperr"
	"github.com/joblane/joblane/internal/app/system/respond"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleList serves GET /jobs with filter/sort/fields/q/page/limit
// query parameters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := jobstore.ParseListQuery(r.URL.Query())

	found, err := h.jobs.List(r.Context(), q)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.List(w, len(found), found)
}

// HandleGet serves GET /job/{id}/{slug}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.log, apperr.New(apperr.Validation, "invalid job id"))
		return
	}

	job, err := h.jobs.GetByIDSlug(r.Context(), id, chi.URLParam(r, "slug"))
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.OK(w, job)
}
