// internal/app/features/jobs/stats.go
package jobs

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/joblane/joblane/internal/app/system/respond"
)

// HandleStats serves GET /stats/{topic}: per-experience-level counts and
// salary/position aggregates for jobs matching the topic phrase.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	topic := strings.ReplaceAll(chi.URLParam(r, "topic"), "-", " ")

	stats, err := h.jobs.Stats(r.Context(), topic)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.OK(w, stats)
}
