// internal/app/features/jobs/routes.go
package jobs

import (
	"github.com/go-chi/chi/v5"
	"github.com/joblane/joblane/internal/app/system/auth"
	"github.com/joblane/joblane/internal/domain/models"
)

// Register attaches job routes onto the API router. Read routes are
// public; mutating routes require a bearer token with an employer or
// admin role, enforced before any handler logic runs.
func Register(r chi.Router, h *Handler, am *auth.Manager) {
	r.Get("/jobs", h.HandleList)
	r.Get("/jobs/{zipcode}/{distance}", h.HandleRadius)
	r.Get("/job/{id}/{slug}", h.HandleGet)
	r.Get("/stats/{topic}", h.HandleStats)

	r.Group(func(pr chi.Router) {
		pr.Use(am.Authenticate)
		pr.Use(auth.RequireRole(models.RoleEmployer, models.RoleAdmin))

		pr.Post("/job/new", h.HandleCreate)
		pr.Put("/job/{id}", h.HandleUpdate)
		pr.Delete("/job/{id}", h.HandleDelete)
	})
}
