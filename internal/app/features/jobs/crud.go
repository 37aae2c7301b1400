// internal/app/features/jobs/crud.go
package jobs

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	jobstore "github.com/joblane/joblane/internal/app/store/jobs"
	"github.com/joblane/joblane/internal/app/system/apperr"
	"github.com/joblane/joblane/internal/app/system/auth"
	"github.com/joblane/joblane/internal/app/system/respond"
	"github.com/joblane/joblane/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// jobRequest is the client-supplied body for creates. Server-derived
// fields (slug, location, posting date) are not accepted from clients.
type jobRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Email        string     `json:"email"`
	Address      string     `json:"address"`
	Company      string     `json:"company"`
	Industry     []string   `json:"industry"`
	JobType      string     `json:"jobType"`
	MinEducation string     `json:"minEducation"`
	Experience   string     `json:"experience"`
	Positions    int        `json:"positions"`
	Salary       float64    `json:"salary"`
	LastDate     *time.Time `json:"lastDate"`
}

// HandleCreate serves POST /job/new (employer/admin only).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.log, apperr.Wrap(apperr.Validation, err, "invalid request body"))
		return
	}

	job := models.Job{
		Title:        req.Title,
		Description:  req.Description,
		Email:        req.Email,
		Address:      req.Address,
		Company:      req.Company,
		Industry:     req.Industry,
		JobType:      req.JobType,
		MinEducation: req.MinEducation,
		Experience:   req.Experience,
		Positions:    req.Positions,
		Salary:       req.Salary,
	}
	if req.LastDate != nil {
		job.LastDate = *req.LastDate
	}
	if u, ok := auth.CurrentUser(r); ok {
		job.PostedBy = u.ID
	}

	created, err := h.jobs.Create(r.Context(), job)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.Created(w, "job created successfully", created)
}

// updateRequest mirrors jobstore.Update: absent fields stay untouched.
type updateRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Email        *string    `json:"email"`
	Address      *string    `json:"address"`
	Company      *string    `json:"company"`
	Industry     *[]string  `json:"industry"`
	JobType      *string    `json:"jobType"`
	MinEducation *string    `json:"minEducation"`
	Experience   *string    `json:"experience"`
	Positions    *int       `json:"positions"`
	Salary       *float64   `json:"salary"`
	LastDate     *time.Time `json:"lastDate"`
}

// HandleUpdate serves PUT /job/{id} (employer/admin only).
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.log, apperr.New(apperr.Validation, "invalid job id"))
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.log, apperr.Wrap(apperr.Validation, err, "invalid request body"))
		return
	}

	updated, err := h.jobs.ApplyUpdate(r.Context(), id, jobstore.Update{
		Title:        req.Title,
		Description:  req.Description,
		Email:        req.Email,
		Address:      req.Address,
		Company:      req.Company,
		Industry:     req.Industry,
		JobType:      req.JobType,
		MinEducation: req.MinEducation,
		Experience:   req.Experience,
		Positions:    req.Positions,
		Salary:       req.Salary,
		LastDate:     req.LastDate,
	})
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.OKMessage(w, "job updated successfully", updated)
}

// HandleDelete serves DELETE /job/{id} (employer/admin only).
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.log, apperr.New(apperr.Validation, "invalid job id"))
		return
	}

	if err := h.jobs.Delete(r.Context(), id); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.OKMessage(w, "job deleted successfully", nil)
}
