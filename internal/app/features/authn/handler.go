// internal/app/features/authn/handler.go
package authn

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	userstore "github.com/joblane/joblane/internal/app/store/users"
	"github.com/joblane/joblane/internal/app/system/apperr"
	"github.com/joblane/joblane/internal/app/system/auth"
	"github.com/joblane/joblane/internal/app/system/respond"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves registration, login, and password-reset endpoints.
type Handler struct {
	users *userstore.Store
	am    *auth.Manager
	log   *zap.Logger
}

func NewHandler(db *mongo.Database, am *auth.Manager, logger *zap.Logger) *Handler {
	return &Handler{users: userstore.New(db), am: am, log: logger}
}

type tokenPayload struct {
	Token string `json:"token"`
}

// HandleRegister serves POST /register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.log, apperr.Wrap(apperr.Validation, err, "invalid request body"))
		return
	}

	user, err := h.users.Create(r.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	token, err := h.am.IssueToken(user.ID)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.Created(w, "user registered successfully", tokenPayload{Token: token})
}

// HandleLogin serves POST /login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.log, apperr.Wrap(apperr.Validation, err, "invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		respond.Error(w, h.log, apperr.New(apperr.Validation, "please enter email and password"))
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err == mongo.ErrNoDocuments {
		respond.Error(w, h.log, apperr.New(apperr.Unauthorized, "invalid email or password"))
		return
	}
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	if !h.users.CheckPassword(user, req.Password) {
		respond.Error(w, h.log, apperr.New(apperr.Unauthorized, "invalid email or password"))
		return
	}

	token, err := h.am.IssueToken(user.ID)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.OKMessage(w, "logged in successfully", tokenPayload{Token: token})
}

// HandleForgotPassword serves POST /password/forgot. There is no mail
// transport in this service, so the reset token is returned to the
// caller directly.
func (h *Handler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.log, apperr.Wrap(apperr.Validation, err, "invalid request body"))
		return
	}
	if req.Email == "" {
		respond.Error(w, h.log, apperr.New(apperr.Validation, "please enter your email"))
		return
	}

	token, err := h.users.IssueResetToken(r.Context(), req.Email)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.OKMessage(w, "password reset token issued", struct {
		ResetToken string `json:"resetToken"`
	}{ResetToken: token})
}

// HandleResetPassword serves PUT /password/reset/{token}.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.log, apperr.Wrap(apperr.Validation, err, "invalid request body"))
		return
	}

	user, err := h.users.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.Password)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	token, err := h.am.IssueToken(user.ID)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.OKMessage(w, "password updated successfully", tokenPayload{Token: token})
}
