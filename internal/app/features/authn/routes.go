// internal/app/features/authn/routes.go
package authn

import "github.com/go-chi/chi/v5"

// Register attaches the account routes onto the API router.
func Register(r chi.Router, h *Handler) {
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Post("/password/forgot", h.HandleForgotPassword)
	r.Put("/password/reset/{token}", h.HandleResetPassword)
}
