package http

import (
	"net/http"
	"time"

	"github.com/consolebusters/account-service/internal/application"
	"github.com/go-chi/chi/v5"
)

// CookieOptions controls the token cookies set alongside JSON responses.
type CookieOptions struct {
	Secure          bool
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Handler is the HTTP adapter entrypoint for account use-cases.
// Keeping only application dependency here preserves clean adapter boundaries.
type Handler struct {
	service *application.Service
	cookies CookieOptions
}

// NewHandler constructs an HTTP handler bound to application service.
func NewHandler(service *application.Service, cookies CookieOptions) *Handler {
	return &Handler{service: service, cookies: cookies}
}

// NewRouter registers account HTTP routes and middleware stack.
// Centralizing routes here ensures consistent auth and error behavior across endpoints.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/register", handler.register)
		r.Post("/login", handler.login)
		r.Post("/login/otp", handler.loginOTP)
		r.Post("/refresh", handler.refresh)
		r.Get("/email-verification/{token}", handler.verifyEmail)
		r.Post("/email/verify-request", handler.requestEmailVerification)
		r.Post("/password/forgot", handler.forgotPassword)
		r.Post("/password/reset", handler.resetPassword)

		r.Group(func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Post("/logout", handler.logout)
			r.Get("/me", handler.getProfile)
			r.Patch("/me", handler.updateProfile)
			r.Post("/password/change", handler.changePassword)
			r.Post("/2fa/request", handler.requestTwoFactorToggle)
			r.Post("/2fa/confirm", handler.confirmTwoFactorToggle)

			r.Route("/admin/accounts", func(r chi.Router) {
				r.Use(handler.requireAdmin)
				r.Get("/", handler.listAccounts)
				r.Get("/{account_id}", handler.getAccount)
				r.Patch("/{account_id}/role", handler.updateAccountRole)
				r.Post("/{account_id}/block-toggle", handler.blockToggle)
				r.Delete("/{account_id}", handler.deleteAccount)
			})
		})
	})

	return r
}
