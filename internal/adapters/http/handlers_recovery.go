package http

import (
	"net/http"

	"github.com/consolebusters/account-service/internal/application"
)

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(r.Context(), w, "forgot_password", err)
		return
	}
	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		writeMappedError(r.Context(), w, "forgot_password", err)
		return
	}
	writeMessage(w, http.StatusOK, "A password reset link has been emailed to you")
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req application.ResetPasswordRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(r.Context(), w, "reset_password", err)
		return
	}
	if err := h.service.ResetPassword(r.Context(), req); err != nil {
		writeMappedError(r.Context(), w, "reset_password", err)
		return
	}
	writeMessage(w, http.StatusOK, "Password reset successful. You can now login with your new password.")
}
