package http

import (
	"net/http"

	"github.com/consolebusters/account-service/internal/application"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeMissingBearerError(r.Context(), w, "get_profile")
		return
	}
	res, err := h.service.GetAccount(r.Context(), claims.AccountID)
	if err != nil {
		writeMappedError(r.Context(), w, "get_profile", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeMissingBearerError(r.Context(), w, "update_profile")
		return
	}
	var req application.UpdateProfileRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(r.Context(), w, "update_profile", err)
		return
	}

	res, err := h.service.UpdateProfile(r.Context(), claims.AccountID, req)
	if err != nil {
		writeMappedError(r.Context(), w, "update_profile", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeMissingBearerError(r.Context(), w, "change_password")
		return
	}
	var req application.ChangePasswordRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(r.Context(), w, "change_password", err)
		return
	}

	if err := h.service.ChangePassword(r.Context(), claims.AccountID, req); err != nil {
		writeMappedError(r.Context(), w, "change_password", err)
		return
	}
	writeMessage(w, http.StatusOK, "Password changed successfully")
}

func (h *Handler) requestTwoFactorToggle(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeMissingBearerError(r.Context(), w, "request_two_factor_toggle")
		return
	}
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(r.Context(), w, "request_two_factor_toggle", err)
		return
	}

	if err := h.service.RequestTwoFactorToggle(r.Context(), claims.AccountID, req.Password); err != nil {
		writeMappedError(r.Context(), w, "request_two_factor_toggle", err)
		return
	}
	writeMessage(w, http.StatusOK, "A confirmation code has been emailed to you")
}

func (h *Handler) confirmTwoFactorToggle(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeMissingBearerError(r.Context(), w, "confirm_two_factor_toggle")
		return
	}
	var req struct {
		OTP string `json:"otp"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(r.Context(), w, "confirm_two_factor_toggle", err)
		return
	}

	res, err := h.service.ConfirmTwoFactorToggle(r.Context(), claims.AccountID, req.OTP)
	if err != nil {
		writeMappedError(r.Context(), w, "confirm_two_factor_toggle", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}
