package http

import (
	"net/http"

	"github.com/consolebusters/account-service/internal/application"
	"github.com/go-chi/chi/v5"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

func (h *Handler) readyz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ready")
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req application.RegisterRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(r.Context(), w, "register", err)
		return
	}

	res, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "register", err)
		return
	}
	writeSuccess(w, http.StatusCreated, res)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req application.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(r.Context(), w, "login", err)
		return
	}

	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "login", err)
		return
	}
	if !res.RequiresOTP {
		h.setTokenCookies(w, res.AccessToken, res.RefreshToken)
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) loginOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OTP string `json:"otp"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(r.Context(), w, "login_otp", err)
		return
	}

	res, err := h.service.VerifyLoginOTP(r.Context(), req.OTP)
	if err != nil {
		writeMappedError(r.Context(), w, "login_otp", err)
		return
	}
	h.setTokenCookies(w, res.AccessToken, res.RefreshToken)
	writeSuccess(w, http.StatusOK, res)
}

// refresh reads the token from the body, the refreshToken cookie, or the
// Authorization header, in that order.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeBody(w, r, &req); err != nil {
			writeValidationError(r.Context(), w, "refresh", err)
			return
		}
	}
	token := req.RefreshToken
	if token == "" {
		if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
			token = cookie.Value
		}
	}
	if token == "" {
		if raw, err := bearerTokenFromHeader(r.Header.Get("Authorization")); err == nil {
			token = raw
		}
	}

	res, err := h.service.Refresh(r.Context(), token)
	if err != nil {
		writeMappedError(r.Context(), w, "refresh", err)
		return
	}
	h.setTokenCookies(w, res.AccessToken, res.RefreshToken)
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeMissingBearerError(r.Context(), w, "logout")
		return
	}
	if err := h.service.Logout(r.Context(), claims.AccountID); err != nil {
		writeMappedError(r.Context(), w, "logout", err)
		return
	}
	h.clearTokenCookies(w)
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	res, err := h.service.VerifyEmail(r.Context(), token)
	if err != nil {
		writeMappedError(r.Context(), w, "verify_email", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) requestEmailVerification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(r.Context(), w, "request_email_verification", err)
		return
	}
	if err := h.service.RequestEmailVerification(r.Context(), req.Email); err != nil {
		writeMappedError(r.Context(), w, "request_email_verification", err)
		return
	}
	writeMessage(w, http.StatusOK, "Verification email sent")
}

func (h *Handler) setTokenCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(h.cookies.AccessTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(h.cookies.RefreshTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearTokenCookies(w http.ResponseWriter) {
	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.cookies.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
