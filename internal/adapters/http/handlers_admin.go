package http

import (
	"net/http"
	"strings"

	"github.com/consolebusters/account-service/internal/application"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	query := application.ListAccountsQuery{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Role:   strings.TrimSpace(r.URL.Query().Get("role")),
		Page:   parsePositiveInt(r.URL.Query().Get("page"), 1),
		Limit:  parsePositiveInt(r.URL.Query().Get("limit"), 20),
	}
	switch strings.TrimSpace(r.URL.Query().Get("blocked")) {
	case "true":
		v := true
		query.Blocked = &v
	case "false":
		v := false
		query.Blocked = &v
	}

	res, err := h.service.ListAccounts(r.Context(), query)
	if err != nil {
		writeMappedError(r.Context(), w, "list_accounts", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "account_id"))
	if err != nil {
		writeValidationError(r.Context(), w, "get_account", errInvalidAccountID)
		return
	}
	res, err := h.service.GetAccount(r.Context(), accountID)
	if err != nil {
		writeMappedError(r.Context(), w, "get_account", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) updateAccountRole(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "account_id"))
	if err != nil {
		writeValidationError(r.Context(), w, "update_account_role", errInvalidAccountID)
		return
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(r.Context(), w, "update_account_role", err)
		return
	}

	res, err := h.service.UpdateAccountRole(r.Context(), accountID, req.Role)
	if err != nil {
		writeMappedError(r.Context(), w, "update_account_role", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) blockToggle(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "account_id"))
	if err != nil {
		writeValidationError(r.Context(), w, "block_toggle", errInvalidAccountID)
		return
	}
	res, err := h.service.BlockToggle(r.Context(), accountID)
	if err != nil {
		writeMappedError(r.Context(), w, "block_toggle", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "account_id"))
	if err != nil {
		writeValidationError(r.Context(), w, "delete_account", errInvalidAccountID)
		return
	}
	if err := h.service.DeleteAccount(r.Context(), accountID); err != nil {
		writeMappedError(r.Context(), w, "delete_account", err)
		return
	}
	writeMessage(w, http.StatusOK, "Account deleted successfully")
}
