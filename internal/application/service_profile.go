package application

import (
	"context"

	"github.com/consolebusters/account-service/internal/ports"
	"github.com/google/uuid"
)

// GetAccount returns the sanitized view of a single account.
func (s *Service) GetAccount(ctx context.Context, accountID uuid.UUID) (AccountView, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return AccountView{}, err
	}
	return toAccountView(account), nil
}

// UpdateProfile applies the provided non-empty profile fields.
func (s *Service) UpdateProfile(ctx context.Context, accountID uuid.UUID, req UpdateProfileRequest) (AccountView, error) {
	update := ports.ProfileUpdate{
		AvatarURL:     req.AvatarURL,
		CoverImageURL: req.CoverImageURL,
	}
	if req.FullName != "" {
		update.FullName = req.FullName
	}
	if req.Email != "" {
		email, err := normalizeEmail(req.Email)
		if err != nil {
			return AccountView{}, err
		}
		update.Email = email
	}
	if req.Username != "" {
		username, err := normalizeUsername(req.Username)
		if err != nil {
			return AccountView{}, err
		}
		update.Username = username
	}

	account, err := s.accounts.UpdateProfile(ctx, accountID, update, s.nowFn())
	if err != nil {
		return AccountView{}, err
	}
	return toAccountView(account), nil
}
