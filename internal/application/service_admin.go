package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/consolebusters/account-service/internal/domain"
	"github.com/consolebusters/account-service/internal/ports"
	"github.com/google/uuid"
)

// ListAccounts returns a paginated, filterable account listing for admins.
func (s *Service) ListAccounts(ctx context.Context, q ListAccountsQuery) (AccountListResponse, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}

	params := ports.ListAccountsParams{
		Search:  strings.TrimSpace(q.Search),
		Blocked: q.Blocked,
		Limit:   q.Limit,
		Offset:  (q.Page - 1) * q.Limit,
	}
	if role := strings.ToLower(strings.TrimSpace(q.Role)); role != "" {
		if !domain.ValidRole(domain.Role(role)) {
			return AccountListResponse{}, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
		}
		params.Role = domain.Role(role)
	}

	accounts, total, err := s.accounts.List(ctx, params)
	if err != nil {
		return AccountListResponse{}, err
	}
	views := make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, toAccountView(a))
	}
	return AccountListResponse{
		Accounts: views,
		Total:    total,
		Page:     q.Page,
		Limit:    q.Limit,
	}, nil
}

// UpdateAccountRole assigns a new role to an account.
func (s *Service) UpdateAccountRole(ctx context.Context, accountID uuid.UUID, role string) (AccountView, error) {
	normalized := domain.Role(strings.ToLower(strings.TrimSpace(role)))
	if !domain.ValidRole(normalized) {
		return AccountView{}, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	if err := s.accounts.UpdateRole(ctx, accountID, normalized, s.nowFn()); err != nil {
		return AccountView{}, err
	}
	return s.GetAccount(ctx, accountID)
}

// BlockToggle flips the block state of an account. Blocking sets the expiry
// window; unblocking clears both fields. Calling twice restores the original
// state.
func (s *Service) BlockToggle(ctx context.Context, accountID uuid.UUID) (AccountView, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return AccountView{}, err
	}

	now := s.nowFn()
	if account.IsBlocked {
		if err := s.accounts.SetBlocked(ctx, accountID, false, nil, now); err != nil {
			return AccountView{}, err
		}
		account.IsBlocked = false
		account.BlockedUntil = nil
	} else {
		until := now.Add(s.cfg.BlockDuration)
		if err := s.accounts.SetBlocked(ctx, accountID, true, &until, now); err != nil {
			return AccountView{}, err
		}
		account.IsBlocked = true
		account.BlockedUntil = &until
	}
	return toAccountView(account), nil
}

// DeleteAccount removes an account permanently.
func (s *Service) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	return s.accounts.Delete(ctx, accountID)
}

// ExpireBlocksSweep unblocks every account whose block window has passed,
// fetching batches until none remain. Per-account failures are logged and
// skipped so one bad row cannot stall the rest. It returns the number of
// accounts unblocked.
func (s *Service) ExpireBlocksSweep(ctx context.Context) (int, error) {
	batch := s.cfg.SweepBatchSize
	if batch <= 0 {
		batch = 100
	}

	unblocked := 0
	for {
		now := s.nowFn()
		expired, err := s.accounts.ListExpiredBlocks(ctx, now, batch)
		if err != nil {
			return unblocked, err
		}
		if len(expired) == 0 {
			return unblocked, nil
		}

		progressed := false
		for _, account := range expired {
			if err := s.accounts.SetBlocked(ctx, account.AccountID, false, nil, now); err != nil {
				slog.Default().ErrorContext(ctx, "block expiry unblock failed",
					"service", serviceName,
					"module", "application",
					"layer", "application",
					"operation", "expire_blocks_sweep",
					"outcome", "failure",
					"account_id", account.AccountID,
					"error", err,
				)
				continue
			}
			unblocked++
			progressed = true
		}
		// Rows that failed to update stay in the result set; without progress
		// the next fetch would return the same batch forever.
		if !progressed {
			return unblocked, nil
		}
		if len(expired) < batch {
			return unblocked, nil
		}
	}
}
