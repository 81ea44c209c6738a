package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/consolebusters/account-service/internal/domain"
	"github.com/consolebusters/account-service/internal/ports"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

func (r *accountRepository) Create(ctx context.Context, params ports.CreateAccountParams) (domain.Account, error) {
	rec := accountModel{
		Username:      params.Username,
		Email:         params.Email,
		FullName:      params.FullName,
		AvatarURL:     params.AvatarURL,
		CoverImageURL: params.CoverImageURL,
		PasswordHash:  params.PasswordHash,
		Role:          string(params.Role),
		CreatedAt:     params.RegisteredAt,
		UpdatedAt:     params.RegisteredAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Account{}, domain.ErrConflict
		}
		return domain.Account{}, err
	}
	return toDomainAccount(rec), nil
}

func (r *accountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (domain.Account, error) {
	var rec accountModel
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Account{}, domain.ErrNotFound
		}
		return domain.Account{}, err
	}
	return toDomainAccount(rec), nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	var rec accountModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Account{}, domain.ErrNotFound
		}
		return domain.Account{}, err
	}
	return toDomainAccount(rec), nil
}

func (r *accountRepository) GetByLogin(ctx context.Context, usernameOrEmail string) (domain.Account, error) {
	var rec accountModel
	if err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", usernameOrEmail, usernameOrEmail).
		Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Account{}, domain.ErrNotFound
		}
		return domain.Account{}, err
	}
	return toDomainAccount(rec), nil
}

func (r *accountRepository) SetPendingToken(ctx context.Context, accountID uuid.UUID, purpose domain.TokenPurpose, rec *domain.TokenRecord, updatedAt time.Time) error {
	hashCol, expiryCol, err := tokenColumns(purpose)
	if err != nil {
		return err
	}

	updates := map[string]any{
		hashCol:      nil,
		expiryCol:    nil,
		"updated_at": updatedAt,
	}
	if rec != nil {
		updates[hashCol] = rec.Hash
		updates[expiryCol] = rec.ExpiresAt
	}

	res := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("account_id = ?", accountID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ConsumeVerificationToken pairs the secret check and the verified flag flip
// in one transaction. A wrong hash and an expired one both surface as
// ErrInvalidOrExpiredToken.
func (r *accountRepository) ConsumeVerificationToken(ctx context.Context, tokenHash string, now time.Time) (domain.Account, error) {
	var rec accountModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("verification_token_hash = ?", tokenHash).
			Where("verification_token_expires_at > ?", now).
			Take(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrInvalidOrExpiredToken
			}
			return err
		}
		return tx.Model(&accountModel{}).
			Where("account_id = ?", rec.AccountID).
			Updates(map[string]any{
				"email_verified":                true,
				"verification_token_hash":       nil,
				"verification_token_expires_at": nil,
				"updated_at":                    now,
			}).Error
	})
	if err != nil {
		return domain.Account{}, err
	}
	rec.EmailVerified = true
	rec.VerificationTokenHash = nil
	rec.VerificationTokenExpiresAt = nil
	rec.UpdatedAt = now
	return toDomainAccount(rec), nil
}

// ConsumePasswordResetToken installs the new password hash in the same
// transaction that spends the secret.
func (r *accountRepository) ConsumePasswordResetToken(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) (domain.Account, error) {
	var rec accountModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("reset_token_hash = ?", tokenHash).
			Where("reset_token_expires_at > ?", now).
			Take(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrInvalidOrExpiredToken
			}
			return err
		}
		return tx.Model(&accountModel{}).
			Where("account_id = ?", rec.AccountID).
			Updates(map[string]any{
				"password_hash":          newPasswordHash,
				"reset_token_hash":       nil,
				"reset_token_expires_at": nil,
				"updated_at":             now,
			}).Error
	})
	if err != nil {
		return domain.Account{}, err
	}
	rec.PasswordHash = newPasswordHash
	rec.ResetTokenHash = nil
	rec.ResetTokenExpiresAt = nil
	rec.UpdatedAt = now
	return toDomainAccount(rec), nil
}

func (r *accountRepository) ConsumeOTPToken(ctx context.Context, tokenHash string, now time.Time) (domain.Account, error) {
	var rec accountModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("otp_hash = ?", tokenHash).
			Where("otp_expires_at > ?", now).
			Take(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrInvalidOrExpiredToken
			}
			return err
		}
		return tx.Model(&accountModel{}).
			Where("account_id = ?", rec.AccountID).
			Updates(map[string]any{
				"otp_hash":       nil,
				"otp_expires_at": nil,
				"updated_at":     now,
			}).Error
	})
	if err != nil {
		return domain.Account{}, err
	}
	rec.OTPHash = nil
	rec.OTPExpiresAt = nil
	rec.UpdatedAt = now
	return toDomainAccount(rec), nil
}

func (r *accountRepository) SetRefreshToken(ctx context.Context, accountID uuid.UUID, refreshToken string, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("account_id = ?", accountID).
		Updates(map[string]any{
			"refresh_token": nullableString(refreshToken),
			"updated_at":    updatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, accountID uuid.UUID, passwordHash string, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("account_id = ?", accountID).
		Updates(map[string]any{
			"password_hash": passwordHash,
			"updated_at":    updatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepository) UpdateProfile(ctx context.Context, accountID uuid.UUID, update ports.ProfileUpdate, updatedAt time.Time) (domain.Account, error) {
	updates := map[string]any{"updated_at": updatedAt}
	if update.FullName != "" {
		updates["full_name"] = update.FullName
	}
	if update.Email != "" {
		updates["email"] = update.Email
	}
	if update.Username != "" {
		updates["username"] = update.Username
	}
	if update.AvatarURL != "" {
		updates["avatar_url"] = update.AvatarURL
	}
	if update.CoverImageURL != "" {
		updates["cover_image_url"] = update.CoverImageURL
	}

	res := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("account_id = ?", accountID).
		Updates(updates)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return domain.Account{}, domain.ErrConflict
		}
		return domain.Account{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Account{}, domain.ErrNotFound
	}
	return r.GetByID(ctx, accountID)
}

func (r *accountRepository) SetTwoFactor(ctx context.Context, accountID uuid.UUID, enabled bool, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("account_id = ?", accountID).
		Updates(map[string]any{
			"two_factor_enabled": enabled,
			"updated_at":         updatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepository) SetBlocked(ctx context.Context, accountID uuid.UUID, blocked bool, blockedUntil *time.Time, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("account_id = ?", accountID).
		Updates(map[string]any{
			"is_blocked":    blocked,
			"blocked_until": blockedUntil,
			"updated_at":    updatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepository) ListExpiredBlocks(ctx context.Context, now time.Time, limit int) ([]domain.Account, error) {
	var rows []accountModel
	if err := r.db.WithContext(ctx).
		Where("is_blocked = TRUE").
		Where("blocked_until IS NOT NULL").
		Where("blocked_until <= ?", now).
		Order("blocked_until ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomainAccount(row))
	}
	return result, nil
}

func (r *accountRepository) List(ctx context.Context, params ports.ListAccountsParams) ([]domain.Account, int64, error) {
	query := r.db.WithContext(ctx).Model(&accountModel{})
	if params.Search != "" {
		pattern := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("username LIKE ? OR email LIKE ? OR LOWER(full_name) LIKE ?", pattern, pattern, pattern)
	}
	if params.Role != "" {
		query = query.Where("role = ?", string(params.Role))
	}
	if params.Blocked != nil {
		query = query.Where("is_blocked = ?", *params.Blocked)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []accountModel
	if err := query.Order("created_at DESC").Limit(params.Limit).Offset(params.Offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	result := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomainAccount(row))
	}
	return result, total, nil
}

func (r *accountRepository) UpdateRole(ctx context.Context, accountID uuid.UUID, role domain.Role, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("account_id = ?", accountID).
		Updates(map[string]any{
			"role":       string(role),
			"updated_at": updatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&accountModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func tokenColumns(purpose domain.TokenPurpose) (string, string, error) {
	switch purpose {
	case domain.PurposeEmailVerification:
		return "verification_token_hash", "verification_token_expires_at", nil
	case domain.PurposePasswordReset:
		return "reset_token_hash", "reset_token_expires_at", nil
	case domain.PurposeOTP:
		return "otp_hash", "otp_expires_at", nil
	default:
		return "", "", errors.New("unknown token purpose: " + string(purpose))
	}
}

func toDomainAccount(row accountModel) domain.Account {
	account := domain.Account{
		AccountID:        row.AccountID,
		Username:         row.Username,
		Email:            row.Email,
		FullName:         row.FullName,
		AvatarURL:        row.AvatarURL,
		CoverImageURL:    row.CoverImageURL,
		PasswordHash:     row.PasswordHash,
		Role:             domain.Role(row.Role),
		EmailVerified:    row.EmailVerified,
		TwoFactorEnabled: row.TwoFactorEnabled,
		IsBlocked:        row.IsBlocked,
		BlockedUntil:     row.BlockedUntil,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
	account.VerificationToken = toTokenRecord(row.VerificationTokenHash, row.VerificationTokenExpiresAt)
	account.ResetToken = toTokenRecord(row.ResetTokenHash, row.ResetTokenExpiresAt)
	account.OTPToken = toTokenRecord(row.OTPHash, row.OTPExpiresAt)
	if row.RefreshToken != nil {
		account.RefreshToken = *row.RefreshToken
	}
	return account
}

func toTokenRecord(hash *string, expiresAt *time.Time) *domain.TokenRecord {
	if hash == nil || expiresAt == nil {
		return nil
	}
	return &domain.TokenRecord{Hash: *hash, ExpiresAt: *expiresAt}
}

func nullableString(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
