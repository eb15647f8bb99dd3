package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MustafaTaha09/Complaint-System/internal/apperr"
	"github.com/MustafaTaha09/Complaint-System/internal/logging"
	"github.com/MustafaTaha09/Complaint-System/internal/models"
)

const (
	reasonNotFound = "Refresh token not found!"
	reasonExpired  = "Refresh token was expired. Please make a new signin request"
)

// RefreshTokenService owns the refresh-token lifecycle: issue, look up,
// expire lazily, revoke. A user has at most one live token; creation is
// revoke-then-issue inside a single transaction.
type RefreshTokenService struct {
	DB  *gorm.DB
	TTL time.Duration
}

// Create deletes any existing refresh token for the user and persists a
// fresh opaque one. Delete and insert commit atomically so concurrent
// logins cannot leave two live tokens behind.
func (s *RefreshTokenService) Create(ctx context.Context, userID uint) (*models.RefreshToken, error) {
	l := logging.FromContext(ctx).With("svc", "refresh_token.create", "user_id", userID)

	var token models.RefreshToken
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("user", "User not found with id: %d", userID)
			}
			return err
		}

		res := tx.Where("user_id = ?", user.ID).Delete(&models.RefreshToken{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			l.Info("deleted existing refresh token", "count", res.RowsAffected)
		}

		token = models.RefreshToken{
			UserID:    user.ID,
			Token:     uuid.NewString(),
			ExpiresAt: time.Now().Add(s.TTL),
		}
		return tx.Create(&token).Error
	})
	if err != nil {
		return nil, err
	}

	l.Info("created refresh token", "expires_at", token.ExpiresAt)
	return &token, nil
}

// FindByToken resolves an opaque token string. gorm.ErrRecordNotFound is
// passed through so callers can turn absence into a terminal rejection.
func (s *RefreshTokenService) FindByToken(ctx context.Context, tokenStr string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := s.DB.WithContext(ctx).Where("token = ?", tokenStr).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// VerifyExpiration deletes the token and rejects when it has expired;
// otherwise returns it unchanged. Expiry is checked lazily here, at use
// time, not by background eviction.
func (s *RefreshTokenService) VerifyExpiration(ctx context.Context, token *models.RefreshToken) (*models.RefreshToken, error) {
	if token.ExpiresAt.Before(time.Now()) {
		logging.FromContext(ctx).Warn("refresh token expired, deleting",
			"token_id", token.ID, "expired_at", token.ExpiresAt)
		if err := s.DB.WithContext(ctx).Delete(token).Error; err != nil {
			return nil, err
		}
		return nil, apperr.TokenRefresh(token.Token, reasonExpired)
	}
	return token, nil
}

// DeleteByUserID is the explicit revocation path (logout). Returns the
// number of tokens removed, 0 or 1.
func (s *RefreshTokenService) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("user", "User not found with id: %d", userID)
		}
		return 0, err
	}
	res := s.DB.WithContext(ctx).Where("user_id = ?", user.ID).Delete(&models.RefreshToken{})
	if res.Error != nil {
		return 0, res.Error
	}
	logging.FromContext(ctx).Info("deleted refresh tokens", "user_id", userID, "count", res.RowsAffected)
	return res.RowsAffected, nil
}

// NotFoundRejection builds the terminal 403 for unknown token strings.
func NotFoundRejection(tokenStr string) error {
	return apperr.TokenRefresh(tokenStr, reasonNotFound)
}
