package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// tokenService manages opaque auth tokens. Tokens carry no decodable
// structure; every request resolves the credential by hashed lookup.
type tokenService struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewTokenService creates a new TokenServicer with the given token lifetime.
func NewTokenService(db *gorm.DB, ttl time.Duration) TokenServicer {
	return &tokenService{db: db, ttl: ttl}
}

// hashToken returns the SHA-256 hex digest of a raw token string.
func hashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}

// IssueToken generates a new opaque token for the user and stores its hash.
// The raw token is returned exactly once and never persisted.
func (s *tokenService) IssueToken(userID string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	raw := hex.EncodeToString(buf)

	token := &models.AuthToken{
		UserID:    userID,
		TokenHash: hashToken(raw),
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.db.Create(token).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return raw, nil
}

// ResolveToken looks up a raw token and returns the owning user ID.
// Expired tokens are removed on sight.
func (s *tokenService) ResolveToken(raw string) (string, error) {
	var token models.AuthToken
	if err := s.db.Where("token_hash = ?", hashToken(raw)).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUnauthorized
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if time.Now().After(token.ExpiresAt) {
		if err := s.db.Delete(&token).Error; err != nil {
			return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return "", apperrors.ErrUnauthorized
	}

	return token.UserID, nil
}

// RevokeToken removes a single token, logging the caller out of one session.
func (s *tokenService) RevokeToken(raw string) error {
	if err := s.db.Where("token_hash = ?", hashToken(raw)).Delete(&models.AuthToken{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// RevokeUserTokens removes all tokens for a user. Called on account deletion.
func (s *tokenService) RevokeUserTokens(userID string) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
