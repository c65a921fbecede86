package refresh

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Manager creates, checks and rotates refresh tokens. Each user holds at most one.
type Manager struct {
	repo   Repo
	config config.MockAPIConfig
}

func NewManager(repo Repo, cfg config.MockAPIConfig) *Manager {
	return &Manager{
		repo:   repo,
		config: cfg,
	}
}

// Create issues a new refresh token for userID, replacing any previous one
func (m *Manager) Create(userID int) (string, error) {
	if existing, err := m.repo.GetByUserID(userID); err == nil && existing != nil {
		if err := m.repo.Delete(existing.Token); err != nil {
			return "", fmt.Errorf("failed to delete existing refresh token: %w", err)
		}
	}

	tokenBytes := make([]byte, m.config.GetRefreshTokenLength())
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	tokenStr := hex.EncodeToString(tokenBytes)
	if err := m.repo.Upsert(&StoredRefreshToken{
		Token:  tokenStr,
		UserID: userID,
		Iat:    NowTimeFunc(),
	}); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return tokenStr, nil
}

// Rotate consumes token and issues its replacement. A token can be rotated once.
func (m *Manager) Rotate(token string) (userID int, next string, err error) {
	stored, err := m.repo.Get(token)
	if err != nil {
		return 0, "", errors.ErrInvalidRefreshToken
	}
	if m.IsExpired(stored) {
		_ = m.repo.Delete(token)
		return 0, "", errors.ErrRefreshTokenExpired
	}
	next, err = m.Create(stored.UserID)
	if err != nil {
		return 0, "", err
	}
	return stored.UserID, next, nil
}

// Revoke forgets every refresh token of userID
func (m *Manager) Revoke(userID int) error {
	existing, err := m.repo.GetByUserID(userID)
	if err != nil {
		return nil
	}
	return m.repo.Delete(existing.Token)
}

func (m *Manager) IsExpired(rt *StoredRefreshToken) bool {
	return NowTimeFunc().Sub(rt.Iat) > m.config.GetRefreshTokenExpiry()
}
