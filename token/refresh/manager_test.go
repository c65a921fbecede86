package refresh_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/jrsteele09/boutik-admin/token/refresh"
	refreshrepofake "github.com/jrsteele09/boutik-admin/token/refresh/repofake"
	"github.com/stretchr/testify/require"
)

func TestManagerCreateReplacesPreviousToken(t *testing.T) {
	repo := refreshrepofake.NewFakeRefreshTokenRepo()
	m := refresh.NewManager(repo, config.New())

	first, err := m.Create(7)
	require.NoError(t, err)
	require.Len(t, first, 64)

	second, err := m.Create(7)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, err = repo.Get(first)
	require.ErrorIs(t, err, errors.ErrNotFound)
	stored, err := repo.GetByUserID(7)
	require.NoError(t, err)
	require.Equal(t, second, stored.Token)
}

func TestManagerRotateIsOneTimeUse(t *testing.T) {
	m := refresh.NewManager(refreshrepofake.NewFakeRefreshTokenRepo(), config.New())

	token, err := m.Create(3)
	require.NoError(t, err)

	userID, next, err := m.Rotate(token)
	require.NoError(t, err)
	require.Equal(t, 3, userID)
	require.NotEqual(t, token, next)

	_, _, err = m.Rotate(token)
	require.ErrorIs(t, err, errors.ErrInvalidRefreshToken)

	_, _, err = m.Rotate(next)
	require.NoError(t, err)
}

func TestManagerRotateExpired(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	refresh.NowTimeFunc = func() time.Time { return start }
	t.Cleanup(func() { refresh.NowTimeFunc = time.Now })

	cfg := config.New()
	m := refresh.NewManager(refreshrepofake.NewFakeRefreshTokenRepo(), cfg)
	token, err := m.Create(1)
	require.NoError(t, err)

	refresh.NowTimeFunc = func() time.Time { return start.Add(cfg.GetRefreshTokenExpiry() + time.Second) }
	_, _, err = m.Rotate(token)
	require.ErrorIs(t, err, errors.ErrRefreshTokenExpired)
	_, _, err = m.Rotate(token)
	require.ErrorIs(t, err, errors.ErrInvalidRefreshToken)
}

func TestManagerRevoke(t *testing.T) {
	m := refresh.NewManager(refreshrepofake.NewFakeRefreshTokenRepo(), config.New())
	token, err := m.Create(9)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(9))
	require.NoError(t, m.Revoke(9))

	_, _, err = m.Rotate(token)
	require.ErrorIs(t, err, errors.ErrInvalidRefreshToken)
}
