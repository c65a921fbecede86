package credentials_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/boutik-admin/credentials"
	"github.com/jrsteele09/boutik-admin/credentials/repofake"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestCredentials_SaveAndClear(t *testing.T) {
	creds := credentials.New(repofake.NewFakeCredentialsRepo())
	require.Empty(t, creds.AccessToken())
	require.Nil(t, creds.Token())

	require.Error(t, creds.Save(&oauth2.Token{}))

	require.NoError(t, creds.Save(&oauth2.Token{AccessToken: "a1", RefreshToken: "r1"}))
	require.Equal(t, "a1", creds.AccessToken())
	require.Equal(t, "r1", creds.RefreshToken())

	t.Run("refresh token kept when not rotated", func(t *testing.T) {
		require.NoError(t, creds.Save(&oauth2.Token{AccessToken: "a2"}))
		require.Equal(t, "a2", creds.AccessToken())
		require.Equal(t, "r1", creds.RefreshToken())
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		require.NoError(t, creds.Clear())
		require.NoError(t, creds.Clear())
		require.Empty(t, creds.AccessToken())
		require.Empty(t, creds.RefreshToken())
	})
}

func TestCredentials_AccessTokenExpiry(t *testing.T) {
	creds := credentials.New(repofake.NewFakeCredentialsRepo())

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	}).SignedString([]byte("any-key"))
	require.NoError(t, err)

	require.NoError(t, creds.Save(&oauth2.Token{AccessToken: signed}))
	got, ok := creds.AccessTokenExpiry()
	require.True(t, ok)
	require.True(t, exp.Equal(got))
	require.True(t, exp.Equal(creds.Token().Expiry))

	require.NoError(t, creds.Save(&oauth2.Token{AccessToken: "opaque"}))
	_, ok = creds.AccessTokenExpiry()
	require.False(t, ok)
}

// failingRepo refuses to delete the keys in failDelete
type failingRepo struct {
	credentials.Repo
	failDelete map[string]error
}

func (r failingRepo) Delete(key string) error {
	if err, ok := r.failDelete[key]; ok {
		return err
	}
	return r.Repo.Delete(key)
}

func TestCredentials_ClearAttemptsBothKeys(t *testing.T) {
	diskFull := errors.New("disk full")
	locked := errors.New("database is locked")

	t.Run("refresh token cleared when access token delete fails", func(t *testing.T) {
		repo := failingRepo{Repo: repofake.NewFakeCredentialsRepo(), failDelete: map[string]error{credentials.KeyAccessToken: diskFull}}
		creds := credentials.New(repo)
		require.NoError(t, creds.Save(&oauth2.Token{AccessToken: "a1", RefreshToken: "r1"}))

		err := creds.Clear()
		require.ErrorIs(t, err, diskFull)
		require.Empty(t, creds.RefreshToken())
	})

	t.Run("both failures are reported", func(t *testing.T) {
		repo := failingRepo{Repo: repofake.NewFakeCredentialsRepo(), failDelete: map[string]error{
			credentials.KeyAccessToken:  diskFull,
			credentials.KeyRefreshToken: locked,
		}}
		creds := credentials.New(repo)

		err := creds.Clear()
		require.ErrorIs(t, err, diskFull)
		require.ErrorIs(t, err, locked)
	})
}
