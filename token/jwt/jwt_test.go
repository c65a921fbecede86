package jwt_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/boutik-admin/token"
	"github.com/jrsteele09/boutik-admin/token/jwt"
	"github.com/jrsteele09/boutik-admin/users"
	"github.com/stretchr/testify/require"
)

func TestCreateAndIntrospect(t *testing.T) {
	signer := token.NewHMACSigner("test-secret")
	creator := jwt.NewCreator(signer, 15*time.Minute)
	inspector := jwt.NewInspector(signer)

	user := &users.User{ID: 42, Email: "owner@tantana.mg", IsSuperuser: true}
	raw, exp, err := creator.CreateAccessToken(user)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	info, err := inspector.Introspect(raw)
	require.NoError(t, err)
	require.True(t, info.Active)
	require.Equal(t, 42, info.UserID)
	require.Equal(t, "owner@tantana.mg", info.Email)
	require.True(t, info.Superuser)
	require.NotEmpty(t, info.JTI)
	require.Equal(t, exp.Unix(), info.Exp.Unix())
}

func TestIntrospectRejects(t *testing.T) {
	signer := token.NewHMACSigner("test-secret")
	creator := jwt.NewCreator(signer, time.Minute)
	inspector := jwt.NewInspector(signer)

	raw, _, err := creator.CreateAccessToken(&users.User{ID: 1, Email: "a@b.com"})
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		info, err := inspector.Introspect("  ")
		require.ErrorIs(t, err, jwt.ErrInactiveToken)
		require.False(t, info.Active)
	})

	t.Run("wrong secret", func(t *testing.T) {
		info, err := jwt.NewInspector(token.NewHMACSigner("other")).Introspect(raw)
		require.ErrorIs(t, err, jwt.ErrInactiveToken)
		require.False(t, info.Active)
	})

	t.Run("expired", func(t *testing.T) {
		jwt.NowTimeFunc = func() time.Time { return time.Now().Add(2 * time.Minute) }
		t.Cleanup(func() { jwt.NowTimeFunc = time.Now })

		info, err := inspector.Introspect(raw)
		require.ErrorIs(t, err, jwt.ErrInactiveToken)
		require.False(t, info.Active)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := inspector.Introspect("not.a.jwt")
		require.ErrorIs(t, err, jwt.ErrInactiveToken)
	})
}
