package errors_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		kind   errors.Kind
	}{
		{http.StatusUnauthorized, errors.KindAuth},
		{http.StatusForbidden, errors.KindAuth},
		{http.StatusUnprocessableEntity, errors.KindValidation},
		{http.StatusBadRequest, errors.KindValidation},
		{http.StatusNotFound, errors.KindUnknown},
		{http.StatusInternalServerError, errors.KindUnknown},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := errors.FromStatus(tt.status, "detail")
			require.Equal(t, tt.kind, err.Kind())
			require.Equal(t, tt.status, err.StatusCode())
		})
	}
}

func TestAuthError_Sentinels(t *testing.T) {
	require.ErrorIs(t, &errors.AuthError{Status: http.StatusUnauthorized}, errors.ErrNotAuthenticated)
	require.ErrorIs(t, &errors.AuthError{Status: http.StatusForbidden}, errors.ErrForbidden)
}

func TestRefreshFailure_Unwrap(t *testing.T) {
	t.Run("no refresh token", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &errors.RefreshFailure{Cause: errors.CauseNoRefreshToken})
		require.ErrorIs(t, err, errors.ErrNoRefreshToken)
		require.ErrorIs(t, err, errors.ErrSessionExpired)
		require.NotErrorIs(t, err, errors.ErrRefreshRejected)

		var rf *errors.RefreshFailure
		require.ErrorAs(t, err, &rf)
		require.Equal(t, errors.CauseNoRefreshToken, rf.Cause)
	})

	t.Run("backend rejected keeps status", func(t *testing.T) {
		err := &errors.RefreshFailure{
			Cause: errors.CauseBackendRejected,
			Err:   &errors.AuthError{Status: http.StatusUnauthorized},
		}
		require.ErrorIs(t, err, errors.ErrRefreshRejected)
		require.ErrorIs(t, err, errors.ErrNotAuthenticated)
		require.Equal(t, http.StatusUnauthorized, err.StatusCode())
	})
}

func TestNormalize(t *testing.T) {
	require.Nil(t, errors.Normalize(nil))

	auth := &errors.AuthError{Status: http.StatusForbidden}
	require.Same(t, auth, errors.Normalize(fmt.Errorf("ctx: %w", auth)))

	require.Equal(t, errors.KindNetwork, errors.KindOf(context.Canceled))
	require.Equal(t, errors.KindNetwork, errors.KindOf(context.DeadlineExceeded))
	require.Equal(t, errors.KindUnknown, errors.KindOf(stderrors.New("boom")))
}

func TestValidationError_Message(t *testing.T) {
	err := &errors.ValidationError{Field: "username", Reason: "must be an email"}
	require.Equal(t, "validation error: username: must be an email", err.Error())
	require.ErrorIs(t, err, errors.ErrInvalidInput)
}
