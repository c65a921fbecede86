package tui

import (
	"github.com/jrsteele09/boutik-admin/internal/errors"
)

const (
	noticeSessionExpired = "Your session has expired. Please sign in again."
	noticeBadCredentials = "Incorrect email or password."
	noticeUnreachable    = "Cannot reach the server. Check your connection and try again."
	noticeForbidden      = "You don't have permission to do that."
	noticeUnexpected     = "Something went wrong. Please try again."
)

// errorNotice turns an API error into the one line shown to the user
func errorNotice(err error) string {
	e := errors.Normalize(err)
	if e == nil {
		return ""
	}
	switch e.Kind() {
	case errors.KindNetwork:
		return noticeUnreachable
	case errors.KindRefresh:
		return noticeSessionExpired
	case errors.KindAuth:
		if errors.Is(e, errors.ErrForbidden) {
			return noticeForbidden
		}
		return noticeBadCredentials
	case errors.KindValidation:
		var verr *errors.ValidationError
		if errors.As(e, &verr) && verr.Reason != "" {
			if verr.Field != "" {
				return verr.Field + ": " + verr.Reason
			}
			return verr.Reason
		}
	}
	return noticeUnexpected
}
