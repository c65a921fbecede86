package refresh

import (
	"time"
)

// StoredRefreshToken is the server-side record of a refresh token. The client only
// ever sees Token, an opaque random string.
type StoredRefreshToken struct {
	Token  string
	UserID int
	Iat    time.Time
}

// Repo stores refresh tokens keyed by the token string
type Repo interface {
	Upsert(refreshToken *StoredRefreshToken) error
	Delete(token string) error
	Get(token string) (*StoredRefreshToken, error)
	GetByUserID(userID int) (*StoredRefreshToken, error)
}
