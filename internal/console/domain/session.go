package domain

import (
	"time"

	"github.com/scimplatform/console/pkg/idx"
)

// Session is an operator's authenticated console session: a single bearer
// token, durably stored so the session survives a page reload and a console
// restart. It is destroyed by explicit logout or by the backend rejecting
// the token.
type Session struct {
	ID        idx.ID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session's token lifetime has passed.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
