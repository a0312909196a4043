package store

import (
	"context"
	"errors"
	"time"

	"github.com/scimplatform/console/internal/console/domain"
	"github.com/scimplatform/console/pkg/idx"
)

// ErrNotFound reports a lookup that matched nothing.
var ErrNotFound = errors.New("store: not found")

// Store is the console's data access interface. The console persists exactly
// one thing: operator sessions, so a reload or a console restart does not
// log anyone out. Concrete drivers live under drivers/.
type Store interface {
	Sessions() Sessions

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Sessions is the operator-session repository. Tokens arrive already sealed;
// the store never sees plaintext credentials.
type Sessions interface {
	// CreateSession inserts a new session (id provided by the app via ULID).
	CreateSession(ctx context.Context, rec SessionRecord) error

	// GetSession returns a session by id, or ErrNotFound.
	GetSession(ctx context.Context, id idx.ID) (SessionRecord, error)

	// DeleteSession removes a session. Deleting an absent session is not an
	// error.
	DeleteSession(ctx context.Context, id idx.ID) error

	// DeleteExpiredSessions removes all sessions that expired before now and
	// reports how many were removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// SessionRecord is the stored form of a domain.Session: same identity and
// lifetime, but the token is sealed ciphertext.
type SessionRecord struct {
	ID          idx.ID
	SealedToken []byte
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Expired reports whether the record's lifetime has passed.
func (r SessionRecord) Expired(now time.Time) bool {
	return domain.Session{ExpiresAt: r.ExpiresAt}.Expired(now)
}
