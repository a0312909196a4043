// Package session owns the console's authentication state: the single
// bearer token per operator session, held in durable storage so a page
// reload or console restart does not log anyone out.
//
// A session has exactly two states. Unauthenticated: no resolvable session
// record. Authenticated: a record exists and its token has not expired.
// Login and Logout are the only transitions operators drive; the backend
// rejecting a token (401) drives the third path, Invalidate.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/scimplatform/console/internal/console/domain"
	"github.com/scimplatform/console/internal/console/store"
	"github.com/scimplatform/console/pkg/adminsdk"
	"github.com/scimplatform/console/pkg/cryptox"
	"github.com/scimplatform/console/pkg/idx"
	"github.com/scimplatform/console/pkg/slogx"
)

var (
	// ErrInvalidCredentials reports a login rejected by the token endpoint.
	// Handlers surface this as a notice; it is not a failure of the console.
	ErrInvalidCredentials = errors.New("session: invalid credentials")

	// ErrNoSession reports that no usable session exists: never created,
	// logged out, expired, or invalidated after a 401.
	ErrNoSession = errors.New("session: no active session")
)

// Manager creates, resolves and destroys operator sessions. Tokens are
// sealed before they reach the store and unsealed on resolve.
type Manager struct {
	store       store.Store
	sdk         *adminsdk.SDKClient
	sealer      *cryptox.Sealer
	fallbackTTL time.Duration
}

// NewManager wires a session manager. fallbackTTL bounds the session
// lifetime when the token carries no usable expiry of its own.
func NewManager(st store.Store, sdk *adminsdk.SDKClient, sealer *cryptox.Sealer, fallbackTTL time.Duration) *Manager {
	return &Manager{
		store:       st,
		sdk:         sdk,
		sealer:      sealer,
		fallbackTTL: fallbackTTL,
	}
}

// Login exchanges operator credentials for a token and persists a new
// session. Rejected credentials return ErrInvalidCredentials; any other
// failure propagates for a generic notice.
func (m *Manager) Login(ctx context.Context, email, password string) (domain.Session, error) {
	log := slogx.FromContext(ctx)

	tok, err := m.sdk.PasswordGrant(ctx, email, password)
	if err != nil {
		var authErr *adminsdk.AuthError
		if errors.As(err, &authErr) {
			log.Info("login rejected", "email", email)
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, fmt.Errorf("token exchange failed: %w", err)
	}

	now := time.Now().UTC()
	sess := domain.Session{
		ID:        idx.New(),
		Token:     tok.AccessToken,
		ExpiresAt: tokenExpiry(tok.AccessToken, now, tok.ExpiresIn, m.fallbackTTL),
		CreatedAt: now,
	}

	sealed, err := m.sealer.Seal([]byte(sess.Token))
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to seal session token: %w", err)
	}

	err = m.store.Sessions().CreateSession(ctx, store.SessionRecord{
		ID:          sess.ID,
		SealedToken: sealed,
		ExpiresAt:   sess.ExpiresAt,
		CreatedAt:   sess.CreatedAt,
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}

	log.Info("session created", "session_id", sess.ID, "expires_at", sess.ExpiresAt)
	return sess, nil
}

// Resolve loads and unseals the session for the given id. Missing, expired
// or unreadable sessions return ErrNoSession; expired and unreadable
// records are removed on the way out.
func (m *Manager) Resolve(ctx context.Context, id idx.ID) (domain.Session, error) {
	rec, err := m.store.Sessions().GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrNoSession
		}
		return domain.Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	now := time.Now().UTC()
	if rec.Expired(now) {
		_ = m.store.Sessions().DeleteSession(ctx, id)
		return domain.Session{}, ErrNoSession
	}

	raw, err := m.sealer.Open(rec.SealedToken)
	if err != nil {
		// Sealing key changed or the row is corrupt; the token is gone
		// either way.
		_ = m.store.Sessions().DeleteSession(ctx, id)
		return domain.Session{}, ErrNoSession
	}

	token := string(raw)

	// The token's own exp claim wins over the stored expiry when the token
	// is a parseable JWT.
	if exp, ok := jwtExpiry(token); ok && now.After(exp) {
		_ = m.store.Sessions().DeleteSession(ctx, id)
		return domain.Session{}, ErrNoSession
	}

	return domain.Session{
		ID:        rec.ID,
		Token:     token,
		ExpiresAt: rec.ExpiresAt,
		CreatedAt: rec.CreatedAt,
	}, nil
}

// Logout destroys the session. It never makes a backend round trip.
func (m *Manager) Logout(ctx context.Context, id idx.ID) error {
	if err := m.store.Sessions().DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	slogx.FromContext(ctx).Info("session ended", "session_id", id)
	return nil
}

// Invalidate removes a session whose token the backend rejected, so
// subsequent renders see the unauthenticated state.
func (m *Manager) Invalidate(ctx context.Context, id idx.ID) {
	if err := m.store.Sessions().DeleteSession(ctx, id); err != nil {
		slogx.FromContext(ctx).Error("failed to invalidate session", "session_id", id, "error", err)
		return
	}
	slogx.FromContext(ctx).Warn("session invalidated after authorization loss", "session_id", id)
}

// PurgeExpired removes sessions whose lifetime has passed. Run periodically
// by the application's housekeeping ticker.
func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	return m.store.Sessions().DeleteExpiredSessions(ctx, time.Now().UTC())
}
