package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/scimplatform/console/internal/console/store"
	"github.com/scimplatform/console/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "console.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestSessionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	rec := store.SessionRecord{
		ID:          idx.New(),
		SealedToken: []byte{0x01, 0x02, 0x03},
		ExpiresAt:   now.Add(time.Hour),
		CreatedAt:   now,
	}

	require.NoError(t, s.Sessions().CreateSession(ctx, rec))

	got, err := s.Sessions().GetSession(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.ID, got.ID)
	require.Equal(t, rec.SealedToken, got.SealedToken)
	require.True(t, rec.ExpiresAt.Equal(got.ExpiresAt))
	require.True(t, rec.CreatedAt.Equal(got.CreatedAt))
}

func TestGetSession_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Sessions().GetSession(context.Background(), idx.New())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := store.SessionRecord{
		ID:          idx.New(),
		SealedToken: []byte("sealed"),
		ExpiresAt:   time.Now().Add(time.Hour),
		CreatedAt:   time.Now(),
	}
	require.NoError(t, s.Sessions().CreateSession(ctx, rec))

	require.NoError(t, s.Sessions().DeleteSession(ctx, rec.ID))
	_, err := s.Sessions().GetSession(ctx, rec.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting an absent session is not an error.
	require.NoError(t, s.Sessions().DeleteSession(ctx, rec.ID))
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	expired := store.SessionRecord{
		ID:          idx.New(),
		SealedToken: []byte("a"),
		ExpiresAt:   now.Add(-time.Minute),
		CreatedAt:   now.Add(-2 * time.Hour),
	}
	live := store.SessionRecord{
		ID:          idx.New(),
		SealedToken: []byte("b"),
		ExpiresAt:   now.Add(time.Hour),
		CreatedAt:   now,
	}
	require.NoError(t, s.Sessions().CreateSession(ctx, expired))
	require.NoError(t, s.Sessions().CreateSession(ctx, live))

	removed, err := s.Sessions().DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)

	_, err = s.Sessions().GetSession(ctx, expired.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Sessions().GetSession(ctx, live.ID)
	require.NoError(t, err)
}

func TestApplyMigrationsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
}
