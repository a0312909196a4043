package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/scimplatform/console/internal/console/store"
	"github.com/scimplatform/console/pkg/idx"
)

type sessionsRepo struct {
	db *sql.DB
}

func (r *sessionsRepo) CreateSession(ctx context.Context, rec store.SessionRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, sealed_token, expires_at, created_at)
		VALUES (?, ?, ?, ?)`,
		rec.ID.String(),
		rec.SealedToken,
		rec.ExpiresAt.UTC().Unix(),
		rec.CreatedAt.UTC().Unix(),
	)
	return err
}

func (r *sessionsRepo) GetSession(ctx context.Context, id idx.ID) (store.SessionRecord, error) {
	var (
		rawID     string
		sealed    []byte
		expiresAt int64
		createdAt int64
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT id, sealed_token, expires_at, created_at
		FROM sessions WHERE id = ?`, id.String(),
	).Scan(&rawID, &sealed, &expiresAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.SessionRecord{}, store.ErrNotFound
		}
		return store.SessionRecord{}, err
	}

	return store.SessionRecord{
		ID:          idx.ID(rawID),
		SealedToken: sealed,
		ExpiresAt:   time.Unix(expiresAt, 0).UTC(),
		CreatedAt:   time.Unix(createdAt, 0).UTC(),
	}, nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, id idx.ID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id.String())
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, now.UTC().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
