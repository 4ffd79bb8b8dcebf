package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/repository/ports"
)

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepo(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.Session, error) {
	const query = `
		INSERT INTO user_session (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, token, created_at, expires_at, is_active
	`
	var session domain.Session
	if err := r.db.GetContext(ctx, &session, query, userID, token, expiresAt); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) FindActiveByToken(ctx context.Context, token string) (*domain.Session, error) {
	const query = `
		SELECT id, user_id, token, created_at, expires_at, is_active
		FROM user_session
		WHERE token = $1 AND is_active AND expires_at > NOW()
	`
	var session domain.Session
	if err := r.db.GetContext(ctx, &session, query, token); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Deactivate(ctx context.Context, token string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE user_session SET is_active = FALSE WHERE token = $1`, token)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM user_session WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

var _ ports.SessionRepository = (*SessionRepository)(nil)
