package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/repository/ports"
)

type VerificationRepository struct {
	db *sqlx.DB
}

func NewVerificationRepo(db *sqlx.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) Create(ctx context.Context, code *domain.VerificationCode) (*domain.VerificationCode, error) {
	const query = `
		INSERT INTO verification_code (user_id, purpose, otp_hash, otp_salt, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, purpose, otp_hash, otp_salt, expires_at, consumed, created_at
	`
	var stored domain.VerificationCode
	if err := r.db.GetContext(ctx, &stored, query, code.UserID, code.Purpose, code.OTPHash, code.OTPSalt, code.ExpiresAt); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *VerificationRepository) FindActive(ctx context.Context, userID uuid.UUID, purpose domain.VerificationPurpose) (*domain.VerificationCode, error) {
	const query = `
		SELECT id, user_id, purpose, otp_hash, otp_salt, expires_at, consumed, created_at
		FROM verification_code
		WHERE user_id = $1 AND purpose = $2 AND NOT consumed AND expires_at > NOW()
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	var code domain.VerificationCode
	if err := r.db.GetContext(ctx, &code, query, userID, purpose); err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *VerificationRepository) Consume(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE verification_code SET consumed = TRUE WHERE id = $1 AND NOT consumed`, id)
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

func (r *VerificationRepository) InvalidateForUser(ctx context.Context, userID uuid.UUID, purpose domain.VerificationPurpose) error {
	_, err := r.db.ExecContext(ctx, `UPDATE verification_code SET consumed = TRUE WHERE user_id = $1 AND purpose = $2 AND NOT consumed`, userID, purpose)
	return err
}

var _ ports.VerificationRepository = (*VerificationRepository)(nil)
