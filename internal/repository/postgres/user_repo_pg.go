package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/repository/ports"
)

const userColumns = `
	id, email, username, first_name, last_name, avatar_url, role, interests,
	password_hash, password_salt, is_active, is_staff, email_verified,
	created_at, updated_at
`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const query = `
		INSERT INTO user_account (email, username, first_name, last_name, role, interests, password_hash, password_salt)
		VALUES (:email, :username, :first_name, :last_name, :role, :interests, :password_hash, :password_salt)
		RETURNING ` + userColumns

	args := map[string]any{
		"email":         user.Email,
		"username":      nullString(user.Username),
		"first_name":    nullString(user.FirstName),
		"last_name":     nullString(user.LastName),
		"role":          user.Role,
		"interests":     pq.StringArray(user.Interests),
		"password_hash": user.PasswordHash,
		"password_salt": user.PasswordSalt,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.User
		if err := rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *UserRepository) UpsertGoogleUser(ctx context.Context, email string, firstName *string, avatarURL *string) (*domain.User, error) {
	const query = `
		INSERT INTO user_account (email, first_name, avatar_url, email_verified)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (email) DO UPDATE
		SET first_name = COALESCE(user_account.first_name, EXCLUDED.first_name),
		    avatar_url = COALESCE(EXCLUDED.avatar_url, user_account.avatar_url),
		    email_verified = TRUE,
		    updated_at = NOW()
		RETURNING ` + userColumns

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email, nullString(firstName), nullString(avatarURL)); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user_account WHERE email = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user_account WHERE id = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user_account ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryxContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.StructScan(&user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM user_account`); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	const query = `
		UPDATE user_account
		SET username = :username,
		    first_name = :first_name,
		    last_name = :last_name,
		    avatar_url = :avatar_url,
		    role = :role,
		    updated_at = NOW()
		WHERE id = :id
		RETURNING ` + userColumns

	args := map[string]any{
		"id":         user.ID,
		"username":   nullString(user.Username),
		"first_name": nullString(user.FirstName),
		"last_name":  nullString(user.LastName),
		"avatar_url": nullString(user.AvatarURL),
		"role":       user.Role,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.User
		if err := rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error {
	const query = `
		UPDATE user_account
		SET password_hash = $2, password_salt = $3, updated_at = NOW()
		WHERE id = $1
	`
	return r.execExpectingRow(ctx, query, id, passwordHash, passwordSalt)
}

func (r *UserRepository) SetInterests(ctx context.Context, id uuid.UUID, interests []string) error {
	const query = `UPDATE user_account SET interests = $2, updated_at = NOW() WHERE id = $1`
	return r.execExpectingRow(ctx, query, id, pq.StringArray(interests))
}

func (r *UserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	const query = `UPDATE user_account SET is_active = $2, updated_at = NOW() WHERE id = $1`
	return r.execExpectingRow(ctx, query, id, active)
}

func (r *UserRepository) SetStaff(ctx context.Context, id uuid.UUID, staff bool) error {
	const query = `UPDATE user_account SET is_staff = $2, updated_at = NOW() WHERE id = $1`
	return r.execExpectingRow(ctx, query, id, staff)
}

func (r *UserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE user_account SET email_verified = TRUE, updated_at = NOW() WHERE id = $1`
	return r.execExpectingRow(ctx, query, id)
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.execExpectingRow(ctx, `DELETE FROM user_account WHERE id = $1`, id)
}

func (r *UserRepository) execExpectingRow(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
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

var _ ports.UserRepository = (*UserRepository)(nil)
