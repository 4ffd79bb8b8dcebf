package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/repository/ports"
)

const reviewSelect = `
	SELECT
		r.id,
		r.destination_id,
		r.user_id,
		r.rating,
		r.title,
		r.content,
		r.helpful,
		r.reported,
		r.created_at,
		r.updated_at,
		u.username AS author_username,
		u.first_name AS author_first_name,
		u.avatar_url AS author_avatar_url
	FROM destination_review r
	LEFT JOIN user_account u ON u.id = r.user_id
`

type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepo(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	const query = `
		INSERT INTO destination_review (destination_id, user_id, rating, title, content)
		VALUES (:destination_id, :user_id, :rating, :title, :content)
		RETURNING id, destination_id, user_id, rating, title, content, helpful, reported, created_at, updated_at
	`

	var userID any
	if review.UserID != nil {
		userID = *review.UserID
	}
	args := map[string]any{
		"destination_id": review.DestinationID,
		"user_id":        userID,
		"rating":         review.Rating,
		"title":          review.Title,
		"content":        review.Content,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.Review
		if err := rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	query := reviewSelect + ` WHERE r.id = $1`
	var review domain.Review
	if err := r.db.GetContext(ctx, &review, query, id); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) ListByDestination(ctx context.Context, destinationID uuid.UUID, limit, offset int) ([]domain.Review, error) {
	query := reviewSelect + `
		WHERE r.destination_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryReviews(ctx, query, destinationID, limit, offset)
}

func (r *ReviewRepository) ListRecent(ctx context.Context, destinationID uuid.UUID, limit int) ([]domain.Review, error) {
	query := reviewSelect + `
		WHERE r.destination_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2
	`
	return r.queryReviews(ctx, query, destinationID, limit)
}

func (r *ReviewRepository) queryReviews(ctx context.Context, query string, args ...any) ([]domain.Review, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		if err := rows.StructScan(&review); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) CountByDestination(ctx context.Context, destinationID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM destination_review WHERE destination_id = $1`, destinationID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ReviewRepository) Stats(ctx context.Context, destinationID uuid.UUID) (*domain.ReviewStats, error) {
	const query = `
		SELECT
			COALESCE(AVG(rating)::float8, 0) AS average_rating,
			COUNT(*)::int AS total_reviews
		FROM destination_review
		WHERE destination_id = $1
	`
	var stats domain.ReviewStats
	if err := r.db.GetContext(ctx, &stats, query, destinationID); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *ReviewRepository) IncrementHelpful(ctx context.Context, id uuid.UUID) (int, error) {
	const query = `
		UPDATE destination_review
		SET helpful = helpful + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING helpful
	`
	var helpful int
	if err := r.db.GetContext(ctx, &helpful, query, id); err != nil {
		return 0, err
	}
	return helpful, nil
}

func (r *ReviewRepository) MarkReported(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE destination_review
		SET reported = TRUE, updated_at = NOW()
		WHERE id = $1
	`
	return r.execExpectingRow(ctx, query, id)
}

func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.execExpectingRow(ctx, `DELETE FROM destination_review WHERE id = $1`, id)
}

func (r *ReviewRepository) execExpectingRow(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("review: %w", sql.ErrNoRows)
	}
	return nil
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)
