package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/repository/ports"
)

type SavedDestinationRepository struct {
	db *sqlx.DB
}

func NewSavedDestinationRepo(db *sqlx.DB) *SavedDestinationRepository {
	return &SavedDestinationRepository{db: db}
}

func (r *SavedDestinationRepository) Add(ctx context.Context, saved *domain.SavedDestination) (*domain.SavedDestination, error) {
	const query = `
		INSERT INTO saved_destination (user_id, destination_id)
		VALUES ($1, $2)
		RETURNING id, user_id, destination_id, created_at
	`

	var userID any
	if saved.UserID != nil {
		userID = *saved.UserID
	}

	var stored domain.SavedDestination
	if err := r.db.GetContext(ctx, &stored, query, userID, saved.DestinationID); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *SavedDestinationRepository) Remove(ctx context.Context, userID, destinationID uuid.UUID) error {
	const query = `DELETE FROM saved_destination WHERE user_id = $1 AND destination_id = $2`
	result, err := r.db.ExecContext(ctx, query, userID, destinationID)
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

// savedRow flattens the bookmark join for StructScan; ListByUser rebuilds
// the nested item from it.
type savedRow struct {
	domain.SavedDestination
	Destination domain.Destination `db:"destination"`
	OwnerID     *uuid.UUID         `db:"owner_id"`
	OwnerEmail  *string            `db:"owner_email"`
	OwnerUser   *string            `db:"owner_username"`
	OwnerFirst  *string            `db:"owner_first_name"`
	OwnerLast   *string            `db:"owner_last_name"`
	OwnerAvatar *string            `db:"owner_avatar_url"`
	OwnerRole   *string            `db:"owner_role"`
}

func (r *SavedDestinationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.SavedDestinationItem, error) {
	const query = `
		SELECT
			s.id, s.user_id, s.destination_id, s.created_at,
			d.id AS "destination.id",
			d.user_id AS "destination.user_id",
			d.title AS "destination.title",
			d.slug AS "destination.slug",
			d.description AS "destination.description",
			d.category AS "destination.category",
			d.region AS "destination.region",
			d.city AS "destination.city",
			d.address AS "destination.address",
			d.latitude AS "destination.latitude",
			d.longitude AS "destination.longitude",
			d.featured AS "destination.featured",
			d.status AS "destination.status",
			d.rating AS "destination.rating",
			d.review_count AS "destination.review_count",
			d.images AS "destination.images",
			d.gallery_images AS "destination.gallery_images",
			d.created_at AS "destination.created_at",
			d.updated_at AS "destination.updated_at",
			u.id AS owner_id,
			u.email AS owner_email,
			u.username AS owner_username,
			u.first_name AS owner_first_name,
			u.last_name AS owner_last_name,
			u.avatar_url AS owner_avatar_url,
			u.role AS owner_role
		FROM saved_destination s
		JOIN destination d ON d.id = s.destination_id
		LEFT JOIN user_account u ON u.id = s.user_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryxContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.SavedDestinationItem, 0)
	for rows.Next() {
		var row savedRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		item := domain.SavedDestinationItem{
			Saved:       row.SavedDestination,
			Destination: row.Destination,
		}
		if row.OwnerID != nil {
			user := domain.User{
				ID:        *row.OwnerID,
				Username:  row.OwnerUser,
				FirstName: row.OwnerFirst,
				LastName:  row.OwnerLast,
				AvatarURL: row.OwnerAvatar,
			}
			if row.OwnerEmail != nil {
				user.Email = *row.OwnerEmail
			}
			if row.OwnerRole != nil {
				user.Role = domain.UserRole(*row.OwnerRole)
			}
			item.User = &user
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *SavedDestinationRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM saved_destination WHERE user_id = $1`, userID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SavedDestinationRepository) CountByDestination(ctx context.Context, destinationID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM saved_destination WHERE destination_id = $1`, destinationID); err != nil {
		return 0, err
	}
	return count, nil
}

var _ ports.SavedDestinationRepository = (*SavedDestinationRepository)(nil)
