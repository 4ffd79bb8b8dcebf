package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/repository/ports"
)

const destinationColumns = `
	id, user_id, title, slug, description, category, region, city, address,
	latitude, longitude, featured, status, rating, review_count,
	images, gallery_images, created_at, updated_at
`

type DestinationRepository struct {
	db *sqlx.DB
}

func NewDestinationRepo(db *sqlx.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

func (r *DestinationRepository) Create(ctx context.Context, dest *domain.Destination) (*domain.Destination, error) {
	const query = `
		INSERT INTO destination (
			user_id, title, slug, description, category, region, city, address,
			latitude, longitude, featured, status, images, gallery_images
		) VALUES (
			:user_id, :title, :slug, :description, :category, :region, :city, :address,
			:latitude, :longitude, :featured, :status, :images, :gallery_images
		)
		RETURNING ` + destinationColumns

	rows, err := r.db.NamedQueryContext(ctx, query, r.writeArgs(dest))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.Destination
		if err := rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *DestinationRepository) Update(ctx context.Context, dest *domain.Destination) (*domain.Destination, error) {
	const query = `
		UPDATE destination
		SET title = :title,
		    slug = :slug,
		    description = :description,
		    category = :category,
		    region = :region,
		    city = :city,
		    address = :address,
		    latitude = :latitude,
		    longitude = :longitude,
		    featured = :featured,
		    status = :status,
		    images = :images,
		    gallery_images = :gallery_images,
		    updated_at = NOW()
		WHERE id = :id
		RETURNING ` + destinationColumns

	args := r.writeArgs(dest)
	args["id"] = dest.ID

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.Destination
		if err := rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *DestinationRepository) writeArgs(dest *domain.Destination) map[string]any {
	var userID any
	if dest.UserID != nil {
		userID = *dest.UserID
	}
	return map[string]any{
		"user_id":        userID,
		"title":          dest.Title,
		"slug":           dest.Slug,
		"description":    nullString(dest.Description),
		"category":       nullString(dest.Category),
		"region":         nullString(dest.Region),
		"city":           nullString(dest.City),
		"address":        nullString(dest.Address),
		"latitude":       nullFloat(dest.Latitude),
		"longitude":      nullFloat(dest.Longitude),
		"featured":       dest.Featured,
		"status":         dest.Status,
		"images":         pq.StringArray(dest.Images),
		"gallery_images": pq.StringArray(dest.GalleryImages),
	}
}

func (r *DestinationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM destination WHERE id = $1`, id)
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

func (r *DestinationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	const query = `SELECT ` + destinationColumns + ` FROM destination WHERE id = $1`
	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, id); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) FindBySlug(ctx context.Context, slug string) (*domain.Destination, error) {
	const query = `SELECT ` + destinationColumns + ` FROM destination WHERE slug = $1`
	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, slug); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM destination WHERE slug = $1)`, slug); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *DestinationRepository) List(ctx context.Context, filter domain.DestinationFilter) ([]domain.Destination, error) {
	where, args, idx := listClauses(filter)
	args = append(args, filter.Limit, filter.Offset)

	query := fmt.Sprintf(`
		SELECT %s FROM destination
		%s
		ORDER BY featured DESC, created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, destinationColumns, where, idx, idx+1)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dests := make([]domain.Destination, 0)
	for rows.Next() {
		var dest domain.Destination
		if err := rows.StructScan(&dest); err != nil {
			return nil, err
		}
		dests = append(dests, dest)
	}
	return dests, rows.Err()
}

func (r *DestinationRepository) Count(ctx context.Context, filter domain.DestinationFilter) (int64, error) {
	where, args, _ := listClauses(filter)
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM destination `+where, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func listClauses(filter domain.DestinationFilter) (string, []any, int) {
	clauses := []string{"status = 'published'"}
	args := []any{}
	idx := 1

	if filter.Category != nil {
		clauses = append(clauses, fmt.Sprintf("category = $%d", idx))
		args = append(args, *filter.Category)
		idx++
	}
	if filter.Region != nil {
		clauses = append(clauses, fmt.Sprintf("region = $%d", idx))
		args = append(args, *filter.Region)
		idx++
	}
	if filter.Featured != nil {
		clauses = append(clauses, fmt.Sprintf("featured = $%d", idx))
		args = append(args, *filter.Featured)
		idx++
	}
	if strings.TrimSpace(filter.Query) != "" {
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR city ILIKE $%d)", idx, idx))
		args = append(args, "%"+strings.TrimSpace(filter.Query)+"%")
		idx++
	}

	return "WHERE " + strings.Join(clauses, " AND "), args, idx
}

func (r *DestinationRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Destination, error) {
	featured := true
	return r.List(ctx, domain.DestinationFilter{Featured: &featured, Limit: limit})
}

func (r *DestinationRepository) ListByCategories(ctx context.Context, categories []string, limit int) ([]domain.Destination, error) {
	const query = `
		SELECT ` + destinationColumns + `
		FROM destination
		WHERE status = 'published' AND category = ANY($1)
		ORDER BY rating DESC, review_count DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryxContext(ctx, query, pq.StringArray(categories), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dests := make([]domain.Destination, 0)
	for rows.Next() {
		var dest domain.Destination
		if err := rows.StructScan(&dest); err != nil {
			return nil, err
		}
		dests = append(dests, dest)
	}
	return dests, rows.Err()
}

func (r *DestinationRepository) SetReviewStats(ctx context.Context, id uuid.UUID, rating float64, reviewCount int) error {
	const query = `
		UPDATE destination
		SET rating = $2, review_count = $3, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, rating, reviewCount)
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

var _ ports.DestinationRepository = (*DestinationRepository)(nil)
