package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
)

type DestinationRepository interface {
	Create(ctx context.Context, dest *domain.Destination) (*domain.Destination, error)
	Update(ctx context.Context, dest *domain.Destination) (*domain.Destination, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Destination, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, filter domain.DestinationFilter) ([]domain.Destination, error)
	Count(ctx context.Context, filter domain.DestinationFilter) (int64, error)
	ListFeatured(ctx context.Context, limit int) ([]domain.Destination, error)
	ListByCategories(ctx context.Context, categories []string, limit int) ([]domain.Destination, error)
	SetReviewStats(ctx context.Context, id uuid.UUID, rating float64, reviewCount int) error
}
