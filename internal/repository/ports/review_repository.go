package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	// ListByDestination orders by created_at descending with id as the
	// tie-break so pagination stays stable when timestamps collide.
	ListByDestination(ctx context.Context, destinationID uuid.UUID, limit, offset int) ([]domain.Review, error)
	ListRecent(ctx context.Context, destinationID uuid.UUID, limit int) ([]domain.Review, error)
	CountByDestination(ctx context.Context, destinationID uuid.UUID) (int64, error)
	Stats(ctx context.Context, destinationID uuid.UUID) (*domain.ReviewStats, error)
	IncrementHelpful(ctx context.Context, id uuid.UUID) (int, error)
	MarkReported(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
