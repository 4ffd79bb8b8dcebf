package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
)

type SavedDestinationRepository interface {
	Add(ctx context.Context, saved *domain.SavedDestination) (*domain.SavedDestination, error)
	Remove(ctx context.Context, userID, destinationID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.SavedDestinationItem, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountByDestination(ctx context.Context, destinationID uuid.UUID) (int64, error)
}
