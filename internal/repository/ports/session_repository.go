package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.Session, error)
	FindActiveByToken(ctx context.Context, token string) (*domain.Session, error)
	Deactivate(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
