package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
)

type VerificationRepository interface {
	Create(ctx context.Context, code *domain.VerificationCode) (*domain.VerificationCode, error)
	FindActive(ctx context.Context, userID uuid.UUID, purpose domain.VerificationPurpose) (*domain.VerificationCode, error)
	Consume(ctx context.Context, id int64) error
	InvalidateForUser(ctx context.Context, userID uuid.UUID, purpose domain.VerificationPurpose) error
}
