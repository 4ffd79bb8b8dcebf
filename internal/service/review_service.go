package service

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/google/uuid"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/access"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/contract"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/repository/ports"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrReviewForbidden = errors.New("not allowed to manage this review")
)

type ReviewService struct {
	reviews      ports.ReviewRepository
	destinations ports.DestinationRepository
}

func NewReviewService(reviews ports.ReviewRepository, destinations ports.DestinationRepository) *ReviewService {
	return &ReviewService{reviews: reviews, destinations: destinations}
}

type ReviewPage struct {
	Items  []domain.Review
	Total  int64
	Limit  int
	Offset int
}

func (s *ReviewService) List(ctx context.Context, destinationID uuid.UUID, limit, offset int) (*ReviewPage, error) {
	if _, err := s.destinations.FindByID(ctx, destinationID); err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}

	limit, offset = clampPage(limit, offset)
	items, err := s.reviews.ListByDestination(ctx, destinationID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.reviews.CountByDestination(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	return &ReviewPage{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

// Create validates the payload, stamps the author and refreshes the
// destination's aggregate rating. The destination reference comes from the
// request path, so a dangling reference surfaces as a not-found error.
func (s *ReviewService) Create(ctx context.Context, principal *domain.User, destinationID uuid.UUID, input contract.ReviewInput) (*domain.Review, error) {
	fields, verrs := input.Validate()
	if verrs != nil {
		return nil, verrs
	}

	if _, err := s.destinations.FindByID(ctx, destinationID); err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}

	review := &domain.Review{
		DestinationID: destinationID,
		Rating:        fields.Rating,
		Title:         fields.Title,
		Content:       fields.Content,
	}
	contract.StampOwner(principal, review)

	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}

	s.refreshStats(ctx, destinationID)
	return created, nil
}

func (s *ReviewService) Delete(ctx context.Context, principal *domain.User, reviewID uuid.UUID) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if isNotFound(err) {
			return ErrReviewNotFound
		}
		return err
	}
	if !access.OwnerOrAdmin(principal, review.UserID) {
		return ErrReviewForbidden
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		if isNotFound(err) {
			return ErrReviewNotFound
		}
		return err
	}

	s.refreshStats(ctx, review.DestinationID)
	return nil
}

func (s *ReviewService) MarkHelpful(ctx context.Context, reviewID uuid.UUID) (int, error) {
	count, err := s.reviews.IncrementHelpful(ctx, reviewID)
	if err != nil {
		if isNotFound(err) {
			return 0, ErrReviewNotFound
		}
		return 0, err
	}
	return count, nil
}

func (s *ReviewService) Report(ctx context.Context, reviewID uuid.UUID) error {
	if err := s.reviews.MarkReported(ctx, reviewID); err != nil {
		if isNotFound(err) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}

// refreshStats recomputes the denormalized rating columns. A failure here is
// logged and swallowed: the review write already committed and the stats can
// heal on the next write.
func (s *ReviewService) refreshStats(ctx context.Context, destinationID uuid.UUID) {
	stats, err := s.reviews.Stats(ctx, destinationID)
	if err != nil {
		log.Printf("refresh review stats for %s: %v", destinationID, err)
		return
	}
	rating := math.Round(stats.AverageRating*10) / 10
	if err := s.destinations.SetReviewStats(ctx, destinationID, rating, stats.TotalReviews); err != nil {
		log.Printf("store review stats for %s: %v", destinationID, err)
	}
}
