package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/contract"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/repository/ports"
)

var (
	ErrAlreadySaved  = errors.New("destination is already saved")
	ErrSavedNotFound = errors.New("saved destination not found")
)

type SavedDestinationService struct {
	saved        ports.SavedDestinationRepository
	destinations ports.DestinationRepository
}

func NewSavedDestinationService(saved ports.SavedDestinationRepository, destinations ports.DestinationRepository) *SavedDestinationService {
	return &SavedDestinationService{saved: saved, destinations: destinations}
}

type SavedPage struct {
	Items  []contract.SavedDestinationView
	Total  int64
	Limit  int
	Offset int
}

func (s *SavedDestinationService) Save(ctx context.Context, principal *domain.User, destinationID uuid.UUID) (*domain.SavedDestination, error) {
	if _, err := s.destinations.FindByID(ctx, destinationID); err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}

	saved := &domain.SavedDestination{DestinationID: destinationID}
	contract.StampOwner(principal, saved)

	created, err := s.saved.Add(ctx, saved)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, ErrAlreadySaved
		case isForeignKeyViolation(err):
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return created, nil
}

func (s *SavedDestinationService) Remove(ctx context.Context, principal *domain.User, destinationID uuid.UUID) error {
	if err := s.saved.Remove(ctx, principal.ID, destinationID); err != nil {
		if isNotFound(err) {
			return ErrSavedNotFound
		}
		return err
	}
	return nil
}

// List returns the caller's saved destinations as full projections, newest
// first.
func (s *SavedDestinationService) List(ctx context.Context, principal *domain.User, limit, offset int) (*SavedPage, error) {
	limit, offset = clampPage(limit, offset)

	items, err := s.saved.ListByUser(ctx, principal.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.saved.CountByUser(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	views := make([]contract.SavedDestinationView, 0, len(items))
	for i := range items {
		views = append(views, contract.NewSavedDestinationView(items[i]))
	}
	return &SavedPage{Items: views, Total: total, Limit: limit, Offset: offset}, nil
}
