package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/access"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/contract"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/repository/ports"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/util"
)

var (
	ErrDestinationNotFound  = errors.New("destination not found")
	ErrDestinationForbidden = errors.New("not allowed to manage this destination")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxSlugAttempts = 50
)

type DestinationService struct {
	destinations ports.DestinationRepository
	reviews      ports.ReviewRepository
}

func NewDestinationService(destinations ports.DestinationRepository, reviews ports.ReviewRepository) *DestinationService {
	return &DestinationService{destinations: destinations, reviews: reviews}
}

type DestinationPage struct {
	Items  []domain.Destination
	Total  int64
	Limit  int
	Offset int
}

func (s *DestinationService) List(ctx context.Context, filter domain.DestinationFilter) (*DestinationPage, error) {
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset)

	items, err := s.destinations.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.destinations.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &DestinationPage{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// Get returns a destination together with its most recent reviews for the
// detail projection.
func (s *DestinationService) Get(ctx context.Context, id uuid.UUID) (*domain.Destination, []domain.Review, error) {
	dest, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, ErrDestinationNotFound
		}
		return nil, nil, err
	}
	reviews, err := s.reviews.ListRecent(ctx, dest.ID, contract.MaxEmbeddedReviews)
	if err != nil {
		return nil, nil, err
	}
	return dest, reviews, nil
}

func (s *DestinationService) GetBySlug(ctx context.Context, slug string) (*domain.Destination, []domain.Review, error) {
	dest, err := s.destinations.FindBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, ErrDestinationNotFound
		}
		return nil, nil, err
	}
	reviews, err := s.reviews.ListRecent(ctx, dest.ID, contract.MaxEmbeddedReviews)
	if err != nil {
		return nil, nil, err
	}
	return dest, reviews, nil
}

func (s *DestinationService) Create(ctx context.Context, principal *domain.User, input contract.DestinationInput) (*domain.Destination, error) {
	fields, verrs := input.Validate(true)
	if verrs != nil {
		return nil, verrs
	}

	dest := &domain.Destination{
		Title:  *fields.Title,
		Status: domain.DestinationStatusPublished,
	}
	applyDestinationFields(dest, fields)
	contract.StampOwner(principal, dest)

	slug, err := s.uniqueSlug(ctx, dest.Title)
	if err != nil {
		return nil, err
	}
	dest.Slug = slug

	created, err := s.destinations.Create(ctx, dest)
	if err != nil {
		if isUniqueViolation(err) {
			// Slug raced with a concurrent create; one retry with a fresh
			// suffix is enough in practice.
			dest.Slug, err = s.uniqueSlug(ctx, dest.Title)
			if err != nil {
				return nil, err
			}
			return s.destinations.Create(ctx, dest)
		}
		return nil, err
	}
	return created, nil
}

func (s *DestinationService) Update(ctx context.Context, principal *domain.User, id uuid.UUID, input contract.DestinationInput) (*domain.Destination, error) {
	dest, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	if !access.OwnerOrReadOnly(principal, http.MethodPut, dest.UserID) {
		return nil, ErrDestinationForbidden
	}

	fields, verrs := input.Validate(false)
	if verrs != nil {
		return nil, verrs
	}
	applyDestinationFields(dest, fields)
	if fields.Title != nil {
		dest.Title = *fields.Title
	}

	return s.destinations.Update(ctx, dest)
}

func (s *DestinationService) Delete(ctx context.Context, principal *domain.User, id uuid.UUID) error {
	dest, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrDestinationNotFound
		}
		return err
	}
	if !access.OwnerOrReadOnly(principal, http.MethodDelete, dest.UserID) {
		return ErrDestinationForbidden
	}
	if err := s.destinations.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrDestinationNotFound
		}
		return err
	}
	return nil
}

// uniqueSlug derives a slug from the title, appending a numeric suffix until
// it is free. Slugs stay fixed after creation even when the title changes.
func (s *DestinationService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := util.Slugify(title)
	if base == "" {
		base = "destination"
	}
	slug := base
	for i := 2; i <= maxSlugAttempts; i++ {
		taken, err := s.destinations.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	// Exhausted the numeric range; fall back to a random tail.
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

func applyDestinationFields(dest *domain.Destination, fields *contract.DestinationFields) {
	if fields.Description != nil {
		dest.Description = fields.Description
	}
	if fields.Category != nil {
		dest.Category = fields.Category
	}
	if fields.Region != nil {
		dest.Region = fields.Region
	}
	if fields.City != nil {
		dest.City = fields.City
	}
	if fields.Address != nil {
		dest.Address = fields.Address
	}
	if fields.Latitude != nil {
		dest.Latitude = fields.Latitude
	}
	if fields.Longitude != nil {
		dest.Longitude = fields.Longitude
	}
	if fields.Featured != nil {
		dest.Featured = *fields.Featured
	}
	if fields.Status != nil {
		dest.Status = *fields.Status
	}
	if fields.Images != nil {
		dest.Images = *fields.Images
	}
	if fields.GalleryImages != nil {
		dest.GalleryImages = *fields.GalleryImages
	}
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
