package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/repository/ports"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/util"
)

const landingSectionSize = 6

type UserService struct {
	users        ports.UserRepository
	destinations ports.DestinationRepository
}

func NewUserService(users ports.UserRepository, destinations ports.DestinationRepository) *UserService {
	return &UserService{users: users, destinations: destinations}
}

type UserPage struct {
	Items  []domain.User
	Total  int64
	Limit  int
	Offset int
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) (*UserPage, error) {
	limit, offset = clampPage(limit, offset)

	items, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &UserPage{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

type AdminCreateUserInput struct {
	Email     string
	Password  string
	Username  *string
	FirstName *string
	LastName  *string
	Role      domain.UserRole
	IsStaff   bool
}

// CreateUser is the admin-side account creation. Accounts made this way are
// considered verified.
func (s *UserService) CreateUser(ctx context.Context, input AdminCreateUserInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if err := util.ValidatePassword(input.Password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}
	hash, salt, err := util.DerivePassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role != domain.UserRoleBusiness {
		role = domain.UserRoleTraveler
	}

	user, err := s.users.Create(ctx, &domain.User{
		Email:         email,
		Username:      input.Username,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Role:          role,
		IsStaff:       input.IsStaff,
		EmailVerified: true,
		PasswordHash:  hash,
		PasswordSalt:  salt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	Username  *string
	FirstName *string
	LastName  *string
	AvatarURL *string
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Username != nil {
		user.Username = input.Username
	}
	if input.FirstName != nil {
		user.FirstName = input.FirstName
	}
	if input.LastName != nil {
		user.LastName = input.LastName
	}
	if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return updated, nil
}

func (s *UserService) SetPreferences(ctx context.Context, id uuid.UUID, interests []string) error {
	cleaned := make([]string, 0, len(interests))
	for _, interest := range interests {
		if t := strings.TrimSpace(interest); t != "" {
			cleaned = append(cleaned, strings.ToLower(t))
		}
	}
	if err := s.users.SetInterests(ctx, id, cleaned); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *UserService) ToggleActive(ctx context.Context, id uuid.UUID) (bool, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	next := !user.IsActive
	if err := s.users.SetActive(ctx, id, next); err != nil {
		return false, err
	}
	return next, nil
}

func (s *UserService) ToggleStaff(ctx context.Context, id uuid.UUID) (bool, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	next := !user.IsStaff
	if err := s.users.SetStaff(ctx, id, next); err != nil {
		return false, err
	}
	return next, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

type LandingContent struct {
	Featured    []domain.Destination `json:"featured"`
	Recommended []domain.Destination `json:"recommended"`
}

// LandingContent assembles the home feed: featured picks plus destinations
// matching the user's interests when any are set.
func (s *UserService) LandingContent(ctx context.Context, user *domain.User) (*LandingContent, error) {
	featured, err := s.destinations.ListFeatured(ctx, landingSectionSize)
	if err != nil {
		return nil, err
	}

	content := &LandingContent{
		Featured:    featured,
		Recommended: []domain.Destination{},
	}
	if user != nil && len(user.Interests) > 0 {
		recommended, err := s.destinations.ListByCategories(ctx, user.Interests, landingSectionSize)
		if err != nil {
			return nil, err
		}
		content.Recommended = recommended
	}
	return content, nil
}
