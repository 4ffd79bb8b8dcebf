package contract

import (
	"time"

	"github.com/google/uuid"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
)

// MaxEmbeddedReviews caps the nested review projection on the destination
// detail view.
const MaxEmbeddedReviews = 5

// UserView is the public read projection of a user account.
type UserView struct {
	ID        uuid.UUID       `json:"id"`
	Username  *string         `json:"username,omitempty"`
	FirstName *string         `json:"first_name,omitempty"`
	LastName  *string         `json:"last_name,omitempty"`
	AvatarURL *string         `json:"avatar_url,omitempty"`
	Role      domain.UserRole `json:"role"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
	}
}

// ReviewAuthorView is the slice of the author surfaced on a review. Nil
// when the author account has been deleted.
type ReviewAuthorView struct {
	ID        uuid.UUID `json:"id"`
	Username  *string   `json:"username,omitempty"`
	FirstName *string   `json:"first_name,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

type ReviewView struct {
	ID            uuid.UUID         `json:"id"`
	DestinationID uuid.UUID         `json:"destination_id"`
	User          *ReviewAuthorView `json:"user,omitempty"`
	Rating        int               `json:"rating"`
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	Helpful       int               `json:"helpful"`
	Reported      bool              `json:"reported"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func NewReviewView(r domain.Review) ReviewView {
	view := ReviewView{
		ID:            r.ID,
		DestinationID: r.DestinationID,
		Rating:        r.Rating,
		Title:         r.Title,
		Content:       r.Content,
		Helpful:       r.Helpful,
		Reported:      r.Reported,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.UserID != nil {
		view.User = &ReviewAuthorView{
			ID:        *r.UserID,
			Username:  r.AuthorUsername,
			FirstName: r.AuthorFirstName,
			AvatarURL: r.AuthorAvatarURL,
		}
	}
	return view
}

type DestinationView struct {
	ID            uuid.UUID                `json:"id"`
	UserID        *uuid.UUID               `json:"user_id,omitempty"`
	Title         string                   `json:"title"`
	Slug          string                   `json:"slug"`
	Description   *string                  `json:"description,omitempty"`
	Category      *string                  `json:"category,omitempty"`
	Region        *string                  `json:"region,omitempty"`
	City          *string                  `json:"city,omitempty"`
	Address       *string                  `json:"address,omitempty"`
	Latitude      *float64                 `json:"latitude,omitempty"`
	Longitude     *float64                 `json:"longitude,omitempty"`
	Featured      bool                     `json:"featured"`
	Status        domain.DestinationStatus `json:"status"`
	Rating        float64                  `json:"rating"`
	ReviewCount   int                      `json:"review_count"`
	Images        []string                 `json:"images"`
	GalleryImages []string                 `json:"gallery_images"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

func NewDestinationView(d domain.Destination) DestinationView {
	return DestinationView{
		ID:            d.ID,
		UserID:        d.UserID,
		Title:         d.Title,
		Slug:          d.Slug,
		Description:   d.Description,
		Category:      d.Category,
		Region:        d.Region,
		City:          d.City,
		Address:       d.Address,
		Latitude:      d.Latitude,
		Longitude:     d.Longitude,
		Featured:      d.Featured,
		Status:        d.Status,
		Rating:        d.Rating,
		ReviewCount:   d.ReviewCount,
		Images:        urlList(d.Images),
		GalleryImages: urlList(d.GalleryImages),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// DestinationDetailView embeds the most recent reviews as a read-only
// projection; composition of contracts, not inheritance.
type DestinationDetailView struct {
	DestinationView
	Reviews []ReviewView `json:"reviews"`
}

// NewDestinationDetailView builds the detail projection. Reviews are
// expected newest-first; anything beyond MaxEmbeddedReviews is dropped.
func NewDestinationDetailView(d domain.Destination, reviews []domain.Review) DestinationDetailView {
	if len(reviews) > MaxEmbeddedReviews {
		reviews = reviews[:MaxEmbeddedReviews]
	}
	views := make([]ReviewView, 0, len(reviews))
	for _, review := range reviews {
		views = append(views, NewReviewView(review))
	}
	return DestinationDetailView{
		DestinationView: NewDestinationView(d),
		Reviews:         views,
	}
}

// SavedDestinationView embeds the full destination contract, not just its
// id, plus the owner's public view.
type SavedDestinationView struct {
	ID          uuid.UUID       `json:"id"`
	User        *UserView       `json:"user,omitempty"`
	Destination DestinationView `json:"destination"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewSavedDestinationView(item domain.SavedDestinationItem) SavedDestinationView {
	view := SavedDestinationView{
		ID:          item.Saved.ID,
		Destination: NewDestinationView(item.Destination),
		CreatedAt:   item.Saved.CreatedAt,
	}
	if item.User != nil {
		owner := NewUserView(*item.User)
		view.User = &owner
	}
	return view
}

func urlList(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
