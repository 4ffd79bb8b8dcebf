package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user-submitted rating of a destination. The row is
// cascade-deleted with its destination and orphaned (user_id nulled) when
// the author account is deleted. Helpful and Reported are server-derived.
type Review struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	DestinationID uuid.UUID  `db:"destination_id" json:"destination_id"`
	UserID        *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	Rating        int        `db:"rating" json:"rating"`
	Title         string     `db:"title" json:"title"`
	Content       string     `db:"content" json:"content"`
	Helpful       int        `db:"helpful" json:"helpful"`
	Reported      bool       `db:"reported" json:"reported"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`

	AuthorUsername  *string `db:"author_username" json:"-"`
	AuthorFirstName *string `db:"author_first_name" json:"-"`
	AuthorAvatarURL *string `db:"author_avatar_url" json:"-"`
}

func (r *Review) SetOwner(id uuid.UUID) {
	r.UserID = &id
}

// ReviewStats is the aggregate a destination carries after each review write.
type ReviewStats struct {
	AverageRating float64 `db:"average_rating"`
	TotalReviews  int     `db:"total_reviews"`
}
