package domain

import (
	"time"

	"github.com/google/uuid"
)

// SavedDestination is a user's bookmark of a destination. The destination
// reference is always required; the row is cascade-deleted with the
// destination and orphaned when the user account is deleted.
type SavedDestination struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	UserID        *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	DestinationID uuid.UUID  `db:"destination_id" json:"destination_id"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

func (s *SavedDestination) SetOwner(id uuid.UUID) {
	s.UserID = &id
}

// SavedDestinationItem joins the bookmark with the destination it references
// for the list projection.
type SavedDestinationItem struct {
	Saved       SavedDestination
	Destination Destination
	User        *User
}
