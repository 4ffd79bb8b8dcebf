package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type DestinationStatus string

const (
	DestinationStatusDraft     DestinationStatus = "draft"
	DestinationStatusPublished DestinationStatus = "published"
	DestinationStatusArchived  DestinationStatus = "archived"
)

// Destination is a travel listing. UserID is nullable: the row survives its
// owner's account deletion with the reference nulled out.
type Destination struct {
	ID            uuid.UUID         `db:"id" json:"id"`
	UserID        *uuid.UUID        `db:"user_id" json:"user_id,omitempty"`
	Title         string            `db:"title" json:"title"`
	Slug          string            `db:"slug" json:"slug"`
	Description   *string           `db:"description" json:"description,omitempty"`
	Category      *string           `db:"category" json:"category,omitempty"`
	Region        *string           `db:"region" json:"region,omitempty"`
	City          *string           `db:"city" json:"city,omitempty"`
	Address       *string           `db:"address" json:"address,omitempty"`
	Latitude      *float64          `db:"latitude" json:"latitude,omitempty"`
	Longitude     *float64          `db:"longitude" json:"longitude,omitempty"`
	Featured      bool              `db:"featured" json:"featured"`
	Status        DestinationStatus `db:"status" json:"status"`
	Rating        float64           `db:"rating" json:"rating"`
	ReviewCount   int               `db:"review_count" json:"review_count"`
	Images        pq.StringArray    `db:"images" json:"images"`
	GalleryImages pq.StringArray    `db:"gallery_images" json:"gallery_images"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}

func (d *Destination) IsPublished() bool {
	return d.Status == DestinationStatusPublished
}

func (d *Destination) SetOwner(id uuid.UUID) {
	d.UserID = &id
}

type DestinationFilter struct {
	Category *string
	Region   *string
	Featured *bool
	Query    string
	Limit    int
	Offset   int
}
