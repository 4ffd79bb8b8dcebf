package contract

import (
	"strings"
	"unicode/utf8"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
)

const destinationTitleMaxLength = 200

// DestinationInput is the client-writable surface of a destination. The
// read-only fields (id, user, slug, rating, review_count, timestamps) have
// no counterpart here on purpose: the contract simply cannot express them.
type DestinationInput struct {
	Title         *string     `json:"title"`
	Description   *string     `json:"description"`
	Category      *string     `json:"category"`
	Region        *string     `json:"region"`
	City          *string     `json:"city"`
	Address       *string     `json:"address"`
	Latitude      *Coordinate `json:"latitude"`
	Longitude     *Coordinate `json:"longitude"`
	Featured      *bool       `json:"featured"`
	Status        *string     `json:"status"`
	Images        *[]string   `json:"images"`
	GalleryImages *[]string   `json:"gallery_images"`
}

// DestinationFields is the coerced, validated form of DestinationInput.
// Nil pointers mean "field omitted" so the same type serves create and
// partial update.
type DestinationFields struct {
	Title         *string
	Description   *string
	Category      *string
	Region        *string
	City          *string
	Address       *string
	Latitude      *float64
	Longitude     *float64
	Featured      *bool
	Status        *domain.DestinationStatus
	Images        *[]string
	GalleryImages *[]string
}

// Validate coerces the input and returns either the validated field set or
// every field failure at once. requireTitle distinguishes create from
// partial update.
func (in DestinationInput) Validate(requireTitle bool) (*DestinationFields, ValidationErrors) {
	errs := ValidationErrors{}
	fields := &DestinationFields{
		Description: trimmed(in.Description),
		Category:    trimmed(in.Category),
		Region:      trimmed(in.Region),
		City:        trimmed(in.City),
		Address:     trimmed(in.Address),
		Featured:    in.Featured,
	}

	title := trimmed(in.Title)
	switch {
	case title == nil && requireTitle:
		errs.Add("title", CodeInvalidFormat, "title is required")
	case title != nil && utf8.RuneCountInString(*title) > destinationTitleMaxLength:
		errs.Add("title", CodeInvalidFormat, "title must be at most 200 characters")
	default:
		fields.Title = title
	}

	if lat, ferr := ParseLatitude(in.Latitude); ferr != nil {
		errs.Add("latitude", ferr.Code, ferr.Message)
	} else {
		fields.Latitude = lat
	}
	if lng, ferr := ParseLongitude(in.Longitude); ferr != nil {
		errs.Add("longitude", ferr.Code, ferr.Message)
	} else {
		fields.Longitude = lng
	}

	if in.Status != nil {
		status := domain.DestinationStatus(strings.ToLower(strings.TrimSpace(*in.Status)))
		switch status {
		case domain.DestinationStatusDraft, domain.DestinationStatusPublished, domain.DestinationStatusArchived:
			fields.Status = &status
		default:
			errs.Add("status", CodeInvalidFormat, "status must be draft, published or archived")
		}
	}

	if in.Images != nil {
		if ferr := ValidateURLList(*in.Images); ferr != nil {
			errs.Add("images", ferr.Code, ferr.Message)
		} else {
			fields.Images = in.Images
		}
	}
	if in.GalleryImages != nil {
		if ferr := ValidateURLList(*in.GalleryImages); ferr != nil {
			errs.Add("gallery_images", ferr.Code, ferr.Message)
		} else {
			fields.GalleryImages = in.GalleryImages
		}
	}

	if !errs.Empty() {
		return nil, errs
	}
	return fields, nil
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	t := strings.TrimSpace(*value)
	if t == "" {
		return nil
	}
	return &t
}
