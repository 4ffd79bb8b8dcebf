package contract

import "unicode/utf8"

const (
	reviewRatingMin      = 1
	reviewRatingMax      = 5
	reviewTitleMaxLength = 200
)

// ReviewInput is the client-writable surface of a review. The destination
// reference arrives via the route; user/helpful/reported/timestamps are
// never client-writable.
type ReviewInput struct {
	Rating  *int    `json:"rating"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type ReviewFields struct {
	Rating  int
	Title   string
	Content string
}

// Validate checks rating bounds and title length, reporting every failure
// in one pass.
func (in ReviewInput) Validate() (*ReviewFields, ValidationErrors) {
	errs := ValidationErrors{}
	fields := &ReviewFields{}

	switch {
	case in.Rating == nil:
		errs.Add("rating", CodeInvalidFormat, "rating is required")
	case *in.Rating < reviewRatingMin || *in.Rating > reviewRatingMax:
		errs.Add("rating", CodeOutOfRange, "rating must be between 1 and 5")
	default:
		fields.Rating = *in.Rating
	}

	title := trimmed(in.Title)
	switch {
	case title == nil:
		errs.Add("title", CodeInvalidFormat, "title is required")
	case utf8.RuneCountInString(*title) > reviewTitleMaxLength:
		errs.Add("title", CodeInvalidFormat, "title must be at most 200 characters")
	default:
		fields.Title = *title
	}

	if content := trimmed(in.Content); content != nil {
		fields.Content = *content
	}

	if !errs.Empty() {
		return nil, errs
	}
	return fields, nil
}
