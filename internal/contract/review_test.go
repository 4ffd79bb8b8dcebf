package contract

import (
	"strings"
	"testing"
)

func TestReviewInputValidate(t *testing.T) {
	title := "Great trip"
	content := "  Loved it.  "

	tests := []struct {
		name     string
		input    ReviewInput
		field    string
		wantCode Code
	}{
		{name: "missing rating", input: ReviewInput{Title: &title}, field: "rating", wantCode: CodeInvalidFormat},
		{name: "rating too low", input: ReviewInput{Rating: i(0), Title: &title}, field: "rating", wantCode: CodeOutOfRange},
		{name: "rating too high", input: ReviewInput{Rating: i(6), Title: &title}, field: "rating", wantCode: CodeOutOfRange},
		{name: "missing title", input: ReviewInput{Rating: i(4)}, field: "title", wantCode: CodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := tt.input.Validate()
			if errs == nil || len(errs[tt.field]) == 0 {
				t.Fatalf("expected error on %q, got %v", tt.field, errs)
			}
			if errs[tt.field][0].Code != tt.wantCode {
				t.Fatalf("expected code %q, got %q", tt.wantCode, errs[tt.field][0].Code)
			}
		})
	}

	fields, errs := ReviewInput{Rating: i(5), Title: &title, Content: &content}.Validate()
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if fields.Rating != 5 || fields.Title != "Great trip" || fields.Content != "Loved it." {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestReviewInputValidateTitleLength(t *testing.T) {
	// The 200-title bound counts characters, not bytes: 150 CJK characters
	// are 450 bytes and must pass.
	multibyte := strings.Repeat("山", 150)
	if _, errs := (ReviewInput{Rating: i(4), Title: &multibyte}).Validate(); errs != nil {
		t.Fatalf("expected 150-character title to pass, got %v", errs)
	}

	tooLong := strings.Repeat("山", 201)
	_, errs := ReviewInput{Rating: i(4), Title: &tooLong}.Validate()
	if errs == nil || len(errs["title"]) == 0 || errs["title"][0].Code != CodeInvalidFormat {
		t.Fatalf("expected title length error, got %v", errs)
	}
}

func TestReviewInputValidateAggregatesFailures(t *testing.T) {
	_, errs := ReviewInput{Rating: i(9)}.Validate()
	if errs == nil {
		t.Fatal("expected errors")
	}
	if len(errs["rating"]) == 0 || len(errs["title"]) == 0 {
		t.Fatalf("expected both rating and title errors, got %v", errs)
	}
}

func i(v int) *int {
	return &v
}
