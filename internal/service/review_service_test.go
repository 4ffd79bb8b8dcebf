package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/contract"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestReviewCreateRefreshesStats(t *testing.T) {
	destRepo := newMemoryDestinationRepo()
	reviewRepo := newMemoryReviewRepo()
	svc := NewReviewService(reviewRepo, destRepo)
	author := &domain.User{ID: uuid.New()}
	dest := seedDestination(t, destRepo, author, "Lake Bled")

	for _, rating := range []int{4, 5} {
		review, err := svc.Create(context.Background(), author, dest.ID, contract.ReviewInput{
			Rating: intPtr(rating),
			Title:  strPtr("worth the trip"),
		})
		if err != nil {
			t.Fatalf("Create rating %d: %v", rating, err)
		}
		if review.UserID == nil || *review.UserID != author.ID {
			t.Fatalf("expected review stamped with author %s, got %v", author.ID, review.UserID)
		}
	}

	stored, err := destRepo.FindByID(context.Background(), dest.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.Rating != 4.5 {
		t.Fatalf("expected aggregate rating 4.5, got %v", stored.Rating)
	}
	if stored.ReviewCount != 2 {
		t.Fatalf("expected review count 2, got %d", stored.ReviewCount)
	}
}

func TestReviewCreateRoundsAggregateRating(t *testing.T) {
	destRepo := newMemoryDestinationRepo()
	reviewRepo := newMemoryReviewRepo()
	svc := NewReviewService(reviewRepo, destRepo)
	author := &domain.User{ID: uuid.New()}
	dest := seedDestination(t, destRepo, author, "Lake Bled")

	// 5, 4, 4 averages to 4.333...; stored rating rounds to one decimal.
	for _, rating := range []int{5, 4, 4} {
		if _, err := svc.Create(context.Background(), author, dest.ID, contract.ReviewInput{
			Rating: intPtr(rating),
			Title:  strPtr("ok"),
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	stored, err := destRepo.FindByID(context.Background(), dest.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.Rating != 4.3 {
		t.Fatalf("expected rounded rating 4.3, got %v", stored.Rating)
	}
}

func TestReviewCreateValidation(t *testing.T) {
	destRepo := newMemoryDestinationRepo()
	svc := NewReviewService(newMemoryReviewRepo(), destRepo)
	author := &domain.User{ID: uuid.New()}
	dest := seedDestination(t, destRepo, author, "Lake Bled")

	_, err := svc.Create(context.Background(), author, dest.ID, contract.ReviewInput{Rating: intPtr(9)})
	var verrs contract.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs["rating"]) == 0 || verrs["rating"][0].Code != contract.CodeOutOfRange {
		t.Fatalf("expected out_of_range on rating, got %v", verrs["rating"])
	}
	if len(verrs["title"]) == 0 {
		t.Fatalf("expected title failure, got %v", verrs)
	}
}

func TestReviewCreateDestinationMissing(t *testing.T) {
	svc := NewReviewService(newMemoryReviewRepo(), newMemoryDestinationRepo())
	author := &domain.User{ID: uuid.New()}

	_, err := svc.Create(context.Background(), author, uuid.New(), contract.ReviewInput{
		Rating: intPtr(4),
		Title:  strPtr("ghost town"),
	})
	if !errors.Is(err, ErrDestinationNotFound) {
		t.Fatalf("expected ErrDestinationNotFound, got %v", err)
	}
}

func TestReviewDeleteOwnerOrAdmin(t *testing.T) {
	destRepo := newMemoryDestinationRepo()
	reviewRepo := newMemoryReviewRepo()
	svc := NewReviewService(reviewRepo, destRepo)
	author := &domain.User{ID: uuid.New()}
	stranger := &domain.User{ID: uuid.New()}
	admin := &domain.User{ID: uuid.New(), IsStaff: true}
	dest := seedDestination(t, destRepo, author, "Lake Bled")

	first, err := svc.Create(context.Background(), author, dest.ID, contract.ReviewInput{
		Rating: intPtr(5), Title: strPtr("first"),
	})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.Create(context.Background(), author, dest.ID, contract.ReviewInput{
		Rating: intPtr(3), Title: strPtr("second"),
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	if err := svc.Delete(context.Background(), stranger, first.ID); !errors.Is(err, ErrReviewForbidden) {
		t.Fatalf("expected forbidden for stranger, got %v", err)
	}
	if err := svc.Delete(context.Background(), author, first.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	if err := svc.Delete(context.Background(), admin, second.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}

	stored, err := destRepo.FindByID(context.Background(), dest.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.Rating != 0 || stored.ReviewCount != 0 {
		t.Fatalf("expected stats reset after deletes, got rating=%v count=%d", stored.Rating, stored.ReviewCount)
	}
}

func TestReviewDeleteNotFound(t *testing.T) {
	svc := NewReviewService(newMemoryReviewRepo(), newMemoryDestinationRepo())
	admin := &domain.User{ID: uuid.New(), IsStaff: true}
	if err := svc.Delete(context.Background(), admin, uuid.New()); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
}

func TestReviewListRequiresDestination(t *testing.T) {
	svc := NewReviewService(newMemoryReviewRepo(), newMemoryDestinationRepo())
	if _, err := svc.List(context.Background(), uuid.New(), 10, 0); !errors.Is(err, ErrDestinationNotFound) {
		t.Fatalf("expected ErrDestinationNotFound, got %v", err)
	}
}

func TestReviewMarkHelpfulAndReport(t *testing.T) {
	destRepo := newMemoryDestinationRepo()
	reviewRepo := newMemoryReviewRepo()
	svc := NewReviewService(reviewRepo, destRepo)
	author := &domain.User{ID: uuid.New()}
	dest := seedDestination(t, destRepo, author, "Lake Bled")

	review, err := svc.Create(context.Background(), author, dest.ID, contract.ReviewInput{
		Rating: intPtr(5), Title: strPtr("great"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	count, err := svc.MarkHelpful(context.Background(), review.ID)
	if err != nil || count != 1 {
		t.Fatalf("expected helpful count 1, got %d (%v)", count, err)
	}
	count, err = svc.MarkHelpful(context.Background(), review.ID)
	if err != nil || count != 2 {
		t.Fatalf("expected helpful count 2, got %d (%v)", count, err)
	}

	if err := svc.Report(context.Background(), review.ID); err != nil {
		t.Fatalf("report: %v", err)
	}
	stored, err := reviewRepo.GetByID(context.Background(), review.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.Reported {
		t.Fatalf("expected review marked reported")
	}

	if _, err := svc.MarkHelpful(context.Background(), uuid.New()); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound for missing review, got %v", err)
	}
}
