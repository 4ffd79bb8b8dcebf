package contract

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
)

func TestNewDestinationDetailViewCapsReviews(t *testing.T) {
	dest := domain.Destination{ID: uuid.New(), Title: "Kyoto"}

	reviews := make([]domain.Review, 0, 8)
	for i := 0; i < 8; i++ {
		reviews = append(reviews, domain.Review{
			ID:            uuid.New(),
			DestinationID: dest.ID,
			Rating:        5,
			CreatedAt:     time.Now().Add(-time.Duration(i) * time.Hour),
		})
	}

	view := NewDestinationDetailView(dest, reviews)
	if len(view.Reviews) != MaxEmbeddedReviews {
		t.Fatalf("expected %d embedded reviews, got %d", MaxEmbeddedReviews, len(view.Reviews))
	}
	// The newest-first prefix survives, order untouched.
	for i := 0; i < MaxEmbeddedReviews; i++ {
		if view.Reviews[i].ID != reviews[i].ID {
			t.Fatalf("expected review %d to be %s, got %s", i, reviews[i].ID, view.Reviews[i].ID)
		}
	}
}

func TestNewReviewViewOrphanedAuthor(t *testing.T) {
	view := NewReviewView(domain.Review{ID: uuid.New(), Rating: 3})
	if view.User != nil {
		t.Fatalf("expected nil author for orphaned review, got %+v", view.User)
	}

	userID := uuid.New()
	username := "wanderer"
	withAuthor := NewReviewView(domain.Review{
		ID:             uuid.New(),
		UserID:         &userID,
		AuthorUsername: &username,
	})
	if withAuthor.User == nil || withAuthor.User.ID != userID {
		t.Fatalf("expected author view for %s, got %+v", userID, withAuthor.User)
	}
	if withAuthor.User.Username == nil || *withAuthor.User.Username != "wanderer" {
		t.Fatalf("expected username joined onto the author view")
	}
}

func TestNewDestinationViewNormalizesNilImageLists(t *testing.T) {
	view := NewDestinationView(domain.Destination{ID: uuid.New()})
	if view.Images == nil || view.GalleryImages == nil {
		t.Fatal("expected empty slices, not nil, for image lists")
	}
	if len(view.Images) != 0 {
		t.Fatalf("expected no images, got %v", view.Images)
	}
}

func TestNewSavedDestinationViewEmbedsDestinationAndUser(t *testing.T) {
	destID := uuid.New()
	userID := uuid.New()
	item := domain.SavedDestinationItem{
		Saved: domain.SavedDestination{
			ID:            uuid.New(),
			UserID:        &userID,
			DestinationID: destID,
			CreatedAt:     time.Now(),
		},
		Destination: domain.Destination{ID: destID, Title: "Petra", Slug: "petra"},
		User:        &domain.User{ID: userID, Role: domain.UserRoleTraveler},
	}

	view := NewSavedDestinationView(item)
	if view.Destination.ID != destID || view.Destination.Slug != "petra" {
		t.Fatalf("expected full destination embedded, got %+v", view.Destination)
	}
	if view.User == nil || view.User.ID != userID {
		t.Fatalf("expected user view embedded, got %+v", view.User)
	}

	// Orphaned bookmark keeps the destination but drops the user.
	item.User = nil
	orphaned := NewSavedDestinationView(item)
	if orphaned.User != nil {
		t.Fatalf("expected nil user for orphaned bookmark")
	}
}
