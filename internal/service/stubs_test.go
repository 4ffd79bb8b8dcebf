package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/repository/ports"
)

// In-memory repositories backing the service tests. They mimic the database
// contract: sql.ErrNoRows for misses, pgconn.PgError for constraint hits.

func uniqueViolation() error {
	return &pgconn.PgError{Code: pgUniqueViolation}
}

func foreignKeyViolation() error {
	return &pgconn.PgError{Code: pgForeignKeyViolation}
}

type memoryDestinationRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Destination
}

func newMemoryDestinationRepo() *memoryDestinationRepo {
	return &memoryDestinationRepo{items: make(map[uuid.UUID]*domain.Destination)}
}

func (r *memoryDestinationRepo) Create(_ context.Context, dest *domain.Destination) (*domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Slug == dest.Slug {
			return nil, uniqueViolation()
		}
	}
	stored := *dest
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.items[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memoryDestinationRepo) Update(_ context.Context, dest *domain.Destination) (*domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[dest.ID]; !ok {
		return nil, sql.ErrNoRows
	}
	stored := *dest
	stored.UpdatedAt = time.Now()
	r.items[dest.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memoryDestinationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *memoryDestinationRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dest, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *dest
	return &out, nil
}

func (r *memoryDestinationRepo) FindBySlug(_ context.Context, slug string) (*domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dest := range r.items {
		if dest.Slug == slug {
			out := *dest
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryDestinationRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dest := range r.items {
		if dest.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryDestinationRepo) List(_ context.Context, filter domain.DestinationFilter) ([]domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Destination, 0)
	for _, dest := range r.items {
		if !dest.IsPublished() {
			continue
		}
		if filter.Category != nil && (dest.Category == nil || *dest.Category != *filter.Category) {
			continue
		}
		if filter.Featured != nil && dest.Featured != *filter.Featured {
			continue
		}
		out = append(out, *dest)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryDestinationRepo) Count(ctx context.Context, filter domain.DestinationFilter) (int64, error) {
	items, err := r.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

func (r *memoryDestinationRepo) ListFeatured(ctx context.Context, limit int) ([]domain.Destination, error) {
	featured := true
	items, err := r.List(ctx, domain.DestinationFilter{Featured: &featured})
	if err != nil {
		return nil, err
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *memoryDestinationRepo) ListByCategories(ctx context.Context, categories []string, limit int) ([]domain.Destination, error) {
	items, err := r.List(ctx, domain.DestinationFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Destination, 0)
	for _, dest := range items {
		if dest.Category == nil {
			continue
		}
		for _, category := range categories {
			if strings.EqualFold(*dest.Category, category) {
				out = append(out, dest)
				break
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryDestinationRepo) SetReviewStats(_ context.Context, id uuid.UUID, rating float64, reviewCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	dest, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	dest.Rating = rating
	dest.ReviewCount = reviewCount
	return nil
}

var _ ports.DestinationRepository = (*memoryDestinationRepo)(nil)

type memoryReviewRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Review
	clock time.Time
}

func newMemoryReviewRepo() *memoryReviewRepo {
	return &memoryReviewRepo{items: make(map[uuid.UUID]*domain.Review), clock: time.Now()}
}

func (r *memoryReviewRepo) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *review
	stored.ID = uuid.New()
	// Monotonic timestamps keep newest-first ordering deterministic.
	r.clock = r.clock.Add(time.Second)
	stored.CreatedAt = r.clock
	stored.UpdatedAt = r.clock
	r.items[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memoryReviewRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *review
	return &out, nil
}

func (r *memoryReviewRepo) byDestination(destinationID uuid.UUID) []domain.Review {
	out := make([]domain.Review, 0)
	for _, review := range r.items {
		if review.DestinationID == destinationID {
			out = append(out, *review)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *memoryReviewRepo) ListByDestination(_ context.Context, destinationID uuid.UUID, limit, offset int) ([]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.byDestination(destinationID)
	if offset >= len(out) {
		return []domain.Review{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryReviewRepo) ListRecent(_ context.Context, destinationID uuid.UUID, limit int) ([]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.byDestination(destinationID)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryReviewRepo) CountByDestination(_ context.Context, destinationID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byDestination(destinationID))), nil
}

func (r *memoryReviewRepo) Stats(_ context.Context, destinationID uuid.UUID) (*domain.ReviewStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reviews := r.byDestination(destinationID)
	stats := &domain.ReviewStats{TotalReviews: len(reviews)}
	if len(reviews) == 0 {
		return stats, nil
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	stats.AverageRating = float64(sum) / float64(len(reviews))
	return stats, nil
}

func (r *memoryReviewRepo) IncrementHelpful(_ context.Context, id uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.items[id]
	if !ok {
		return 0, sql.ErrNoRows
	}
	review.Helpful++
	return review.Helpful, nil
}

func (r *memoryReviewRepo) MarkReported(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	review.Reported = true
	return nil
}

func (r *memoryReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

var _ ports.ReviewRepository = (*memoryReviewRepo)(nil)

type memorySavedRepo struct {
	mu           sync.Mutex
	items        map[uuid.UUID]*domain.SavedDestination
	destinations *memoryDestinationRepo
	users        map[uuid.UUID]*domain.User
}

func newMemorySavedRepo(destinations *memoryDestinationRepo) *memorySavedRepo {
	return &memorySavedRepo{
		items:        make(map[uuid.UUID]*domain.SavedDestination),
		destinations: destinations,
		users:        make(map[uuid.UUID]*domain.User),
	}
}

func (r *memorySavedRepo) Add(_ context.Context, saved *domain.SavedDestination) (*domain.SavedDestination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.UserID != nil && saved.UserID != nil &&
			*existing.UserID == *saved.UserID && existing.DestinationID == saved.DestinationID {
			return nil, uniqueViolation()
		}
	}
	if r.destinations != nil {
		if _, err := r.destinations.FindByID(context.Background(), saved.DestinationID); err != nil {
			return nil, foreignKeyViolation()
		}
	}
	stored := *saved
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	r.items[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memorySavedRepo) Remove(_ context.Context, userID, destinationID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, saved := range r.items {
		if saved.UserID != nil && *saved.UserID == userID && saved.DestinationID == destinationID {
			delete(r.items, id)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memorySavedRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.SavedDestinationItem, error) {
	r.mu.Lock()
	saved := make([]domain.SavedDestination, 0)
	for _, item := range r.items {
		if item.UserID != nil && *item.UserID == userID {
			saved = append(saved, *item)
		}
	}
	r.mu.Unlock()

	sort.Slice(saved, func(i, j int) bool {
		return saved[i].CreatedAt.After(saved[j].CreatedAt)
	})
	if offset >= len(saved) {
		return []domain.SavedDestinationItem{}, nil
	}
	saved = saved[offset:]
	if len(saved) > limit {
		saved = saved[:limit]
	}

	out := make([]domain.SavedDestinationItem, 0, len(saved))
	for _, s := range saved {
		item := domain.SavedDestinationItem{Saved: s}
		if dest, err := r.destinations.FindByID(ctx, s.DestinationID); err == nil {
			item.Destination = *dest
		}
		if s.UserID != nil {
			if user, ok := r.users[*s.UserID]; ok {
				copied := *user
				item.User = &copied
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *memorySavedRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, saved := range r.items {
		if saved.UserID != nil && *saved.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memorySavedRepo) CountByDestination(_ context.Context, destinationID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, saved := range r.items {
		if saved.DestinationID == destinationID {
			count++
		}
	}
	return count, nil
}

var _ ports.SavedDestinationRepository = (*memorySavedRepo)(nil)

type memoryUserRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{items: make(map[uuid.UUID]*domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Email == user.Email {
			return nil, uniqueViolation()
		}
	}
	stored := *user
	stored.ID = uuid.New()
	stored.IsActive = true
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.items[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memoryUserRepo) UpsertGoogleUser(ctx context.Context, email string, firstName *string, avatarURL *string) (*domain.User, error) {
	r.mu.Lock()
	for _, existing := range r.items {
		if existing.Email == email {
			existing.EmailVerified = true
			out := *existing
			r.mu.Unlock()
			return &out, nil
		}
	}
	r.mu.Unlock()
	return r.Create(ctx, &domain.User{
		Email:         email,
		FirstName:     firstName,
		AvatarURL:     avatarURL,
		Role:          domain.UserRoleTraveler,
		EmailVerified: true,
	})
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.items {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *user
	return &out, nil
}

func (r *memoryUserRepo) List(_ context.Context, limit, offset int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.items))
	for _, user := range r.items {
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return []domain.User{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[user.ID]; !ok {
		return nil, sql.ErrNoRows
	}
	stored := *user
	stored.UpdatedAt = time.Now()
	r.items[user.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memoryUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.PasswordHash = passwordHash
	user.PasswordSalt = passwordSalt
	return nil
}

func (r *memoryUserRepo) SetInterests(_ context.Context, id uuid.UUID, interests []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.Interests = interests
	return nil
}

func (r *memoryUserRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.IsActive = active
	return nil
}

func (r *memoryUserRepo) SetStaff(_ context.Context, id uuid.UUID, staff bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.IsStaff = staff
	return nil
}

func (r *memoryUserRepo) MarkEmailVerified(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.EmailVerified = true
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

var _ ports.UserRepository = (*memoryUserRepo)(nil)

type memorySessionRepo struct {
	mu    sync.Mutex
	items map[string]*domain.Session
	next  int64
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{items: make(map[string]*domain.Session)}
}

func (r *memorySessionRepo) Create(_ context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	session := &domain.Session{
		ID:        r.next,
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
		IsActive:  true,
	}
	r.items[token] = session
	out := *session
	return &out, nil
}

func (r *memorySessionRepo) FindActiveByToken(_ context.Context, token string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.items[token]
	if !ok || !session.IsActive || session.ExpiresAt.Before(time.Now()) {
		return nil, sql.ErrNoRows
	}
	out := *session
	return &out, nil
}

func (r *memorySessionRepo) Deactivate(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.items[token]
	if !ok {
		return sql.ErrNoRows
	}
	session.IsActive = false
	return nil
}

func (r *memorySessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for token, session := range r.items {
		if session.ExpiresAt.Before(time.Now()) {
			delete(r.items, token)
			count++
		}
	}
	return count, nil
}

var _ ports.SessionRepository = (*memorySessionRepo)(nil)

type memoryVerificationRepo struct {
	mu    sync.Mutex
	items map[int64]*domain.VerificationCode
	next  int64
}

func newMemoryVerificationRepo() *memoryVerificationRepo {
	return &memoryVerificationRepo{items: make(map[int64]*domain.VerificationCode)}
}

func (r *memoryVerificationRepo) Create(_ context.Context, code *domain.VerificationCode) (*domain.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	stored := *code
	stored.ID = r.next
	stored.CreatedAt = time.Now()
	r.items[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memoryVerificationRepo) FindActive(_ context.Context, userID uuid.UUID, purpose domain.VerificationPurpose) (*domain.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.VerificationCode
	for _, code := range r.items {
		if code.UserID != userID || code.Purpose != purpose || code.Consumed || code.ExpiresAt.Before(time.Now()) {
			continue
		}
		if latest == nil || code.ID > latest.ID {
			latest = code
		}
	}
	if latest == nil {
		return nil, sql.ErrNoRows
	}
	out := *latest
	return &out, nil
}

func (r *memoryVerificationRepo) Consume(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	code, ok := r.items[id]
	if !ok || code.Consumed {
		return sql.ErrNoRows
	}
	code.Consumed = true
	return nil
}

func (r *memoryVerificationRepo) InvalidateForUser(_ context.Context, userID uuid.UUID, purpose domain.VerificationPurpose) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, code := range r.items {
		if code.UserID == userID && code.Purpose == purpose {
			code.Consumed = true
		}
	}
	return nil
}

var _ ports.VerificationRepository = (*memoryVerificationRepo)(nil)

// recordingMailer captures outbound codes instead of sending mail.
type recordingMailer struct {
	mu               sync.Mutex
	verificationCode string
	resetCode        string
}

func (m *recordingMailer) SendVerificationCode(_ context.Context, _, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verificationCode = code
	return nil
}

func (m *recordingMailer) SendPasswordReset(_ context.Context, _, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetCode = code
	return nil
}
