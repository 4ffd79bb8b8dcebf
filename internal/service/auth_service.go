package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"google.golang.org/api/idtoken"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/repository/ports"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidOTP         = errors.New("invalid or expired verification code")
	ErrWeakPassword       = errors.New("password does not meet requirements")
	ErrInvalidEmail       = errors.New("invalid email address")
)

// Mailer is the slice of the mail transport the auth flows need.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
	SendPasswordReset(ctx context.Context, email, code string) error
}

type AuthConfig struct {
	SessionTTL     time.Duration
	ResetTTL       time.Duration
	OTPLength      int
	GoogleAudience string
}

type AuthService struct {
	users         ports.UserRepository
	sessions      ports.SessionRepository
	verifications ports.VerificationRepository
	jwt           *util.JWTManager
	mailer        Mailer

	sessionTTL time.Duration
	resetTTL   time.Duration
	otpLength  int
	googleAud  string
	validate   *validator.Validate
	now        func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionRepository,
	verifications ports.VerificationRepository,
	jwtManager *util.JWTManager,
	mailer Mailer,
	cfg AuthConfig,
) *AuthService {
	sessionTTL := cfg.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	resetTTL := cfg.ResetTTL
	if resetTTL <= 0 {
		resetTTL = 15 * time.Minute
	}
	otpLength := cfg.OTPLength
	if otpLength <= 0 {
		otpLength = 6
	}
	return &AuthService{
		users:         users,
		sessions:      sessions,
		verifications: verifications,
		jwt:           jwtManager,
		mailer:        mailer,
		sessionTTL:    sessionTTL,
		resetTTL:      resetTTL,
		otpLength:     otpLength,
		googleAud:     cfg.GoogleAudience,
		validate:      validator.New(),
		now:           time.Now,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	Username  *string
	FirstName *string
	LastName  *string
	Role      domain.UserRole
	Interests []string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, ErrInvalidEmail
	}
	if err := util.ValidatePassword(input.Password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	role := input.Role
	if role != domain.UserRoleBusiness {
		role = domain.UserRoleTraveler
	}

	hash, salt, err := util.DerivePassword(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         role,
		Interests:    input.Interests,
		PasswordHash: hash,
		PasswordSalt: salt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if err := s.issueCode(ctx, user, domain.VerificationPurposeEmail); err != nil {
		// Registration stands; the user can ask for a new code.
		log.Printf("send verification code to %s: %v", user.Email, err)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if isNotFound(err) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", time.Time{}, ErrAccountDisabled
	}
	return s.openSession(ctx, user)
}

// LoginWithGoogle verifies a Google ID token and signs the account in,
// creating it on first sight.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idTok string) (*domain.User, string, time.Time, error) {
	payload, err := idtoken.Validate(ctx, idTok, s.googleAud)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidToken
	}
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, "", time.Time{}, ErrInvalidToken
	}
	var firstName, avatarURL *string
	if name, ok := payload.Claims["given_name"].(string); ok && name != "" {
		firstName = &name
	}
	if picture, ok := payload.Claims["picture"].(string); ok && picture != "" {
		avatarURL = &picture
	}

	user, err := s.users.UpsertGoogleUser(ctx, strings.ToLower(email), firstName, avatarURL)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if !user.IsActive {
		return nil, "", time.Time{}, ErrAccountDisabled
	}
	return s.openSession(ctx, user)
}

func (s *AuthService) openSession(ctx context.Context, user *domain.User) (*domain.User, string, time.Time, error) {
	token, expiresAt, err := s.jwt.Generate(user.ID, user.Email, string(user.Role), user.IsStaff)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if _, err := s.sessions.Create(ctx, user.ID, token, expiresAt); err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Deactivate(ctx, token); err != nil {
		if isNotFound(err) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

// Authenticate resolves a bearer token to its account: signature, session
// liveness, then account state.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if _, err := s.sessions.FindActiveByToken(ctx, token); err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := s.checkAndConsumeCode(ctx, user.ID, domain.VerificationPurposeEmail, code); err != nil {
		return err
	}
	return s.users.MarkEmailVerified(ctx, user.ID)
}

func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return nil
	}
	return s.issueCode(ctx, user, domain.VerificationPurposeEmail)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the address exists.
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return err
	}
	return s.issueCode(ctx, user, domain.VerificationPurposePasswordReset)
}

func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := util.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}
	if err := s.checkAndConsumeCode(ctx, user.ID, domain.VerificationPurposePasswordReset, code); err != nil {
		return err
	}
	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash, salt)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	if !util.VerifyPassword(oldPassword, user.PasswordSalt, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if err := util.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}
	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash, salt)
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueCode(ctx context.Context, user *domain.User, purpose domain.VerificationPurpose) error {
	otp, err := util.GenerateNumericOTP(s.otpLength)
	if err != nil {
		return err
	}
	hash, salt, err := util.DerivePassword(otp)
	if err != nil {
		return err
	}

	if err := s.verifications.InvalidateForUser(ctx, user.ID, purpose); err != nil {
		return err
	}
	ttl := s.resetTTL
	if purpose == domain.VerificationPurposeEmail {
		ttl = 24 * time.Hour
	}
	if _, err := s.verifications.Create(ctx, &domain.VerificationCode{
		UserID:    user.ID,
		Purpose:   purpose,
		OTPHash:   hash,
		OTPSalt:   salt,
		ExpiresAt: s.now().Add(ttl),
	}); err != nil {
		return err
	}

	if s.mailer == nil {
		return errors.New("mailer not configured")
	}
	if purpose == domain.VerificationPurposePasswordReset {
		return s.mailer.SendPasswordReset(ctx, user.Email, otp)
	}
	return s.mailer.SendVerificationCode(ctx, user.Email, otp)
}

func (s *AuthService) checkAndConsumeCode(ctx context.Context, userID uuid.UUID, purpose domain.VerificationPurpose, code string) error {
	record, err := s.verifications.FindActive(ctx, userID, purpose)
	if err != nil {
		if isNotFound(err) {
			return ErrInvalidOTP
		}
		return err
	}
	if !util.VerifyPassword(code, record.OTPSalt, record.OTPHash) {
		return ErrInvalidOTP
	}
	return s.verifications.Consume(ctx, record.ID)
}
