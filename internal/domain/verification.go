package domain

import (
	"time"

	"github.com/google/uuid"
)

type VerificationPurpose string

const (
	VerificationPurposeEmail         VerificationPurpose = "email_verify"
	VerificationPurposePasswordReset VerificationPurpose = "password_reset"
)

// VerificationCode backs both the email-verification and password-reset
// flows. Only the hash of the OTP is stored.
type VerificationCode struct {
	ID        int64               `db:"id" json:"id"`
	UserID    uuid.UUID           `db:"user_id" json:"user_id"`
	Purpose   VerificationPurpose `db:"purpose" json:"purpose"`
	OTPHash   []byte              `db:"otp_hash" json:"-"`
	OTPSalt   []byte              `db:"otp_salt" json:"-"`
	ExpiresAt time.Time           `db:"expires_at" json:"expires_at"`
	Consumed  bool                `db:"consumed" json:"consumed"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
}
