package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type UserRole string

const (
	UserRoleTraveler UserRole = "traveler"
	UserRoleBusiness UserRole = "business"
)

type User struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	Email         string         `db:"email" json:"email"`
	Username      *string        `db:"username" json:"username,omitempty"`
	FirstName     *string        `db:"first_name" json:"first_name,omitempty"`
	LastName      *string        `db:"last_name" json:"last_name,omitempty"`
	AvatarURL     *string        `db:"avatar_url" json:"avatar_url,omitempty"`
	Role          UserRole       `db:"role" json:"role"`
	Interests     pq.StringArray `db:"interests" json:"interests,omitempty"`
	PasswordHash  []byte         `db:"password_hash" json:"-"`
	PasswordSalt  []byte         `db:"password_salt" json:"-"`
	IsActive      bool           `db:"is_active" json:"is_active"`
	IsStaff       bool           `db:"is_staff" json:"is_staff"`
	EmailVerified bool           `db:"email_verified" json:"email_verified"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

func (u *User) DisplayName() string {
	switch {
	case u.FirstName != nil && u.LastName != nil:
		return *u.FirstName + " " + *u.LastName
	case u.FirstName != nil:
		return *u.FirstName
	case u.Username != nil:
		return *u.Username
	default:
		return u.Email
	}
}
