package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                      uuid.UUID  `json:"id" db:"id"`
	Email                   string     `json:"email" db:"email"`
	PasswordHash            string     `json:"-" db:"password_hash"`
	FullName                string     `json:"full_name" db:"full_name"`
	NIK                     *string    `json:"nik,omitempty" db:"nik"`
	Phone                   *string    `json:"phone,omitempty" db:"phone"`
	Role                    string     `json:"role" db:"role"`
	IsActive                bool       `json:"is_active" db:"is_active"`
	IsEmailVerified         bool       `json:"is_email_verified" db:"is_email_verified"`
	EmailVerificationToken  *string    `json:"-" db:"email_verification_token"`
	EmailVerificationSentAt *time.Time `json:"-" db:"email_verification_sent_at"`
	CreatedAt               time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt               *time.Time `json:"-" db:"deleted_at"`
}

type CreateUserInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName string  `json:"full_name" validate:"required,min=2"`
	NIK      *string `json:"nik,omitempty" validate:"omitempty,len=16"`
	Phone    *string `json:"phone,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserRole string

const (
	RoleCitizen UserRole = "citizen"
	RoleOfficer UserRole = "officer"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleCitizen, RoleOfficer, RoleAdmin:
		return true
	default:
		return false
	}
}

func (u *User) HasRole(requiredRole string) bool {
	switch requiredRole {
	case "admin":
		return u.Role == "admin"
	case "officer":
		return u.Role == "officer" || u.Role == "admin"
	case "citizen":
		return u.Role == "citizen" || u.Role == "officer" || u.Role == "admin"
	default:
		return false
	}
}
