package users

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// RoleType represents a user role. The role is part of the sign-in identity
// key, so an email may exist once per role.
type RoleType string

const (
	RoleAdmin RoleType = "admin"
	RoleUser  RoleType = "user"
)

// ParseRole maps a raw string onto a known role, defaulting to RoleUser.
func ParseRole(raw string) RoleType {
	if RoleType(raw) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

type User struct {
	ID           string    `json:"id,omitempty"`        // Unique identifier for the user
	FirstName    string    `json:"firstName,omitempty"` // First name of the user
	LastName     string    `json:"lastName,omitempty"`  // Last name of the user
	Email        string    `json:"email,omitempty"`     // User's email address, unique per role
	Phone        string    `json:"phone,omitempty"`     // Contact phone number
	PasswordHash string    `json:"-"`                   // Hashed version of the user's password - never serialize
	Role         RoleType  `json:"role,omitempty"`      // Either admin or user
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// HashPassword hashes a plaintext password with a fresh random salt at the
// given bcrypt work factor.
func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
