package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProviderEmail = "email"
)

// UserMetadata is the sign-up metadata kept on the identity record. It is the
// source for rebuilding a missing profile.
type UserMetadata struct {
	FullName      string `json:"full_name,omitempty"`
	Role          Role   `json:"role,omitempty"`
	InstituteName string `json:"institute_name,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
}

// AuthUser is an identity record
type AuthUser struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	Email        string       `json:"email" db:"email"`
	PasswordHash string       `json:"-" db:"password_hash"`
	Provider     string       `json:"provider" db:"provider"`
	Metadata     UserMetadata `json:"metadata" db:"metadata"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
}

// ProfileFromMetadata reconstructs a profile from the identity record.
func (u *AuthUser) ProfileFromMetadata() *Profile {
	return &Profile{
		ID:            u.ID,
		FullName:      u.Metadata.FullName,
		Email:         u.Email,
		Role:          ParseRole(string(u.Metadata.Role)),
		InstituteName: u.Metadata.InstituteName,
		AvatarURL:     u.Metadata.AvatarURL,
		CreatedAt:     u.CreatedAt,
	}
}

// Session is a server-side session row. Tokens reference it by id.
type Session struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
