package dto

import (
	"time"

	"github.com/academyhq/academy-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest payload for password changes.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID          int64       `json:"id"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	DisplayName string      `json:"display_name"`
	CreatedAt   time.Time   `json:"created_at"`
}

// NewUserResponse maps a user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Role:        u.Role,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

// IdentityResponse echoes a verified credential.
type IdentityResponse struct {
	SubjectID   int64       `json:"subject_id"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	DisplayName string      `json:"display_name"`
	IssuedAt    time.Time   `json:"issued_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

// NewIdentityResponse maps an identity.
func NewIdentityResponse(id domain.Identity) IdentityResponse {
	return IdentityResponse{
		SubjectID:   id.SubjectID,
		Email:       id.Email,
		Role:        id.Role,
		DisplayName: id.DisplayName,
		IssuedAt:    id.IssuedAt,
		ExpiresAt:   id.ExpiresAt,
	}
}
