package domain

import "time"

// User is an account able to sign in.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	DisplayName  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
