package domain

import "time"

// Identity is the verified assertion carried by a bearer credential.
type Identity struct {
	SubjectID   int64
	Email       string
	Role        Role
	DisplayName string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}
