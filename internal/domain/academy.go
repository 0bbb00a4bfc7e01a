package domain

import "time"

// Academy groups players and events.
type Academy struct {
	ID        int64
	Name      string
	OwnerID   int64
	CreatedAt time.Time
}

// Player is an enrollment of a player account in an academy.
type Player struct {
	ID        int64
	UserID    int64
	AcademyID int64
	Position  *string
	CreatedAt time.Time
}
