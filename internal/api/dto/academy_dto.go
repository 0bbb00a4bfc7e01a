package dto

import (
	"time"

	"github.com/academyhq/academy-service/internal/domain"
)

// CreateAcademyRequest payload.
type CreateAcademyRequest struct {
	Name string `json:"name"`
}

// EnrollPlayerRequest payload.
type EnrollPlayerRequest struct {
	UserID   int64   `json:"user_id"`
	Position *string `json:"position"`
}

// AcademyResponse view.
type AcademyResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerResponse view.
type PlayerResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	AcademyID int64     `json:"academy_id"`
	Position  *string   `json:"position,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAcademyResponse maps an academy.
func NewAcademyResponse(a *domain.Academy) AcademyResponse {
	return AcademyResponse{ID: a.ID, Name: a.Name, OwnerID: a.OwnerID, CreatedAt: a.CreatedAt}
}

// NewPlayerResponse maps an enrollment.
func NewPlayerResponse(p *domain.Player) PlayerResponse {
	return PlayerResponse{ID: p.ID, UserID: p.UserID, AcademyID: p.AcademyID, Position: p.Position, CreatedAt: p.CreatedAt}
}
