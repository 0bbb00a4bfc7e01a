package dto

import (
	"time"

	"github.com/academyhq/academy-service/internal/domain"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// TrainingPlanRequest payload for create and update; dates use DateLayout.
type TrainingPlanRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartsOn    *string `json:"starts_on"`
	EndsOn      *string `json:"ends_on"`
}

// TrainingPlanResponse view.
type TrainingPlanResponse struct {
	ID          int64     `json:"id"`
	CoachID     int64     `json:"coach_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsOn    *string   `json:"starts_on,omitempty"`
	EndsOn      *string   `json:"ends_on,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTrainingPlanResponse maps a plan.
func NewTrainingPlanResponse(p *domain.TrainingPlan) TrainingPlanResponse {
	return TrainingPlanResponse{
		ID:          p.ID,
		CoachID:     p.CoachID,
		Title:       p.Title,
		Description: p.Description,
		StartsOn:    formatDate(p.StartsOn),
		EndsOn:      formatDate(p.EndsOn),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
