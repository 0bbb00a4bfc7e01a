package dto

import (
	"time"

	"github.com/academyhq/academy-service/internal/domain"
)

// AttendanceRequest is one observation for a player.
type AttendanceRequest struct {
	PlayerID          int64    `json:"player_id"`
	Present           *bool    `json:"present"`
	PerformanceRating *float64 `json:"performance_rating"`
	Notes             *string  `json:"notes"`
}

// BulkAttendanceRequest submits several observations for one event.
type BulkAttendanceRequest struct {
	Records []AttendanceRequest `json:"records"`
}

// AttendanceResponse view.
type AttendanceResponse struct {
	EventID           int64     `json:"event_id"`
	PlayerID          int64     `json:"player_id"`
	Present           bool      `json:"present"`
	PerformanceRating *float64  `json:"performance_rating"`
	Notes             *string   `json:"notes"`
	Revision          int64     `json:"revision"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ErrorBody mirrors the error envelope contents.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// AttendanceItemResponse reports one item of a bulk submission.
type AttendanceItemResponse struct {
	Index    int                 `json:"index"`
	PlayerID int64               `json:"player_id"`
	Status   string              `json:"status"`
	Data     *AttendanceResponse `json:"data,omitempty"`
	Error    *ErrorBody          `json:"error,omitempty"`
}

// BulkAttendanceResponse summarizes a bulk submission.
type BulkAttendanceResponse struct {
	Processed int                      `json:"processed"`
	Failed    int                      `json:"failed"`
	Results   []AttendanceItemResponse `json:"results"`
}

// NewAttendanceResponse maps a record.
func NewAttendanceResponse(a *domain.Attendance) AttendanceResponse {
	return AttendanceResponse{
		EventID:           a.EventID,
		PlayerID:          a.PlayerID,
		Present:           a.Present,
		PerformanceRating: a.PerformanceRating,
		Notes:             a.Notes,
		Revision:          a.Revision,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}
