package dto

import (
	"time"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
)

type AttendanceActivityResponse struct {
	ID           uuid.UUID  `json:"id"`
	ShiftID      uuid.UUID  `json:"shift_id"`
	BarberID     *uuid.UUID `json:"barber_id,omitempty"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	BranchID     uuid.UUID  `json:"branch_id"`
	ActivityType string     `json:"activity_type"`
	Status       string     `json:"status"`
	Confidence   *float64   `json:"confidence,omitempty"`
	Method       string     `json:"method,omitempty"`
	Message      string     `json:"message"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ActivityListResponse is a page of activities
type ActivityListResponse struct {
	Activities []*AttendanceActivityResponse `json:"activities"`
	Total      int64                         `json:"total"`
	Page       int                           `json:"page"`
	Limit      int                           `json:"limit"`
}

func ActivitiesToResponse(activities []models.AttendanceActivity) []*AttendanceActivityResponse {
	result := make([]*AttendanceActivityResponse, len(activities))
	for i, a := range activities {
		result[i] = &AttendanceActivityResponse{
			ID:           a.ID,
			ShiftID:      a.ShiftID,
			BarberID:     a.BarberID,
			UserID:       a.UserID,
			BranchID:     a.BranchID,
			ActivityType: string(a.ActivityType),
			Status:       string(a.Status),
			Confidence:   a.Confidence,
			Method:       string(a.Method),
			Message:      a.Message,
			CreatedAt:    a.CreatedAt,
		}
	}
	return result
}
