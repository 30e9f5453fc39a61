package dto

import (
	"time"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/services"
)

// SubjectRequest identifies who is clocking. Exactly one id is expected; barber_id wins.
type SubjectRequest struct {
	BarberID string `json:"barber_id" query:"barber_id" validate:"omitempty,uuid"`
	UserID   string `json:"user_id" query:"user_id" validate:"omitempty,uuid"`
}

// Subject builds the domain subject, failing with MISSING_ID when neither id is given.
func (r SubjectRequest) Subject() (models.Subject, error) {
	barberID, err := optionalUUID("barber_id", r.BarberID)
	if err != nil {
		return models.Subject{}, err
	}
	userID, err := optionalUUID("user_id", r.UserID)
	if err != nil {
		return models.Subject{}, err
	}
	subject, ok := models.SubjectFromIDs(barberID, userID)
	if !ok {
		return models.Subject{}, services.ErrMissingID
	}
	return subject, nil
}

type FRClockInRequest struct {
	SubjectRequest
	BranchID          string   `json:"branch_id" validate:"required,uuid"`
	ConfidenceScore   *float64 `json:"confidence_score" validate:"required,gte=0,lte=1"`
	PhotoStorageID    string   `json:"photo_storage_id" validate:"required"`
	LivenessPassed    bool     `json:"liveness_passed"`
	DeviceFingerprint *string  `json:"device_fingerprint"`
	GeofencePassed    *bool    `json:"geofence_passed"`
}

type FRClockOutRequest struct {
	SubjectRequest
	ConfidenceScore   *float64 `json:"confidence_score" validate:"required,gte=0,lte=1"`
	PhotoStorageID    string   `json:"photo_storage_id" validate:"required"`
	LivenessPassed    *bool    `json:"liveness_passed"`
	DeviceFingerprint *string  `json:"device_fingerprint"`
}

type ManualClockInRequest struct {
	SubjectRequest
	BranchID          string  `json:"branch_id" validate:"required,uuid"`
	PhotoStorageID    *string `json:"photo_storage_id"`
	DeviceFingerprint *string `json:"device_fingerprint"`
}

func FRClockInRequestToInput(subject models.Subject, req *FRClockInRequest) services.FRClockInInput {
	return services.FRClockInInput{
		Subject:           subject,
		BranchID:          uuid.MustParse(req.BranchID),
		ConfidenceScore:   *req.ConfidenceScore,
		PhotoStorageID:    req.PhotoStorageID,
		LivenessPassed:    req.LivenessPassed,
		DeviceFingerprint: req.DeviceFingerprint,
		GeofencePassed:    req.GeofencePassed,
	}
}

func FRClockOutRequestToInput(subject models.Subject, req *FRClockOutRequest) services.FRClockOutInput {
	return services.FRClockOutInput{
		Subject:           subject,
		ConfidenceScore:   *req.ConfidenceScore,
		PhotoStorageID:    req.PhotoStorageID,
		LivenessPassed:    req.LivenessPassed,
		DeviceFingerprint: req.DeviceFingerprint,
	}
}

func ManualClockInRequestToInput(subject models.Subject, req *ManualClockInRequest) services.ManualClockInInput {
	return services.ManualClockInInput{
		Subject:           subject,
		BranchID:          uuid.MustParse(req.BranchID),
		PhotoStorageID:    req.PhotoStorageID,
		DeviceFingerprint: req.DeviceFingerprint,
	}
}

type ClockInResponse struct {
	ShiftID                 uuid.UUID  `json:"shift_id"`
	ClockInTime             time.Time  `json:"clock_in_time"`
	Status                  string     `json:"status"`
	AutoApproved            bool       `json:"auto_approved"`
	AutoClosedPreviousShift bool       `json:"auto_closed_previous_shift"`
	AutoClosedShiftID       *uuid.UUID `json:"auto_closed_shift_id,omitempty"`
}

type ClockOutResponse struct {
	ShiftID         uuid.UUID `json:"shift_id"`
	ClockOutTime    time.Time `json:"clock_out_time"`
	Status          string    `json:"status"`
	AutoApproved    bool      `json:"auto_approved"`
	ShiftDurationMs int64     `json:"shift_duration_ms"`
}

type ShiftResponse struct {
	ID                uuid.UUID  `json:"id"`
	BarberID          *uuid.UUID `json:"barber_id,omitempty"`
	UserID            *uuid.UUID `json:"user_id,omitempty"`
	BranchID          uuid.UUID  `json:"branch_id"`
	ClockIn           time.Time  `json:"clock_in"`
	ClockOut          *time.Time `json:"clock_out"`
	Status            string     `json:"status"`
	ConfidenceScore   *float64   `json:"confidence_score,omitempty"`
	PhotoStorageID    *string    `json:"photo_storage_id,omitempty"`
	LivenessPassed    *bool      `json:"liveness_passed,omitempty"`
	DeviceFingerprint *string    `json:"device_fingerprint,omitempty"`
	Method            string     `json:"method,omitempty"`
	GeofencePassed    *bool      `json:"geofence_passed,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type ClockStatusResponse struct {
	IsClockedIn     bool           `json:"is_clocked_in"`
	Shift           *ShiftResponse `json:"shift"`
	ShiftDurationMs *int64         `json:"shift_duration_ms"`
}

type BranchShiftResponse struct {
	ShiftResponse
	PersonName string `json:"person_name"`
}

type BoardEntryResponse struct {
	BarberID     uuid.UUID  `json:"barber_id"`
	BarberName   string     `json:"barber_name"`
	BarberAvatar *string    `json:"barber_avatar"`
	IsClockedIn  bool       `json:"is_clocked_in"`
	ClockInTime  *time.Time `json:"clock_in_time"`
	ShiftID      *uuid.UUID `json:"shift_id,omitempty"`
}

func ClockInResultToResponse(r *services.ClockInResult) *ClockInResponse {
	return &ClockInResponse{
		ShiftID:                 r.ShiftID,
		ClockInTime:             r.ClockInTime,
		Status:                  string(r.Status),
		AutoApproved:            r.AutoApproved,
		AutoClosedPreviousShift: r.AutoClosedPreviousShift,
		AutoClosedShiftID:       r.AutoClosedShiftID,
	}
}

func ClockOutResultToResponse(r *services.ClockOutResult) *ClockOutResponse {
	return &ClockOutResponse{
		ShiftID:         r.ShiftID,
		ClockOutTime:    r.ClockOutTime,
		Status:          string(r.Status),
		AutoApproved:    r.AutoApproved,
		ShiftDurationMs: r.ShiftDuration.Milliseconds(),
	}
}

func ShiftToResponse(s *models.Shift) *ShiftResponse {
	if s == nil {
		return nil
	}
	return &ShiftResponse{
		ID:                s.ID,
		BarberID:          s.BarberID,
		UserID:            s.UserID,
		BranchID:          s.BranchID,
		ClockIn:           s.ClockIn,
		ClockOut:          s.ClockOut,
		Status:            string(s.EffectiveStatus()),
		ConfidenceScore:   s.ConfidenceScore,
		PhotoStorageID:    s.PhotoStorageID,
		LivenessPassed:    s.LivenessPassed,
		DeviceFingerprint: s.DeviceFingerprint,
		Method:            string(s.Method),
		GeofencePassed:    s.GeofencePassed,
		CreatedAt:         s.CreatedAt,
	}
}

func ShiftsToResponse(shifts []models.Shift) []*ShiftResponse {
	result := make([]*ShiftResponse, len(shifts))
	for i := range shifts {
		result[i] = ShiftToResponse(&shifts[i])
	}
	return result
}

func ClockStatusToResponse(s *services.ClockStatus) *ClockStatusResponse {
	resp := &ClockStatusResponse{IsClockedIn: s.IsClockedIn}
	if s.Shift != nil {
		resp.Shift = ShiftToResponse(s.Shift)
		ms := s.ShiftDuration.Milliseconds()
		resp.ShiftDurationMs = &ms
	}
	return resp
}

func BranchShiftsToResponse(rows []services.ShiftWithPerson) []*BranchShiftResponse {
	result := make([]*BranchShiftResponse, len(rows))
	for i := range rows {
		result[i] = &BranchShiftResponse{
			ShiftResponse: *ShiftToResponse(&rows[i].Shift),
			PersonName:    rows[i].PersonName,
		}
	}
	return result
}

func BoardToResponse(entries []services.BarberBoardEntry) []*BoardEntryResponse {
	result := make([]*BoardEntryResponse, len(entries))
	for i, e := range entries {
		resp := &BoardEntryResponse{
			BarberID:    e.BarberID,
			BarberName:  e.BarberName,
			IsClockedIn: e.IsClockedIn,
			ClockInTime: e.ClockInTime,
			ShiftID:     e.ShiftID,
		}
		if e.Avatar != "" {
			avatar := e.Avatar
			resp.BarberAvatar = &avatar
		}
		result[i] = resp
	}
	return result
}

func optionalUUID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, services.ValidationError(field + " must be a valid UUID")
	}
	return &id, nil
}
