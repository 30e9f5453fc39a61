package dto

import (
	"time"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/services"
)

type EnrollRequest struct {
	SubjectRequest
	BranchID        string      `json:"branch_id" validate:"required,uuid"`
	Embeddings      [][]float32 `json:"embeddings" validate:"required,min=1"`
	PhotoStorageIDs []string    `json:"photo_storage_ids"`
	ConsentGiven    bool        `json:"consent_given"`
}

func EnrollRequestToInput(subject models.Subject, req *EnrollRequest) services.EnrollInput {
	return services.EnrollInput{
		Subject:         subject,
		BranchID:        uuid.MustParse(req.BranchID),
		Embeddings:      req.Embeddings,
		PhotoStorageIDs: req.PhotoStorageIDs,
		ConsentGiven:    req.ConsentGiven,
	}
}

type EnrollResponse struct {
	EnrollmentID uuid.UUID `json:"enrollment_id"`
}

type EnrollmentResponse struct {
	ID               uuid.UUID  `json:"id"`
	BarberID         *uuid.UUID `json:"barber_id,omitempty"`
	UserID           *uuid.UUID `json:"user_id,omitempty"`
	BranchID         uuid.UUID  `json:"branch_id"`
	Status           string     `json:"enrollment_status"`
	PhotoStorageIDs  []string   `json:"photo_storage_ids"`
	ConsentGiven     bool       `json:"consent_given"`
	ConsentTimestamp time.Time  `json:"consent_timestamp"`
	EmbeddingCount   int        `json:"embedding_count"`
	CreatedAt        time.Time  `json:"created_at"`
}

type EnrollmentStatusResponse struct {
	IsEnrolled bool `json:"is_enrolled"`
}

// EnrolledFaceResponse carries what a kiosk needs to match one person.
type EnrolledFaceResponse struct {
	EnrollmentID uuid.UUID   `json:"enrollment_id"`
	SubjectKind  string      `json:"subject_kind"`
	SubjectID    uuid.UUID   `json:"subject_id"`
	Name         string      `json:"name"`
	Avatar       string      `json:"avatar,omitempty"`
	Embeddings   [][]float32 `json:"embeddings"`
}

func EnrollmentToResponse(e *models.FaceEnrollment) *EnrollmentResponse {
	if e == nil {
		return nil
	}
	photos := e.PhotoStorageIDs
	if photos == nil {
		photos = []string{}
	}
	return &EnrollmentResponse{
		ID:               e.ID,
		BarberID:         e.BarberID,
		UserID:           e.UserID,
		BranchID:         e.BranchID,
		Status:           string(e.Status),
		PhotoStorageIDs:  photos,
		ConsentGiven:     e.ConsentGiven,
		ConsentTimestamp: e.ConsentTimestamp,
		EmbeddingCount:   len(e.Embeddings),
		CreatedAt:        e.CreatedAt,
	}
}

func EnrolledFacesToResponse(faces []services.EnrolledFace) []*EnrolledFaceResponse {
	result := make([]*EnrolledFaceResponse, len(faces))
	for i, f := range faces {
		result[i] = &EnrolledFaceResponse{
			EnrollmentID: f.EnrollmentID,
			SubjectKind:  string(f.Subject.Kind),
			SubjectID:    f.Subject.ID,
			Name:         f.Name,
			Avatar:       f.Avatar,
			Embeddings:   f.Embeddings,
		}
	}
	return result
}
