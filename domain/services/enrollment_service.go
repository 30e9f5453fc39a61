package services

import (
	"context"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
)

type EnrollInput struct {
	Subject         models.Subject
	BranchID        uuid.UUID
	Embeddings      [][]float32
	PhotoStorageIDs []string
	ConsentGiven    bool
}

// EnrolledFace is what a kiosk needs to match faces at a branch.
type EnrolledFace struct {
	EnrollmentID uuid.UUID
	Subject      models.Subject
	Name         string
	Avatar       string
	Embeddings   [][]float32
}

type EnrollmentService interface {
	// Enroll replaces the subject's active enrollment.
	Enroll(ctx context.Context, input EnrollInput) (uuid.UUID, error)

	// Revoke deactivates the active enrollment and releases its photos.
	Revoke(ctx context.Context, subject models.Subject) error

	GetActive(ctx context.Context, subject models.Subject) (*models.FaceEnrollment, error)
	IsEnrolled(ctx context.Context, subject models.Subject) (bool, error)
	ListByBranch(ctx context.Context, branchID uuid.UUID) ([]EnrolledFace, error)
}
