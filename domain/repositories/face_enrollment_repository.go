package repositories

import (
	"context"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
)

type FaceEnrollmentRepository interface {
	// Create stores the enrollment together with its embeddings.
	Create(ctx context.Context, enrollment *models.FaceEnrollment) error

	// Returns nil, nil when the subject has no active enrollment.
	GetActiveBySubject(ctx context.Context, subject models.Subject) (*models.FaceEnrollment, error)

	// Active enrollments of a branch with embeddings preloaded.
	ListActiveByBranch(ctx context.Context, branchID uuid.UUID) ([]models.FaceEnrollment, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status models.EnrollmentStatus) error
}
