package serviceimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/repositories"
	"barbershop-attendance/domain/services"
	"barbershop-attendance/pkg/logger"
)

type EnrollmentServiceImpl struct {
	transactor     repositories.Transactor
	enrollmentRepo repositories.FaceEnrollmentRepository
	identity       *IdentityResolver
	photos         services.PhotoStorage
	locker         services.SubjectLocker
	lockTimeout    time.Duration
	now            services.Clock
}

func NewEnrollmentService(
	transactor repositories.Transactor,
	enrollmentRepo repositories.FaceEnrollmentRepository,
	identity *IdentityResolver,
	photos services.PhotoStorage,
	locker services.SubjectLocker,
	lockTimeout time.Duration,
	now services.Clock,
) services.EnrollmentService {
	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}
	return &EnrollmentServiceImpl{
		transactor:     transactor,
		enrollmentRepo: enrollmentRepo,
		identity:       identity,
		photos:         photos,
		locker:         locker,
		lockTimeout:    lockTimeout,
		now:            now,
	}
}

func (s *EnrollmentServiceImpl) Enroll(ctx context.Context, input services.EnrollInput) (uuid.UUID, error) {
	if input.Subject.ID == uuid.Nil {
		return uuid.Nil, services.ErrMissingID
	}
	if !input.ConsentGiven {
		return uuid.Nil, services.ErrConsentRequired
	}
	if len(input.Embeddings) == 0 {
		return uuid.Nil, services.ValidationError("at least one face embedding is required")
	}
	for i, e := range input.Embeddings {
		if len(e) != models.FaceDescriptorDimensions {
			return uuid.Nil, services.ValidationError(fmt.Sprintf("embedding %d must have %d values, got %d", i, models.FaceDescriptorDimensions, len(e)))
		}
	}

	if err := s.identity.Resolve(ctx, input.Subject, &input.BranchID); err != nil {
		return uuid.Nil, err
	}

	var (
		enrollment     *models.FaceEnrollment
		releasedPhotos []string
	)

	// One enroll or revoke per subject at a time
	err := withSubjectLock(ctx, s.locker, s.lockTimeout, input.Subject, func(ctx context.Context) error {
		return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			prior, err := s.enrollmentRepo.GetActiveBySubject(ctx, input.Subject)
			if err != nil {
				return fmt.Errorf("failed to load active enrollment: %w", err)
			}
			if prior != nil {
				if err := s.enrollmentRepo.UpdateStatus(ctx, prior.ID, models.EnrollmentStatusRevoked); err != nil {
					return fmt.Errorf("failed to revoke prior enrollment: %w", err)
				}
				releasedPhotos = prior.PhotoStorageIDs
			}

			enrollment = &models.FaceEnrollment{
				BranchID:         input.BranchID,
				PhotoStorageIDs:  input.PhotoStorageIDs,
				Status:           models.EnrollmentStatusActive,
				ConsentGiven:     true,
				ConsentTimestamp: s.now(),
				Embeddings:       models.NewFaceEmbeddings(input.Embeddings),
			}
			enrollment.SetSubject(input.Subject)

			if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
				return fmt.Errorf("failed to create enrollment: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.releasePhotos(ctx, input.Subject, releasedPhotos)

	logger.Enrollment("face_enrolled", "Face enrollment created", map[string]interface{}{
		"enrollment_id": enrollment.ID.String(),
		"subject":       input.Subject.String(),
		"branch_id":     input.BranchID.String(),
		"embeddings":    len(input.Embeddings),
	})

	return enrollment.ID, nil
}

func (s *EnrollmentServiceImpl) Revoke(ctx context.Context, subject models.Subject) error {
	if subject.ID == uuid.Nil {
		return services.ErrMissingID
	}

	var active *models.FaceEnrollment
	err := withSubjectLock(ctx, s.locker, s.lockTimeout, subject, func(ctx context.Context) error {
		return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			active, err = s.enrollmentRepo.GetActiveBySubject(ctx, subject)
			if err != nil {
				return fmt.Errorf("failed to load active enrollment: %w", err)
			}
			if active == nil {
				return services.ErrNotEnrolled
			}
			if err := s.enrollmentRepo.UpdateStatus(ctx, active.ID, models.EnrollmentStatusRevoked); err != nil {
				return fmt.Errorf("failed to revoke enrollment: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return err
	}

	s.releasePhotos(ctx, subject, active.PhotoStorageIDs)

	logger.Enrollment("face_revoked", "Face enrollment revoked", map[string]interface{}{
		"enrollment_id": active.ID.String(),
		"subject":       subject.String(),
	})
	return nil
}

func (s *EnrollmentServiceImpl) GetActive(ctx context.Context, subject models.Subject) (*models.FaceEnrollment, error) {
	if subject.ID == uuid.Nil {
		return nil, services.ErrMissingID
	}
	enrollment, err := s.enrollmentRepo.GetActiveBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load active enrollment: %w", err)
	}
	return enrollment, nil
}

func (s *EnrollmentServiceImpl) IsEnrolled(ctx context.Context, subject models.Subject) (bool, error) {
	enrollment, err := s.GetActive(ctx, subject)
	if err != nil {
		return false, err
	}
	return enrollment != nil, nil
}

func (s *EnrollmentServiceImpl) ListByBranch(ctx context.Context, branchID uuid.UUID) ([]services.EnrolledFace, error) {
	enrollments, err := s.enrollmentRepo.ListActiveByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	subjects := make([]models.Subject, len(enrollments))
	for i := range enrollments {
		subjects[i] = enrollments[i].Subject()
	}
	people, err := s.identity.People(ctx, subjects)
	if err != nil {
		return nil, err
	}

	faces := make([]services.EnrolledFace, 0, len(enrollments))
	for i := range enrollments {
		e := &enrollments[i]
		person := people[subjects[i]]
		faces = append(faces, services.EnrolledFace{
			EnrollmentID: e.ID,
			Subject:      subjects[i],
			Name:         person.Name,
			Avatar:       person.Avatar,
			Embeddings:   e.Descriptors(),
		})
	}
	return faces, nil
}

// releasePhotos deletes stored photos. Failures are logged and ignored.
func (s *EnrollmentServiceImpl) releasePhotos(ctx context.Context, subject models.Subject, storageIDs []string) {
	if s.photos == nil {
		return
	}
	for _, id := range storageIDs {
		if err := s.photos.Delete(ctx, id); err != nil {
			logger.EnrollmentError("photo_delete_failed", "Failed to delete enrollment photo", err, map[string]interface{}{
				"subject":    subject.String(),
				"storage_id": id,
			})
		}
	}
}
