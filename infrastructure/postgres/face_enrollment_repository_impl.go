package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/repositories"
)

type FaceEnrollmentRepositoryImpl struct {
	db *gorm.DB
}

func NewFaceEnrollmentRepository(db *gorm.DB) repositories.FaceEnrollmentRepository {
	return &FaceEnrollmentRepositoryImpl{db: db}
}

func (r *FaceEnrollmentRepositoryImpl) Create(ctx context.Context, enrollment *models.FaceEnrollment) error {
	// Embeddings are inserted through the has-many association
	return conn(ctx, r.db).Create(enrollment).Error
}

func (r *FaceEnrollmentRepositoryImpl) GetActiveBySubject(ctx context.Context, subject models.Subject) (*models.FaceEnrollment, error) {
	var enrollment models.FaceEnrollment
	err := conn(ctx, r.db).
		Scopes(subjectScope(subject)).
		Where("enrollment_status = ?", models.EnrollmentStatusActive).
		Preload("Embeddings", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &enrollment, nil
}

func (r *FaceEnrollmentRepositoryImpl) ListActiveByBranch(ctx context.Context, branchID uuid.UUID) ([]models.FaceEnrollment, error) {
	var enrollments []models.FaceEnrollment
	err := conn(ctx, r.db).
		Where("branch_id = ? AND enrollment_status = ?", branchID, models.EnrollmentStatusActive).
		Preload("Embeddings", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at ASC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *FaceEnrollmentRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status models.EnrollmentStatus) error {
	return conn(ctx, r.db).
		Model(&models.FaceEnrollment{}).
		Where("id = ?", id).
		Update("enrollment_status", status).Error
}
