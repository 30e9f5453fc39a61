package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/repositories"
)

type AttendanceActivityRepositoryImpl struct {
	db *gorm.DB
}

func NewAttendanceActivityRepository(db *gorm.DB) repositories.AttendanceActivityRepository {
	return &AttendanceActivityRepositoryImpl{db: db}
}

func (r *AttendanceActivityRepositoryImpl) Create(ctx context.Context, activity *models.AttendanceActivity) error {
	return conn(ctx, r.db).Create(activity).Error
}

func (r *AttendanceActivityRepositoryImpl) GetByBranch(ctx context.Context, branchID uuid.UUID, offset, limit int) ([]models.AttendanceActivity, int64, error) {
	var activities []models.AttendanceActivity
	var total int64

	query := conn(ctx, r.db).Model(&models.AttendanceActivity{}).Where("branch_id = ?", branchID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&activities).Error

	return activities, total, err
}

func (r *AttendanceActivityRepositoryImpl) GetByShift(ctx context.Context, shiftID uuid.UUID) ([]models.AttendanceActivity, error) {
	var activities []models.AttendanceActivity
	err := conn(ctx, r.db).
		Where("shift_id = ?", shiftID).
		Order("created_at ASC").
		Find(&activities).Error
	return activities, err
}

func (r *AttendanceActivityRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := conn(ctx, r.db).
		Where("created_at < ?", cutoff.UTC()).
		Delete(&models.AttendanceActivity{})

	return result.RowsAffected, result.Error
}
