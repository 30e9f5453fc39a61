package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/repositories"
)

type AttendanceConfigRepositoryImpl struct {
	db *gorm.DB
}

func NewAttendanceConfigRepository(db *gorm.DB) repositories.AttendanceConfigRepository {
	return &AttendanceConfigRepositoryImpl{db: db}
}

func (r *AttendanceConfigRepositoryImpl) GetByBranch(ctx context.Context, branchID uuid.UUID) (*models.AttendanceConfig, error) {
	var config models.AttendanceConfig
	err := conn(ctx, r.db).Where("branch_id = ?", branchID).First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

func (r *AttendanceConfigRepositoryImpl) Create(ctx context.Context, config *models.AttendanceConfig) error {
	return conn(ctx, r.db).Create(config).Error
}

func (r *AttendanceConfigRepositoryImpl) Update(ctx context.Context, config *models.AttendanceConfig) error {
	return conn(ctx, r.db).Save(config).Error
}
