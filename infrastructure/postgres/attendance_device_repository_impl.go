package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/repositories"
)

type AttendanceDeviceRepositoryImpl struct {
	db *gorm.DB
}

func NewAttendanceDeviceRepository(db *gorm.DB) repositories.AttendanceDeviceRepository {
	return &AttendanceDeviceRepositoryImpl{db: db}
}

func (r *AttendanceDeviceRepositoryImpl) Create(ctx context.Context, device *models.AttendanceDevice) error {
	return conn(ctx, r.db).Create(device).Error
}

func (r *AttendanceDeviceRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.AttendanceDevice, error) {
	var device models.AttendanceDevice
	err := conn(ctx, r.db).Where("id = ?", id).First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

func (r *AttendanceDeviceRepositoryImpl) GetByFingerprint(ctx context.Context, fingerprint string) (*models.AttendanceDevice, error) {
	var device models.AttendanceDevice
	err := conn(ctx, r.db).Where("device_fingerprint = ?", fingerprint).First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

func (r *AttendanceDeviceRepositoryImpl) ListByBranch(ctx context.Context, branchID uuid.UUID) ([]models.AttendanceDevice, error) {
	var devices []models.AttendanceDevice
	err := conn(ctx, r.db).
		Where("branch_id = ?", branchID).
		Order("registered_at DESC").
		Find(&devices).Error
	return devices, err
}

func (r *AttendanceDeviceRepositoryImpl) Update(ctx context.Context, device *models.AttendanceDevice) error {
	return conn(ctx, r.db).Save(device).Error
}
