package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/repositories"
)

type ShiftRepositoryImpl struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) repositories.ShiftRepository {
	return &ShiftRepositoryImpl{db: db}
}

func (r *ShiftRepositoryImpl) Create(ctx context.Context, shift *models.Shift) error {
	return conn(ctx, r.db).Create(shift).Error
}

func (r *ShiftRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Shift, error) {
	var shift models.Shift
	err := conn(ctx, r.db).Where("id = ?", id).First(&shift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shift, nil
}

func subjectScope(subject models.Subject) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if subject.IsBarber() {
			return db.Where("barber_id = ?", subject.ID)
		}
		return db.Where("user_id = ?", subject.ID)
	}
}

func filterScope(filter repositories.ShiftFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Start != nil {
			db = db.Where("clock_in >= ?", *filter.Start)
		}
		if filter.End != nil {
			db = db.Where("clock_in <= ?", *filter.End)
		}
		if filter.Limit > 0 {
			db = db.Limit(filter.Limit)
		}
		return db
	}
}

func (r *ShiftRepositoryImpl) GetOpenBySubject(ctx context.Context, subject models.Subject) ([]models.Shift, error) {
	var shifts []models.Shift
	query := conn(ctx, r.db).
		Scopes(subjectScope(subject)).
		Where("clock_out IS NULL").
		Order("clock_in ASC")

	// SQLite has no row locks; its single writer already serialises the transaction.
	if inTransaction(ctx) && isPostgres(r.db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	err := query.Find(&shifts).Error
	return shifts, err
}

func (r *ShiftRepositoryImpl) GetOpenByBranch(ctx context.Context, branchID uuid.UUID) ([]models.Shift, error) {
	var shifts []models.Shift
	err := conn(ctx, r.db).
		Where("branch_id = ? AND clock_out IS NULL", branchID).
		Order("clock_in ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *ShiftRepositoryImpl) ListBySubject(ctx context.Context, subject models.Subject, filter repositories.ShiftFilter) ([]models.Shift, error) {
	var shifts []models.Shift
	err := conn(ctx, r.db).
		Scopes(subjectScope(subject), filterScope(filter)).
		Order("clock_in DESC").
		Find(&shifts).Error
	return shifts, err
}

func (r *ShiftRepositoryImpl) ListByBranch(ctx context.Context, branchID uuid.UUID, filter repositories.ShiftFilter) ([]models.Shift, error) {
	var shifts []models.Shift
	err := conn(ctx, r.db).
		Where("branch_id = ?", branchID).
		Scopes(filterScope(filter)).
		Order("clock_in DESC").
		Find(&shifts).Error
	return shifts, err
}

func (r *ShiftRepositoryImpl) Close(ctx context.Context, id uuid.UUID, close repositories.ShiftClose) error {
	updates := map[string]interface{}{
		"clock_out": close.ClockOut,
		"status":    close.Status,
	}
	if close.ConfidenceScore != nil {
		updates["confidence_score"] = *close.ConfidenceScore
	}
	if close.PhotoStorageID != nil {
		updates["photo_storage_id"] = *close.PhotoStorageID
	}
	if close.LivenessPassed != nil {
		updates["liveness_passed"] = *close.LivenessPassed
	}
	if close.DeviceFingerprint != nil {
		updates["device_fingerprint"] = *close.DeviceFingerprint
	}
	if close.Method != "" {
		updates["method"] = close.Method
	}

	result := conn(ctx, r.db).
		Model(&models.Shift{}).
		Where("id = ? AND clock_out IS NULL", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrShiftNotOpen
	}
	return nil
}
