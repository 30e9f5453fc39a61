package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/repositories"
)

type IdentityRepositoryImpl struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) repositories.IdentityRepository {
	return &IdentityRepositoryImpl{db: db}
}

func firstOrNil[T any](db *gorm.DB, id uuid.UUID) (*T, error) {
	var row T
	err := db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *IdentityRepositoryImpl) GetBarber(ctx context.Context, id uuid.UUID) (*models.Barber, error) {
	return firstOrNil[models.Barber](conn(ctx, r.db), id)
}

func (r *IdentityRepositoryImpl) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return firstOrNil[models.User](conn(ctx, r.db), id)
}

func (r *IdentityRepositoryImpl) GetBranch(ctx context.Context, id uuid.UUID) (*models.Branch, error) {
	return firstOrNil[models.Branch](conn(ctx, r.db), id)
}

func (r *IdentityRepositoryImpl) GetBarbersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Barber, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var barbers []models.Barber
	err := conn(ctx, r.db).Where("id IN ?", ids).Find(&barbers).Error
	return barbers, err
}

func (r *IdentityRepositoryImpl) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	err := conn(ctx, r.db).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *IdentityRepositoryImpl) ListActiveBarbersByBranch(ctx context.Context, branchID uuid.UUID) ([]models.Barber, error) {
	var barbers []models.Barber
	err := conn(ctx, r.db).
		Where("branch_id = ? AND is_active = ?", branchID, true).
		Order("full_name ASC").
		Find(&barbers).Error
	return barbers, err
}
