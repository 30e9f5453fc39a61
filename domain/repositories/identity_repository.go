package repositories

import (
	"context"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
)

// IdentityRepository reads the shared barber, staff and branch registries.
// Lookups return nil, nil when the row does not exist.
type IdentityRepository interface {
	GetBarber(ctx context.Context, id uuid.UUID) (*models.Barber, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetBranch(ctx context.Context, id uuid.UUID) (*models.Branch, error)

	GetBarbersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Barber, error)
	GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)

	ListActiveBarbersByBranch(ctx context.Context, branchID uuid.UUID) ([]models.Barber, error)
}
