package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/infrastructure/postgres"
	"barbershop-attendance/pkg/testutil"
)

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := testutil.NewTestDB(t)
	tx := postgres.NewTransactor(db)
	repo := postgres.NewShiftRepository(db)
	ctx := context.Background()
	barberID := uuid.New()
	boom := errors.New("boom")

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.Create(ctx, &models.Shift{BarberID: &barberID, BranchID: uuid.New(), ClockIn: base, Status: models.ShiftStatusApprovedIn}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	open, err := repo.GetOpenBySubject(ctx, models.BarberSubject(barberID))
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestTransactor_NestedCallsJoinOuterTransaction(t *testing.T) {
	db := testutil.NewTestDB(t)
	tx := postgres.NewTransactor(db)
	repo := postgres.NewShiftRepository(db)
	ctx := context.Background()
	barberID := uuid.New()

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return repo.Create(ctx, &models.Shift{BarberID: &barberID, BranchID: uuid.New(), ClockIn: base, Status: models.ShiftStatusApprovedIn})
		})
	})
	require.NoError(t, err)

	open, err := repo.GetOpenBySubject(ctx, models.BarberSubject(barberID))
	require.NoError(t, err)
	assert.Len(t, open, 1)
}
