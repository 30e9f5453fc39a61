package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/infrastructure/postgres"
	"barbershop-attendance/pkg/testutil"
)

func descriptor(seed float32) []float32 {
	d := make([]float32, models.FaceDescriptorDimensions)
	for i := range d {
		d[i] = seed + float32(i)/1000
	}
	return d
}

func TestFaceEnrollmentRepository_StoresEmbeddingsInOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewFaceEnrollmentRepository(db)
	ctx := context.Background()
	barberID := uuid.New()
	branchID := uuid.New()

	enrollment := &models.FaceEnrollment{
		BranchID:         branchID,
		PhotoStorageIDs:  []string{"p1", "p2"},
		Status:           models.EnrollmentStatusActive,
		ConsentGiven:     true,
		ConsentTimestamp: base,
		Embeddings:       models.NewFaceEmbeddings([][]float32{descriptor(0.1), descriptor(0.2), descriptor(0.3)}),
	}
	enrollment.SetSubject(models.BarberSubject(barberID))
	require.NoError(t, repo.Create(ctx, enrollment))

	got, err := repo.GetActiveBySubject(ctx, models.BarberSubject(barberID))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"p1", "p2"}, got.PhotoStorageIDs)

	descriptors := got.Descriptors()
	require.Len(t, descriptors, 3)
	assert.InDelta(t, 0.2, descriptors[1][0], 1e-6)
	assert.Len(t, descriptors[0], models.FaceDescriptorDimensions)

	list, err := repo.ListActiveByBranch(ctx, branchID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Embeddings, 3)

	require.NoError(t, repo.UpdateStatus(ctx, enrollment.ID, models.EnrollmentStatusRevoked))
	got, err = repo.GetActiveBySubject(ctx, models.BarberSubject(barberID))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAttendanceConfigRepository_CreateAndUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewAttendanceConfigRepository(db)
	ctx := context.Background()
	branchID := uuid.New()

	missing, err := repo.GetByBranch(ctx, branchID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	auto := 0.7
	config := &models.AttendanceConfig{
		BranchID:             branchID,
		FREnabled:            true,
		AutoApproveThreshold: &auto,
		BarberOverrides:      []models.BarberOverride{{BarberID: uuid.New(), FRExempt: true}},
	}
	require.NoError(t, repo.Create(ctx, config))

	got, err := repo.GetByBranch(ctx, branchID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, config.ID, got.ID)
	assert.Equal(t, 0.7, *got.AutoApproveThreshold)
	require.Len(t, got.BarberOverrides, 1)
	assert.True(t, got.BarberOverrides[0].FRExempt)

	got.FREnabled = false
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.GetByBranch(ctx, branchID)
	require.NoError(t, err)
	assert.False(t, again.FREnabled)
	assert.Equal(t, 0.7, *again.AutoApproveThreshold)
}

func TestAttendanceDeviceRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewAttendanceDeviceRepository(db)
	ctx := context.Background()
	branchID := uuid.New()

	device := &models.AttendanceDevice{
		BranchID:          branchID,
		DeviceFingerprint: "fp-1",
		DeviceName:        "Front kiosk",
		IsActive:          true,
		RegisteredAt:      base,
	}
	require.NoError(t, repo.Create(ctx, device))

	got, err := repo.GetByFingerprint(ctx, "fp-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, device.ID, got.ID)

	got.IsActive = false
	require.NoError(t, repo.Update(ctx, got))

	byID, err := repo.GetByID(ctx, device.ID)
	require.NoError(t, err)
	assert.False(t, byID.IsActive)

	unknown, err := repo.GetByFingerprint(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, unknown)

	list, err := repo.ListByBranch(ctx, branchID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// fingerprints are globally unique
	dup := &models.AttendanceDevice{BranchID: uuid.New(), DeviceFingerprint: "fp-1", DeviceName: "Other", IsActive: true, RegisteredAt: base}
	assert.Error(t, repo.Create(ctx, dup))
}

func TestIdentityRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	fx := testutil.NewFixtures(t, db)
	repo := postgres.NewIdentityRepository(db)
	ctx := context.Background()

	branch := fx.Branch("Kapitolyo")
	active := fx.Barber(branch, "Alex Reyes")
	inactive := fx.Barber(branch, "Ben Cruz")
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)
	staff := fx.User(branch, "cashier")

	barber, err := repo.GetBarber(ctx, active.ID)
	require.NoError(t, err)
	require.NotNil(t, barber)
	assert.Equal(t, "Alex Reyes", barber.FullName)

	missing, err := repo.GetBarber(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	user, err := repo.GetUser(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, "cashier", user.DisplayName())

	gotBranch, err := repo.GetBranch(ctx, branch.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kapitolyo", gotBranch.Name)

	barbers, err := repo.ListActiveBarbersByBranch(ctx, branch.ID)
	require.NoError(t, err)
	require.Len(t, barbers, 1)
	assert.Equal(t, active.ID, barbers[0].ID)

	byIDs, err := repo.GetBarbersByIDs(ctx, []uuid.UUID{active.ID, inactive.ID})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)

	users, err := repo.GetUsersByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestAttendanceActivityRepository_RetentionCleanup(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewAttendanceActivityRepository(db)
	ctx := context.Background()
	branchID := uuid.New()
	shiftID := uuid.New()

	old := &models.AttendanceActivity{ShiftID: shiftID, BranchID: branchID, ActivityType: models.ActivityClockIn, CreatedAt: time.Now().UTC().AddDate(0, 0, -100)}
	fresh := &models.AttendanceActivity{ShiftID: shiftID, BranchID: branchID, ActivityType: models.ActivityClockOut}
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, fresh))

	byShift, err := repo.GetByShift(ctx, shiftID)
	require.NoError(t, err)
	assert.Len(t, byShift, 2)

	deleted, err := repo.DeleteOlderThan(ctx, time.Now().AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	remaining, total, err := repo.GetByBranch(ctx, branchID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, remaining, 1)
	assert.Equal(t, models.ActivityClockOut, remaining[0].ActivityType)
}
