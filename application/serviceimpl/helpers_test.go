package serviceimpl_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"barbershop-attendance/application/serviceimpl"
	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/services"
	"barbershop-attendance/infrastructure/locking"
	"barbershop-attendance/infrastructure/postgres"
	"barbershop-attendance/pkg/testutil"
)

// 09:00 local (UTC+8) on 2024-03-05
var base = time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu     sync.Mutex
	events []services.AttendanceEvent
}

func (n *recordingNotifier) Publish(event services.AttendanceEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.Type
	}
	return out
}

type recordingPhotos struct {
	mu      sync.Mutex
	deleted []string
	fail    bool
}

func (p *recordingPhotos) Delete(ctx context.Context, storageID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("storage unavailable")
	}
	p.deleted = append(p.deleted, storageID)
	return nil
}

type harness struct {
	db       *gorm.DB
	fx       *testutil.Fixtures
	clock    *testutil.FakeClock
	locker   *locking.LocalLocker
	notifier *recordingNotifier

	configs    services.AttendanceConfigService
	attendance services.AttendanceService
	activities services.AttendanceActivityService

	branch *models.Branch
	barber *models.Barber
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithLockTimeout(t, time.Second)
}

func newHarnessWithLockTimeout(t *testing.T, lockTimeout time.Duration) *harness {
	t.Helper()

	db := testutil.NewTestDB(t)
	h := &harness{
		db:       db,
		fx:       testutil.NewFixtures(t, db),
		clock:    testutil.NewFakeClock(base),
		locker:   locking.NewLocalLocker(),
		notifier: &recordingNotifier{},
	}

	shiftRepo := postgres.NewShiftRepository(db)
	identity := serviceimpl.NewIdentityResolver(postgres.NewIdentityRepository(db))
	h.configs = serviceimpl.NewAttendanceConfigService(postgres.NewAttendanceConfigRepository(db))
	h.activities = serviceimpl.NewAttendanceActivityService(postgres.NewAttendanceActivityRepository(db), h.clock.Now)
	h.attendance = serviceimpl.NewAttendanceService(
		postgres.NewTransactor(db),
		shiftRepo,
		h.configs,
		identity,
		h.locker,
		lockTimeout,
		h.notifier,
		h.activities,
		h.clock.Now,
	)

	h.branch = h.fx.Branch("Makati")
	h.barber = h.fx.Barber(h.branch, "Juan Dela Cruz")
	return h
}

func (h *harness) subject() models.Subject {
	return models.BarberSubject(h.barber.ID)
}

func (h *harness) clockIn(t *testing.T, score float64) (*services.ClockInResult, error) {
	t.Helper()
	return h.attendance.FRClockIn(context.Background(), services.FRClockInInput{
		Subject:         h.subject(),
		BranchID:        h.branch.ID,
		ConfidenceScore: score,
		PhotoStorageID:  "photo-in",
		LivenessPassed:  true,
	})
}

func (h *harness) clockOut(t *testing.T, score float64) (*services.ClockOutResult, error) {
	t.Helper()
	return h.attendance.FRClockOut(context.Background(), services.FRClockOutInput{
		Subject:         h.subject(),
		ConfidenceScore: score,
		PhotoStorageID:  "photo-out",
	})
}

func (h *harness) shift(t *testing.T, id uuid.UUID) models.Shift {
	t.Helper()
	var shift models.Shift
	require.NoError(t, h.db.First(&shift, "id = ?", id).Error)
	return shift
}

func (h *harness) countShifts(t *testing.T, open bool) int64 {
	t.Helper()
	q := h.db.Model(&models.Shift{}).Where("barber_id = ?", h.barber.ID)
	if open {
		q = q.Where("clock_out IS NULL")
	}
	var n int64
	require.NoError(t, q.Count(&n).Error)
	return n
}

func ptr[T any](v T) *T {
	return &v
}

func (h *harness) activitiesByShift(t *testing.T, shiftID uuid.UUID) ([]models.AttendanceActivity, error) {
	t.Helper()
	return postgres.NewAttendanceActivityRepository(h.db).GetByShift(context.Background(), shiftID)
}
