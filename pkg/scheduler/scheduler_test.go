package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbershop-attendance/domain/models"
)

func TestGocronScheduler_AddRunRemove(t *testing.T) {
	s := NewEventScheduler(time.UTC)

	runs := 0
	require.NoError(t, s.AddJob("count", "0 3 * * *", func(ctx context.Context) error {
		runs++
		return nil
	}))
	assert.Error(t, s.AddJob("count", "0 3 * * *", func(ctx context.Context) error { return nil }))

	info, ok := s.GetJob("count")
	require.True(t, ok)
	assert.Equal(t, "0 3 * * *", info.CronExpr)
	assert.Nil(t, info.LastRun)
	require.NotNil(t, info.NextRun)

	require.NoError(t, s.RunJob("count"))
	assert.Equal(t, 1, runs)

	info, _ = s.GetJob("count")
	assert.Equal(t, 1, info.RunCount)
	assert.NotNil(t, info.LastRun)

	require.NoError(t, s.RemoveJob("count"))
	assert.Empty(t, s.ListJobs())
	assert.Error(t, s.RunJob("count"))
}

func TestGocronScheduler_RecordsFailures(t *testing.T) {
	s := NewEventScheduler(nil)
	require.NoError(t, s.AddJob("broken", "*/5 * * * *", func(ctx context.Context) error {
		return errors.New("boom")
	}))

	assert.EqualError(t, s.RunJob("broken"), "boom")
	info, _ := s.GetJob("broken")
	assert.Equal(t, "boom", info.LastError)
}

func TestGocronScheduler_InvalidCron(t *testing.T) {
	s := NewEventScheduler(time.UTC)
	assert.Error(t, s.AddJob("bad", "not a cron", func(ctx context.Context) error { return nil }))
}

func TestGocronScheduler_StartStop(t *testing.T) {
	s := NewEventScheduler(time.UTC)
	assert.False(t, s.IsRunning())
	s.Start()
	assert.True(t, s.IsRunning())
	s.Stop()
	assert.False(t, s.IsRunning())
}

type fakeActivities struct {
	days int
}

func (f *fakeActivities) Record(ctx context.Context, activity *models.AttendanceActivity) {}

func (f *fakeActivities) GetByBranch(ctx context.Context, branchID uuid.UUID, page, limit int) ([]models.AttendanceActivity, int64, error) {
	return nil, 0, nil
}

func (f *fakeActivities) Cleanup(ctx context.Context, days int) (int64, error) {
	f.days = days
	return 3, nil
}

func TestCronLocation(t *testing.T) {
	manila, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)

	tests := []struct {
		name string
		loc  *time.Location
		want string
	}{
		{name: "nil", loc: nil, want: "UTC"},
		{name: "named", loc: manila, want: "Asia/Manila"},
		{name: "shift zone", loc: models.ShiftZone, want: "Etc/GMT-8"},
		{name: "negative offset", loc: time.FixedZone("X", -5*60*60), want: "Etc/GMT+5"},
		{name: "zero offset", loc: time.FixedZone("Z", 0), want: "Etc/GMT"},
		{name: "half hour offset", loc: time.FixedZone("IST", 5*60*60+30*60), want: "UTC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cronLocation(tt.loc).String())
		})
	}
}

func TestRegisterAttendanceJobs(t *testing.T) {
	s := NewEventScheduler(models.ShiftZone)
	activities := &fakeActivities{}

	require.NoError(t, RegisterAttendanceJobs(s, activities, 30))
	require.NoError(t, s.RunJob(ActivityRetentionJobID))
	assert.Equal(t, 30, activities.days)

	disabled := NewEventScheduler(time.UTC)
	require.NoError(t, RegisterAttendanceJobs(disabled, activities, 0))
	assert.Empty(t, disabled.ListJobs())
}
