package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/go-co-op/gocron"

	"barbershop-attendance/pkg/logger"
)

// Task is one unit of scheduled work. The context is cancelled when the scheduler stops.
type Task func(ctx context.Context) error

type EventScheduler interface {
	Start()
	Stop()
	AddJob(id, cronExpr string, task Task) error
	RemoveJob(id string) error
	RunJob(id string) error
	GetJob(id string) (*JobInfo, bool)
	ListJobs() map[string]*JobInfo
	IsRunning() bool
}

type JobInfo struct {
	ID        string     `json:"id"`
	CronExpr  string     `json:"cron_expr"`
	IsActive  bool       `json:"is_active"`
	RunCount  int        `json:"run_count"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	NextRun   *time.Time `json:"next_run,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}

type scheduledJob struct {
	info JobInfo
	job  *gocron.Job
	task Task
}

type GocronScheduler struct {
	scheduler *gocron.Scheduler
	jobs      map[string]*scheduledJob
	mu        sync.RWMutex
	running   bool
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewEventScheduler creates a scheduler evaluating cron expressions in loc.
// gocron resolves the zone by name, so fixed zones are mapped to Etc/GMT.
func NewEventScheduler(loc *time.Location) EventScheduler {
	scheduler := gocron.NewScheduler(cronLocation(loc))
	scheduler.SingletonModeAll()

	ctx, cancel := context.WithCancel(context.Background())
	return &GocronScheduler{
		scheduler: scheduler,
		jobs:      make(map[string]*scheduledJob),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func cronLocation(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	if _, err := time.LoadLocation(loc.String()); err == nil {
		return loc
	}

	_, offset := time.Now().In(loc).Zone()
	if offset%3600 == 0 {
		name := "Etc/GMT"
		if hours := offset / 3600; hours != 0 {
			// Etc/GMT signs are inverted: Etc/GMT-8 is UTC+8
			name = fmt.Sprintf("Etc/GMT%+d", -hours)
		}
		if named, err := time.LoadLocation(name); err == nil {
			return named
		}
	}

	logger.Warn(logger.CategoryScheduler, "location", "Unsupported scheduler location, using UTC", map[string]interface{}{
		"location":       loc.String(),
		"offset_seconds": offset,
	})
	return time.UTC
}

func (s *GocronScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		logger.Warn(logger.CategoryScheduler, "start", "Scheduler is already running", nil)
		return
	}

	s.scheduler.StartAsync()
	s.running = true
	logger.Scheduler("started", "Event scheduler started", map[string]interface{}{"jobs": len(s.jobs)})
}

func (s *GocronScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	// gocron waits for running jobs, which take s.mu when they finish
	s.cancel()
	s.scheduler.Stop()
	logger.Scheduler("stopped", "Event scheduler stopped", nil)
}

func (s *GocronScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *GocronScheduler) AddJob(id, cronExpr string, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		return fmt.Errorf("job with ID %s already exists", id)
	}

	job, err := s.scheduler.Cron(cronExpr).Do(func() {
		s.execute(id)
	})
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	nextRun := job.NextRun()
	s.jobs[id] = &scheduledJob{
		info: JobInfo{
			ID:       id,
			CronExpr: cronExpr,
			IsActive: true,
			NextRun:  &nextRun,
		},
		job:  job,
		task: task,
	}

	logger.Scheduler("job_added", "Job added", map[string]interface{}{"job_id": id, "cron_expr": cronExpr, "next_run": nextRun.Format(time.RFC3339)})
	return nil
}

func (s *GocronScheduler) RemoveJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sj, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("job with ID %s not found", id)
	}

	s.scheduler.RemoveByReference(sj.job)
	delete(s.jobs, id)
	logger.Scheduler("job_removed", "Job removed", map[string]interface{}{"job_id": id})
	return nil
}

// RunJob executes a registered job immediately on the calling goroutine.
func (s *GocronScheduler) RunJob(id string) error {
	s.mu.RLock()
	_, exists := s.jobs[id]
	s.mu.RUnlock()
	if !exists {
		return fmt.Errorf("job with ID %s not found", id)
	}
	return s.execute(id)
}

func (s *GocronScheduler) execute(id string) error {
	s.mu.RLock()
	sj, exists := s.jobs[id]
	s.mu.RUnlock()
	if !exists {
		return nil
	}

	start := time.Now()
	logger.Scheduler("job_executing", "Executing job", map[string]interface{}{"job_id": id})

	err := sj.task(s.ctx)

	s.mu.Lock()
	sj.info.RunCount++
	sj.info.LastRun = &start
	nextRun := sj.job.NextRun()
	sj.info.NextRun = &nextRun
	sj.info.LastError = ""
	if err != nil {
		sj.info.LastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		logger.SchedulerError("job_failed", "Job failed", err, map[string]interface{}{"job_id": id})
		return err
	}
	logger.Scheduler("job_completed", "Job completed", map[string]interface{}{
		"job_id":      id,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

func (s *GocronScheduler) GetJob(id string) (*JobInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sj, exists := s.jobs[id]
	if !exists {
		return nil, false
	}
	info := sj.info
	return &info, true
}

func (s *GocronScheduler) ListJobs() map[string]*JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make(map[string]*JobInfo, len(s.jobs))
	for id, sj := range s.jobs {
		info := sj.info
		jobs[id] = &info
	}
	return jobs
}
