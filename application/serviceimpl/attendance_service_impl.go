package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/repositories"
	"barbershop-attendance/domain/services"
	"barbershop-attendance/pkg/logger"
)

const (
	defaultHistoryLimit = 50
	defaultBranchLimit  = 100
)

type AttendanceServiceImpl struct {
	transactor    repositories.Transactor
	shiftRepo     repositories.ShiftRepository
	configService services.AttendanceConfigService
	identity      *IdentityResolver
	reconciler    *ShiftReconciler
	locker        services.SubjectLocker
	lockTimeout   time.Duration
	notifier      services.AttendanceNotifier
	activities    services.AttendanceActivityService
	now           services.Clock
}

func NewAttendanceService(
	transactor repositories.Transactor,
	shiftRepo repositories.ShiftRepository,
	configService services.AttendanceConfigService,
	identity *IdentityResolver,
	locker services.SubjectLocker,
	lockTimeout time.Duration,
	notifier services.AttendanceNotifier,
	activities services.AttendanceActivityService,
	now services.Clock,
) services.AttendanceService {
	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}
	return &AttendanceServiceImpl{
		transactor:    transactor,
		shiftRepo:     shiftRepo,
		configService: configService,
		identity:      identity,
		reconciler:    NewShiftReconciler(shiftRepo, now),
		locker:        locker,
		lockTimeout:   lockTimeout,
		notifier:      notifier,
		activities:    activities,
		now:           now,
	}
}

func (s *AttendanceServiceImpl) FRClockIn(ctx context.Context, input services.FRClockInInput) (*services.ClockInResult, error) {
	if input.Subject.ID == uuid.Nil {
		return nil, services.ErrMissingID
	}
	if input.BranchID == uuid.Nil {
		return nil, services.ValidationError("branch_id is required")
	}
	if err := validateConfidence(input.ConfidenceScore); err != nil {
		return nil, err
	}

	cfg, err := s.configService.GetConfig(ctx, input.BranchID)
	if err != nil {
		return nil, err
	}

	// Low confidence is refused before any shift state is read
	decision := cfg.Thresholds().Classify(input.ConfidenceScore)
	if decision == models.DecisionReject {
		logger.Attendance("clock_in_rejected", "Clock-in rejected for low confidence", map[string]interface{}{
			"subject":    input.Subject.String(),
			"branch_id":  input.BranchID.String(),
			"confidence": input.ConfidenceScore,
		})
		return nil, services.ErrLowConfidence
	}

	if err := s.identity.Resolve(ctx, input.Subject, &input.BranchID); err != nil {
		return nil, err
	}

	score := input.ConfidenceScore
	liveness := input.LivenessPassed
	photo := input.PhotoStorageID
	shift := &models.Shift{
		BranchID:          input.BranchID,
		Status:            decision.ClockInStatus(),
		ConfidenceScore:   &score,
		PhotoStorageID:    &photo,
		LivenessPassed:    &liveness,
		DeviceFingerprint: input.DeviceFingerprint,
		Method:            models.ClockMethodFR,
		GeofencePassed:    input.GeofencePassed,
	}
	shift.SetSubject(input.Subject)

	reconciled, err := s.openShift(ctx, shift)
	if err != nil {
		return nil, err
	}

	s.afterClockIn(ctx, shift, reconciled, models.ActivityClockIn)

	return &services.ClockInResult{
		ShiftID:                 shift.ID,
		ClockInTime:             shift.ClockIn,
		Status:                  shift.Status,
		AutoApproved:            shift.Status == models.ShiftStatusApprovedIn,
		AutoClosedPreviousShift: reconciled.AutoClosed,
		AutoClosedShiftID:       reconciled.AutoClosedShiftID,
	}, nil
}

func (s *AttendanceServiceImpl) ManualClockIn(ctx context.Context, input services.ManualClockInInput) (*services.ClockInResult, error) {
	if input.Subject.ID == uuid.Nil {
		return nil, services.ErrMissingID
	}
	if input.BranchID == uuid.Nil {
		return nil, services.ValidationError("branch_id is required")
	}

	if err := s.identity.Resolve(ctx, input.Subject, &input.BranchID); err != nil {
		return nil, err
	}

	shift := &models.Shift{
		BranchID:          input.BranchID,
		Status:            models.ShiftStatusPendingIn,
		PhotoStorageID:    input.PhotoStorageID,
		DeviceFingerprint: input.DeviceFingerprint,
		Method:            models.ClockMethodPIN,
	}
	shift.SetSubject(input.Subject)

	reconciled, err := s.openShift(ctx, shift)
	if err != nil {
		return nil, err
	}

	s.afterClockIn(ctx, shift, reconciled, models.ActivityManualClockIn)

	return &services.ClockInResult{
		ShiftID:                 shift.ID,
		ClockInTime:             shift.ClockIn,
		Status:                  shift.Status,
		AutoApproved:            false,
		AutoClosedPreviousShift: reconciled.AutoClosed,
		AutoClosedShiftID:       reconciled.AutoClosedShiftID,
	}, nil
}

// openShift reconciles the subject's open shifts and inserts the new one, under the
// subject lock and in a single transaction.
func (s *AttendanceServiceImpl) openShift(ctx context.Context, shift *models.Shift) (*ReconcileResult, error) {
	subject := shift.Subject()
	var reconciled *ReconcileResult

	err := s.withSubjectLock(ctx, subject, func(ctx context.Context) error {
		return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			result, err := s.reconciler.Reconcile(ctx, subject)
			if err != nil {
				return err
			}
			if result.ActiveShift != nil {
				return services.ErrAlreadyClockedIn
			}

			shift.ClockIn = s.now()
			if err := s.shiftRepo.Create(ctx, shift); err != nil {
				return fmt.Errorf("failed to create shift: %w", err)
			}
			reconciled = result
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return reconciled, nil
}

func (s *AttendanceServiceImpl) FRClockOut(ctx context.Context, input services.FRClockOutInput) (*services.ClockOutResult, error) {
	if input.Subject.ID == uuid.Nil {
		return nil, services.ErrMissingID
	}
	if err := validateConfidence(input.ConfidenceScore); err != nil {
		return nil, err
	}

	liveness := true
	if input.LivenessPassed != nil {
		liveness = *input.LivenessPassed
	}
	score := input.ConfidenceScore
	photo := input.PhotoStorageID

	var (
		shift        models.Shift
		clockOut     time.Time
		status       models.ShiftStatus
		autoApproved bool
	)

	err := s.withSubjectLock(ctx, input.Subject, func(ctx context.Context) error {
		return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			open, err := s.shiftRepo.GetOpenBySubject(ctx, input.Subject)
			if err != nil {
				return fmt.Errorf("failed to load open shifts: %w", err)
			}

			var active *models.Shift
			for i := range open {
				if open[i].EffectiveStatus() == models.ShiftStatusApprovedIn {
					active = &open[i]
					break
				}
			}
			if active == nil {
				return services.ErrNotClockedIn
			}
			for i := range open {
				if open[i].EffectiveStatus() == models.ShiftStatusPendingOut {
					return services.ErrPendingRequest
				}
			}

			cfg, err := s.configService.GetConfig(ctx, active.BranchID)
			if err != nil {
				return err
			}
			decision := cfg.Thresholds().ClassifyClockOut(score)

			clockOut = s.now()
			status = decision.ClockOutStatus()
			autoApproved = decision == models.DecisionApproved

			err = s.shiftRepo.Close(ctx, active.ID, repositories.ShiftClose{
				ClockOut:          clockOut,
				Status:            status,
				ConfidenceScore:   &score,
				PhotoStorageID:    &photo,
				LivenessPassed:    &liveness,
				DeviceFingerprint: input.DeviceFingerprint,
				Method:            models.ClockMethodFR,
			})
			if errors.Is(err, repositories.ErrShiftNotOpen) {
				return services.ErrNotClockedIn
			}
			if err != nil {
				return fmt.Errorf("failed to close shift: %w", err)
			}

			shift = *active
			shift.ClockOut = &clockOut
			shift.Status = status
			shift.ConfidenceScore = &score
			shift.PhotoStorageID = &photo
			shift.LivenessPassed = &liveness
			shift.DeviceFingerprint = input.DeviceFingerprint
			shift.Method = models.ClockMethodFR
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	duration := clockOut.Sub(shift.ClockIn)

	logger.Attendance("clock_out", "Shift closed", map[string]interface{}{
		"shift_id":    shift.ID.String(),
		"subject":     input.Subject.String(),
		"branch_id":   shift.BranchID.String(),
		"status":      string(status),
		"confidence":  score,
		"duration_ms": duration.Milliseconds(),
	})
	s.activities.Record(ctx, models.NewShiftActivity(&shift, models.ActivityClockOut, "Clocked out"))
	s.publish(services.EventShiftClosed, &shift)

	return &services.ClockOutResult{
		ShiftID:       shift.ID,
		ClockOutTime:  clockOut,
		Status:        status,
		AutoApproved:  autoApproved,
		ShiftDuration: duration,
	}, nil
}

func (s *AttendanceServiceImpl) GetClockStatus(ctx context.Context, subject models.Subject) (*services.ClockStatus, error) {
	if subject.ID == uuid.Nil {
		return nil, services.ErrMissingID
	}

	open, err := s.shiftRepo.GetOpenBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load open shifts: %w", err)
	}
	if len(open) == 0 {
		return &services.ClockStatus{IsClockedIn: false}, nil
	}

	shift := open[0]
	return &services.ClockStatus{
		IsClockedIn:   true,
		Shift:         &shift,
		ShiftDuration: shift.Duration(s.now()),
	}, nil
}

func (s *AttendanceServiceImpl) GetHistory(ctx context.Context, subject models.Subject, query services.HistoryQuery) ([]models.Shift, error) {
	if subject.ID == uuid.Nil {
		return nil, services.ErrMissingID
	}

	shifts, err := s.shiftRepo.ListBySubject(ctx, subject, shiftFilter(query, defaultHistoryLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, nil
}

func (s *AttendanceServiceImpl) GetBranchAttendance(ctx context.Context, branchID uuid.UUID, query services.HistoryQuery) ([]services.ShiftWithPerson, error) {
	shifts, err := s.shiftRepo.ListByBranch(ctx, branchID, shiftFilter(query, defaultBranchLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to list branch shifts: %w", err)
	}

	subjects := make([]models.Subject, len(shifts))
	for i := range shifts {
		subjects[i] = shifts[i].Subject()
	}
	people, err := s.identity.People(ctx, subjects)
	if err != nil {
		return nil, err
	}

	out := make([]services.ShiftWithPerson, len(shifts))
	for i := range shifts {
		name := people[subjects[i]].Name
		if name == "" {
			name = "Unknown"
		}
		out[i] = services.ShiftWithPerson{Shift: shifts[i], PersonName: name}
	}
	return out, nil
}

func (s *AttendanceServiceImpl) GetBranchBoard(ctx context.Context, branchID uuid.UUID) ([]services.BarberBoardEntry, error) {
	barbers, err := s.identity.ActiveBarbers(ctx, branchID)
	if err != nil {
		return nil, err
	}

	open, err := s.shiftRepo.GetOpenByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load open branch shifts: %w", err)
	}

	// Oldest first, so the newest open shift of a barber wins
	byBarber := make(map[uuid.UUID]models.Shift, len(open))
	for _, shift := range open {
		if shift.BarberID != nil {
			byBarber[*shift.BarberID] = shift
		}
	}

	board := make([]services.BarberBoardEntry, len(barbers))
	for i, b := range barbers {
		entry := services.BarberBoardEntry{
			BarberID:   b.ID,
			BarberName: b.FullName,
			Avatar:     b.Avatar,
		}
		if shift, ok := byBarber[b.ID]; ok {
			clockIn := shift.ClockIn
			shiftID := shift.ID
			entry.IsClockedIn = true
			entry.ClockInTime = &clockIn
			entry.ShiftID = &shiftID
		}
		board[i] = entry
	}
	return board, nil
}

func (s *AttendanceServiceImpl) withSubjectLock(ctx context.Context, subject models.Subject, fn func(ctx context.Context) error) error {
	return withSubjectLock(ctx, s.locker, s.lockTimeout, subject, fn)
}

func (s *AttendanceServiceImpl) afterClockIn(ctx context.Context, shift *models.Shift, reconciled *ReconcileResult, activityType models.ActivityType) {
	for i := range reconciled.AutoClosedShifts {
		closed := &reconciled.AutoClosedShifts[i]
		logger.Attendance("shift_auto_closed", "Stale shift auto-closed", map[string]interface{}{
			"shift_id":  closed.ID.String(),
			"subject":   closed.Subject().String(),
			"clock_in":  closed.ClockIn,
			"clock_out": closed.ClockOut,
		})
		s.activities.Record(ctx, models.NewShiftActivity(closed, models.ActivityAutoClosed, "Stale shift closed automatically"))
		s.publish(services.EventShiftClosed, closed)
	}

	logger.Attendance("clock_in", "Shift opened", map[string]interface{}{
		"shift_id":   shift.ID.String(),
		"subject":    shift.Subject().String(),
		"branch_id":  shift.BranchID.String(),
		"status":     string(shift.Status),
		"method":     string(shift.Method),
		"confidence": shift.ConfidenceScore,
	})

	message := "Clocked in"
	if shift.Status == models.ShiftStatusPendingIn {
		message = "Clock-in awaiting admin review"
	}
	s.activities.Record(ctx, models.NewShiftActivity(shift, activityType, message))
	s.publish(services.EventShiftOpened, shift)
}

func (s *AttendanceServiceImpl) publish(eventType string, shift *models.Shift) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(services.AttendanceEvent{
		Type:     eventType,
		BranchID: shift.BranchID,
		Data: map[string]interface{}{
			"shift_id":  shift.ID,
			"barber_id": shift.BarberID,
			"user_id":   shift.UserID,
			"status":    shift.Status,
			"clock_in":  shift.ClockIn,
			"clock_out": shift.ClockOut,
		},
	})
}

func validateConfidence(score float64) error {
	if score < 0 || score > 1 {
		return services.ValidationError("confidence_score must be between 0 and 1")
	}
	return nil
}

func shiftFilter(query services.HistoryQuery, defaultLimit int) repositories.ShiftFilter {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	return repositories.ShiftFilter{Start: query.Start, End: query.End, Limit: limit}
}
