package serviceimpl

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/repositories"
	"barbershop-attendance/domain/services"
	"barbershop-attendance/pkg/logger"
)

type AttendanceConfigServiceImpl struct {
	configRepo repositories.AttendanceConfigRepository
}

func NewAttendanceConfigService(configRepo repositories.AttendanceConfigRepository) services.AttendanceConfigService {
	return &AttendanceConfigServiceImpl{configRepo: configRepo}
}

func (s *AttendanceConfigServiceImpl) GetConfig(ctx context.Context, branchID uuid.UUID) (*models.EffectiveAttendanceConfig, error) {
	stored, err := s.configRepo.GetByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance config: %w", err)
	}
	eff := stored.Effective(branchID)
	return &eff, nil
}

func (s *AttendanceConfigServiceImpl) IsFREnabled(ctx context.Context, branchID uuid.UUID) (bool, error) {
	cfg, err := s.GetConfig(ctx, branchID)
	if err != nil {
		return false, err
	}
	return cfg.FREnabled, nil
}

func (s *AttendanceConfigServiceImpl) SaveConfig(ctx context.Context, branchID uuid.UUID, patch models.AttendanceConfigPatch) (uuid.UUID, error) {
	if err := validateThresholds(patch); err != nil {
		return uuid.Nil, err
	}

	stored, err := s.configRepo.GetByBranch(ctx, branchID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to load attendance config: %w", err)
	}

	if stored != nil {
		patch.Apply(stored)
		if err := validateThresholdOrder(stored.Effective(branchID)); err != nil {
			return uuid.Nil, err
		}
		if err := s.configRepo.Update(ctx, stored); err != nil {
			return uuid.Nil, fmt.Errorf("failed to update attendance config: %w", err)
		}
		logger.Config("config_updated", "Attendance config updated", map[string]interface{}{
			"branch_id":  branchID.String(),
			"config_id":  stored.ID.String(),
			"fr_enabled": stored.FREnabled,
		})
		return stored.ID, nil
	}

	config := &models.AttendanceConfig{BranchID: branchID}
	patch.Apply(config)
	if err := validateThresholdOrder(config.Effective(branchID)); err != nil {
		return uuid.Nil, err
	}
	if err := s.configRepo.Create(ctx, config); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create attendance config: %w", err)
	}
	logger.Config("config_created", "Attendance config created", map[string]interface{}{
		"branch_id":  branchID.String(),
		"config_id":  config.ID.String(),
		"fr_enabled": config.FREnabled,
	})
	return config.ID, nil
}

func validateThresholds(patch models.AttendanceConfigPatch) error {
	inRange := func(v *float64) bool { return v == nil || (*v >= 0 && *v <= 1) }
	if !inRange(patch.AutoApproveThreshold) || !inRange(patch.AdminReviewThreshold) {
		return services.ValidationError("thresholds must be between 0 and 1")
	}
	if patch.GeofenceRadiusMeters != nil && *patch.GeofenceRadiusMeters <= 0 {
		return services.ValidationError("geofence_radius_meters must be positive")
	}
	return nil
}

// validateThresholdOrder checks the merged thresholds, so a patch of one side
// cannot cross the stored or default value of the other.
func validateThresholdOrder(eff models.EffectiveAttendanceConfig) error {
	if eff.AdminReviewThreshold > eff.AutoApproveThreshold {
		return services.ValidationError("admin_review_threshold must not exceed auto_approve_threshold")
	}
	return nil
}
