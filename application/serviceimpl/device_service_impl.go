package serviceimpl

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/repositories"
	"barbershop-attendance/domain/services"
	"barbershop-attendance/pkg/logger"
)

type DeviceServiceImpl struct {
	deviceRepo repositories.AttendanceDeviceRepository
	now        services.Clock
}

func NewDeviceService(deviceRepo repositories.AttendanceDeviceRepository, now services.Clock) services.DeviceService {
	return &DeviceServiceImpl{deviceRepo: deviceRepo, now: now}
}

func (s *DeviceServiceImpl) Register(ctx context.Context, branchID uuid.UUID, fingerprint, name string, registeredBy *uuid.UUID) (uuid.UUID, error) {
	fingerprint = strings.TrimSpace(fingerprint)
	name = strings.TrimSpace(name)
	if fingerprint == "" || name == "" {
		return uuid.Nil, services.ValidationError("device_fingerprint and device_name are required")
	}

	existing, err := s.deviceRepo.GetByFingerprint(ctx, fingerprint)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up device: %w", err)
	}

	if existing != nil {
		if existing.BranchID != branchID {
			return uuid.Nil, services.ErrDeviceRegistered
		}
		existing.IsActive = true
		existing.DeviceName = name
		if err := s.deviceRepo.Update(ctx, existing); err != nil {
			return uuid.Nil, fmt.Errorf("failed to reactivate device: %w", err)
		}
		logger.Device("device_reactivated", "Device reactivated", map[string]interface{}{
			"device_id": existing.ID.String(),
			"branch_id": branchID.String(),
		})
		return existing.ID, nil
	}

	device := &models.AttendanceDevice{
		BranchID:          branchID,
		DeviceFingerprint: fingerprint,
		DeviceName:        name,
		IsActive:          true,
		RegisteredBy:      registeredBy,
		RegisteredAt:      s.now(),
	}
	if err := s.deviceRepo.Create(ctx, device); err != nil {
		return uuid.Nil, fmt.Errorf("failed to register device: %w", err)
	}

	logger.Device("device_registered", "Device registered", map[string]interface{}{
		"device_id": device.ID.String(),
		"branch_id": branchID.String(),
	})
	return device.ID, nil
}

func (s *DeviceServiceImpl) Check(ctx context.Context, branchID uuid.UUID, fingerprint string) (*services.DeviceCheck, error) {
	device, err := s.deviceRepo.GetByFingerprint(ctx, strings.TrimSpace(fingerprint))
	if err != nil {
		return nil, fmt.Errorf("failed to look up device: %w", err)
	}
	if device == nil || !device.IsActive || device.BranchID != branchID {
		return &services.DeviceCheck{Registered: false}, nil
	}
	return &services.DeviceCheck{Registered: true, DeviceName: device.DeviceName}, nil
}

func (s *DeviceServiceImpl) Deactivate(ctx context.Context, deviceID uuid.UUID) error {
	device, err := s.deviceRepo.GetByID(ctx, deviceID)
	if err != nil {
		return fmt.Errorf("failed to load device: %w", err)
	}
	if device == nil {
		return services.ErrDeviceNotFound
	}

	device.IsActive = false
	if err := s.deviceRepo.Update(ctx, device); err != nil {
		return fmt.Errorf("failed to deactivate device: %w", err)
	}

	logger.Device("device_deactivated", "Device deactivated", map[string]interface{}{
		"device_id": deviceID.String(),
		"branch_id": device.BranchID.String(),
	})
	return nil
}

func (s *DeviceServiceImpl) List(ctx context.Context, branchID uuid.UUID) ([]models.AttendanceDevice, error) {
	devices, err := s.deviceRepo.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return devices, nil
}
