package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"barbershop-attendance/domain/dto"
	"barbershop-attendance/domain/services"
	"barbershop-attendance/pkg/utils"
)

type DeviceHandler struct {
	deviceService services.DeviceService
}

func NewDeviceHandler(deviceService services.DeviceService) *DeviceHandler {
	return &DeviceHandler{
		deviceService: deviceService,
	}
}

func (h *DeviceHandler) List(c *fiber.Ctx) error {
	branchID, err := uuidParam(c, "branch_id")
	if err != nil {
		return err
	}

	devices, err := h.deviceService.List(c.UserContext(), branchID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Devices retrieved", dto.DevicesToResponse(devices))
}

func (h *DeviceHandler) Register(c *fiber.Ctx) error {
	branchID, err := uuidParam(c, "branch_id")
	if err != nil {
		return err
	}
	var req dto.RegisterDeviceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	id, err := h.deviceService.Register(c.UserContext(), branchID, req.DeviceFingerprint, req.DeviceName, utils.UserIDFromContext(c))
	if err != nil {
		return err
	}
	return utils.CreatedResponse(c, "Device registered", dto.RegisterDeviceResponse{DeviceID: id})
}

// Check tells a kiosk whether it may submit clock events for the branch
// @Router /api/v1/devices/check [get]
func (h *DeviceHandler) Check(c *fiber.Ctx) error {
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		return services.ValidationError("branch_id must be a valid UUID")
	}
	fingerprint := c.Query("device_fingerprint")
	if fingerprint == "" {
		return services.ValidationError("device_fingerprint is required")
	}

	check, err := h.deviceService.Check(c.UserContext(), branchID, fingerprint)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Device checked", dto.DeviceCheckToResponse(check))
}

func (h *DeviceHandler) Deactivate(c *fiber.Ctx) error {
	deviceID, err := uuidParam(c, "device_id")
	if err != nil {
		return err
	}
	if err := h.deviceService.Deactivate(c.UserContext(), deviceID); err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Device deactivated", nil)
}
