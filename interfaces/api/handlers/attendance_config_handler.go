package handlers

import (
	"github.com/gofiber/fiber/v2"

	"barbershop-attendance/domain/dto"
	"barbershop-attendance/domain/services"
	"barbershop-attendance/pkg/utils"
)

type AttendanceConfigHandler struct {
	configService services.AttendanceConfigService
}

func NewAttendanceConfigHandler(configService services.AttendanceConfigService) *AttendanceConfigHandler {
	return &AttendanceConfigHandler{
		configService: configService,
	}
}

func (h *AttendanceConfigHandler) GetConfig(c *fiber.Ctx) error {
	branchID, err := uuidParam(c, "branch_id")
	if err != nil {
		return err
	}

	cfg, err := h.configService.GetConfig(c.UserContext(), branchID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Attendance config retrieved", dto.AttendanceConfigToResponse(cfg))
}

// SaveConfig creates or patches the branch policy
// @Router /api/v1/attendance-config/{branch_id} [put]
func (h *AttendanceConfigHandler) SaveConfig(c *fiber.Ctx) error {
	branchID, err := uuidParam(c, "branch_id")
	if err != nil {
		return err
	}
	var req dto.SaveAttendanceConfigRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	id, err := h.configService.SaveConfig(c.UserContext(), branchID, req.ToPatch(utils.UserIDFromContext(c)))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Attendance config saved", dto.SaveAttendanceConfigResponse{ConfigID: id})
}

func (h *AttendanceConfigHandler) IsFREnabled(c *fiber.Ctx) error {
	branchID, err := uuidParam(c, "branch_id")
	if err != nil {
		return err
	}

	enabled, err := h.configService.IsFREnabled(c.UserContext(), branchID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "FR status retrieved", dto.FREnabledResponse{FREnabled: enabled})
}
