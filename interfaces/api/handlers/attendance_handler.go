package handlers

import (
	"github.com/gofiber/fiber/v2"

	"barbershop-attendance/domain/dto"
	"barbershop-attendance/domain/services"
	"barbershop-attendance/pkg/utils"
)

type AttendanceHandler struct {
	attendanceService services.AttendanceService
	activityService   services.AttendanceActivityService
}

func NewAttendanceHandler(attendanceService services.AttendanceService, activityService services.AttendanceActivityService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		activityService:   activityService,
	}
}

// FRClockIn opens a shift from a kiosk face match
// @Router /api/v1/attendance/fr/clock-in [post]
func (h *AttendanceHandler) FRClockIn(c *fiber.Ctx) error {
	var req dto.FRClockInRequest
	if err := c.BodyParser(&req); err != nil {
		return services.ValidationError("invalid request body")
	}
	subject, err := req.Subject()
	if err != nil {
		return err
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return services.ValidationError(err.Error())
	}

	result, err := h.attendanceService.FRClockIn(c.UserContext(), dto.FRClockInRequestToInput(subject, &req))
	if err != nil {
		return err
	}

	message := "Clocked in"
	if !result.AutoApproved {
		message = "Clock-in submitted for admin review"
	}
	return utils.CreatedResponse(c, message, dto.ClockInResultToResponse(result))
}

// FRClockOut closes the subject's approved shift
// @Router /api/v1/attendance/fr/clock-out [post]
func (h *AttendanceHandler) FRClockOut(c *fiber.Ctx) error {
	var req dto.FRClockOutRequest
	if err := c.BodyParser(&req); err != nil {
		return services.ValidationError("invalid request body")
	}
	subject, err := req.Subject()
	if err != nil {
		return err
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return services.ValidationError(err.Error())
	}

	result, err := h.attendanceService.FRClockOut(c.UserContext(), dto.FRClockOutRequestToInput(subject, &req))
	if err != nil {
		return err
	}

	message := "Clocked out"
	if !result.AutoApproved {
		message = "Clock-out submitted for admin review"
	}
	return utils.SuccessResponse(c, message, dto.ClockOutResultToResponse(result))
}

// ManualClockIn is the kiosk fallback when face recognition is unavailable
// @Router /api/v1/attendance/manual/clock-in [post]
func (h *AttendanceHandler) ManualClockIn(c *fiber.Ctx) error {
	var req dto.ManualClockInRequest
	if err := c.BodyParser(&req); err != nil {
		return services.ValidationError("invalid request body")
	}
	subject, err := req.Subject()
	if err != nil {
		return err
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return services.ValidationError(err.Error())
	}

	result, err := h.attendanceService.ManualClockIn(c.UserContext(), dto.ManualClockInRequestToInput(subject, &req))
	if err != nil {
		return err
	}
	return utils.CreatedResponse(c, "Clock-in submitted for admin review", dto.ClockInResultToResponse(result))
}

func (h *AttendanceHandler) GetStatus(c *fiber.Ctx) error {
	subject, err := subjectQuery(c)
	if err != nil {
		return err
	}

	status, err := h.attendanceService.GetClockStatus(c.UserContext(), subject)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Clock status retrieved", dto.ClockStatusToResponse(status))
}

func (h *AttendanceHandler) GetHistory(c *fiber.Ctx) error {
	subject, err := subjectQuery(c)
	if err != nil {
		return err
	}
	query, err := historyQuery(c)
	if err != nil {
		return err
	}

	shifts, err := h.attendanceService.GetHistory(c.UserContext(), subject, query)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Attendance history retrieved", dto.ShiftsToResponse(shifts))
}

func (h *AttendanceHandler) GetBranchAttendance(c *fiber.Ctx) error {
	branchID, err := uuidParam(c, "branch_id")
	if err != nil {
		return err
	}
	query, err := historyQuery(c)
	if err != nil {
		return err
	}

	rows, err := h.attendanceService.GetBranchAttendance(c.UserContext(), branchID, query)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Branch attendance retrieved", dto.BranchShiftsToResponse(rows))
}

func (h *AttendanceHandler) GetBranchBoard(c *fiber.Ctx) error {
	branchID, err := uuidParam(c, "branch_id")
	if err != nil {
		return err
	}

	entries, err := h.attendanceService.GetBranchBoard(c.UserContext(), branchID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Branch board retrieved", dto.BoardToResponse(entries))
}

func (h *AttendanceHandler) GetBranchActivities(c *fiber.Ctx) error {
	branchID, err := uuidParam(c, "branch_id")
	if err != nil {
		return err
	}
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	activities, total, err := h.activityService.GetByBranch(c.UserContext(), branchID, page, limit)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Attendance activities retrieved", dto.ActivityListResponse{
		Activities: dto.ActivitiesToResponse(activities),
		Total:      total,
		Page:       page,
		Limit:      limit,
	})
}
