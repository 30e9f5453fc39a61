package handlers

import (
	"github.com/gofiber/fiber/v2"

	"barbershop-attendance/domain/dto"
	"barbershop-attendance/domain/services"
	"barbershop-attendance/pkg/utils"
)

type EnrollmentHandler struct {
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
	}
}

// Enroll stores a new face template, replacing any active one
// @Router /api/v1/enrollments [post]
func (h *EnrollmentHandler) Enroll(c *fiber.Ctx) error {
	var req dto.EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return services.ValidationError("invalid request body")
	}
	subject, err := req.Subject()
	if err != nil {
		return err
	}
	if !req.ConsentGiven {
		return services.ErrConsentRequired
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return services.ValidationError(err.Error())
	}

	id, err := h.enrollmentService.Enroll(c.UserContext(), dto.EnrollRequestToInput(subject, &req))
	if err != nil {
		return err
	}
	return utils.CreatedResponse(c, "Face enrolled", dto.EnrollResponse{EnrollmentID: id})
}

// Revoke deactivates the subject's enrollment
// @Router /api/v1/enrollments [delete]
func (h *EnrollmentHandler) Revoke(c *fiber.Ctx) error {
	subject, err := subjectQuery(c)
	if err != nil {
		return err
	}
	if err := h.enrollmentService.Revoke(c.UserContext(), subject); err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Enrollment revoked", nil)
}

func (h *EnrollmentHandler) GetActive(c *fiber.Ctx) error {
	subject, err := subjectQuery(c)
	if err != nil {
		return err
	}

	enrollment, err := h.enrollmentService.GetActive(c.UserContext(), subject)
	if err != nil {
		return err
	}
	if enrollment == nil {
		return services.ErrNotEnrolled
	}
	return utils.SuccessResponse(c, "Enrollment retrieved", dto.EnrollmentToResponse(enrollment))
}

func (h *EnrollmentHandler) GetStatus(c *fiber.Ctx) error {
	subject, err := subjectQuery(c)
	if err != nil {
		return err
	}

	enrolled, err := h.enrollmentService.IsEnrolled(c.UserContext(), subject)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Enrollment status retrieved", dto.EnrollmentStatusResponse{IsEnrolled: enrolled})
}

// ListByBranch returns every active template a branch kiosk matches against
func (h *EnrollmentHandler) ListByBranch(c *fiber.Ctx) error {
	branchID, err := uuidParam(c, "branch_id")
	if err != nil {
		return err
	}

	faces, err := h.enrollmentService.ListByBranch(c.UserContext(), branchID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Enrolled faces retrieved", dto.EnrolledFacesToResponse(faces))
}
