package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"barbershop-attendance/domain/dto"
	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/services"
	"barbershop-attendance/pkg/utils"
)

// parseBody decodes and validates a JSON body.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return services.ValidationError("invalid request body")
	}
	if err := utils.ValidateStruct(out); err != nil {
		return services.ValidationError(err.Error())
	}
	return nil
}

func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, services.ValidationError(name + " must be a valid UUID")
	}
	return id, nil
}

func subjectQuery(c *fiber.Ctx) (models.Subject, error) {
	req := dto.SubjectRequest{
		BarberID: c.Query("barber_id"),
		UserID:   c.Query("user_id"),
	}
	return req.Subject()
}

// historyQuery reads start, end and limit. Times are RFC3339 or epoch milliseconds.
func historyQuery(c *fiber.Ctx) (services.HistoryQuery, error) {
	var q services.HistoryQuery

	start, err := timeQuery(c, "start")
	if err != nil {
		return q, err
	}
	end, err := timeQuery(c, "end")
	if err != nil {
		return q, err
	}
	q.Start, q.End = start, end

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return q, services.ValidationError("limit must be a non-negative integer")
		}
		q.Limit = limit
	}
	return q, nil
}

func timeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		t := time.UnixMilli(ms).UTC()
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, services.ValidationError(name + " must be RFC3339 or epoch milliseconds")
	}
	return &t, nil
}
