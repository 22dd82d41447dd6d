package api

import (
	"errors"

	"github.com/aletheia-health/aletheia/internal/models"
	"github.com/aletheia-health/aletheia/internal/services"
	"github.com/gofiber/fiber/v2"
)

type logUpsertInput struct {
	Date         string                `json:"date"`
	Symptoms     []symptomEntryPayload `json:"symptoms"`
	OverallNotes string                `json:"overall_notes"`
}

// UpsertLog creates or fully replaces the log for one date.
func (handler *Handler) UpsertLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := logUpsertInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	symptoms := make([]models.SymptomEntry, 0, len(input.Symptoms))
	for _, symptom := range input.Symptoms {
		symptoms = append(symptoms, models.SymptomEntry{Name: symptom.Name, Severity: symptom.Severity})
	}

	entry, _, err := handler.logs.UpsertByDate(user.ID, services.LogInput{
		Date:     input.Date,
		Symptoms: symptoms,
		Notes:    input.OverallNotes,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidLogDate):
			return apiError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		case errors.Is(err, services.ErrInvalidSeverity):
			return apiError(c, fiber.StatusBadRequest, "severity must be between 1 and 5")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to save log")
		}
	}

	return c.JSON(buildLogResponse(entry))
}

func (handler *Handler) ListLogs(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.logs.FetchLogs(user.ID, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			return apiError(c, fiber.StatusBadRequest, "invalid date range")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch logs")
	}

	return c.JSON(buildLogListResponse(entries))
}

func (handler *Handler) DeleteLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	date := c.Params("date")
	if err := handler.logs.DeleteByDate(user.ID, date); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidLogDate):
			return apiError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		case errors.Is(err, services.ErrLogNotFound):
			return apiError(c, fiber.StatusNotFound, "no symptom log found for date "+date)
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to delete log")
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
