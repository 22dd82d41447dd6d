package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aletheia-health/aletheia/internal/security"
	"github.com/gofiber/fiber/v2"
)

var errInvalidLogID = errors.New("invalid log id")

type calendarCallbackInput struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

type calendarSettingsInput struct {
	Enabled bool `json:"is_enabled"`
}

type calendarSyncInput struct {
	LogID string `json:"log_id"`
}

func (handler *Handler) CalendarStatus(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	status := fiber.Map{
		"connected":    user.CalendarConnected(),
		"sync_enabled": false,
	}
	if user.CalendarConnected() {
		status["sync_enabled"] = user.CalendarSyncEnabled
		status["email"] = user.GoogleEmail
		status["calendar_id"] = user.CalendarID
		status["last_sync"] = user.LastCalendarSync
	}
	return c.JSON(status)
}

// CalendarAuthInitiate returns the Google consent URL and a one-time state.
func (handler *Handler) CalendarAuthInitiate(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if handler.calendar == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "google calendar is not configured")
	}

	state, err := security.RandomStateToken()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create state token")
	}
	handler.oauthStates.add(state, user.ID, time.Now())

	return c.JSON(fiber.Map{
		"authorization_url": handler.calendar.AuthCodeURL(state),
		"state":             state,
	})
}

// CalendarAuthCallback exchanges the authorization code and stores the
// encrypted refresh token plus the dedicated calendar id.
func (handler *Handler) CalendarAuthCallback(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if handler.calendar == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "google calendar is not configured")
	}

	input := calendarCallbackInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if strings.TrimSpace(input.Code) == "" {
		return apiError(c, fiber.StatusBadRequest, "authorization code is required")
	}
	if !handler.oauthStates.consume(input.State, user.ID, time.Now()) {
		return apiError(c, fiber.StatusBadRequest, "invalid or expired state")
	}

	connection, err := handler.calendar.Connect(c.Context(), input.Code)
	if err != nil {
		return apiError(c, fiber.StatusBadGateway, "failed to connect google calendar")
	}

	if err := handler.repos.Users.SaveGoogleConnection(
		user.ID,
		connection.EncryptedRefreshToken,
		connection.AccountEmail,
		connection.CalendarID,
	); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to store connection")
	}

	return c.JSON(fiber.Map{
		"connected":   true,
		"email":       connection.AccountEmail,
		"calendar_id": connection.CalendarID,
	})
}

func (handler *Handler) CalendarDisconnect(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.repos.Users.ClearGoogleConnection(user.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to disconnect")
	}
	return c.JSON(fiber.Map{"connected": false})
}

func (handler *Handler) CalendarSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if !user.CalendarConnected() {
		return apiError(c, fiber.StatusBadRequest, "google calendar not connected")
	}

	input := calendarSettingsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.repos.Users.SetCalendarSyncEnabled(user.ID, input.Enabled); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update settings")
	}
	return c.JSON(fiber.Map{"is_enabled": input.Enabled})
}

// CalendarSyncLog pushes one log to Google Calendar.
func (handler *Handler) CalendarSyncLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if handler.calendar == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "google calendar is not configured")
	}
	if !user.CalendarActive() {
		return apiError(c, fiber.StatusBadRequest, "google calendar not connected or sync disabled")
	}

	input := calendarSyncInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	logID, err := parseLogID(input.LogID)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid log id")
	}

	entry, err := handler.logs.FetchLogByID(user.ID, logID)
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "symptom log not found")
	}

	eventID, err := handler.calendar.SyncLog(c.Context(), user.GoogleRefreshToken, user.CalendarID, entry)
	if err != nil {
		return apiError(c, fiber.StatusBadGateway, "failed to sync log")
	}

	if err := handler.repos.Logs.UpdateCalendarEventID(user.ID, entry.ID, eventID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to record event id")
	}
	_ = handler.repos.Users.TouchLastCalendarSync(user.ID, time.Now().UTC())

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Symptom log synced successfully",
		"event_id": eventID,
	})
}

// CalendarSyncAll pushes every log; per-log failures are counted, not fatal.
func (handler *Handler) CalendarSyncAll(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if handler.calendar == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "google calendar is not configured")
	}
	if !user.CalendarActive() {
		return apiError(c, fiber.StatusBadRequest, "google calendar not connected or sync disabled")
	}

	entries, err := handler.logs.FetchAllLogs(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch logs")
	}

	synced, failed := 0, 0
	for _, entry := range entries {
		eventID, err := handler.calendar.SyncLog(c.Context(), user.GoogleRefreshToken, user.CalendarID, entry)
		if err != nil {
			failed++
			continue
		}
		if err := handler.repos.Logs.UpdateCalendarEventID(user.ID, entry.ID, eventID); err != nil {
			failed++
			continue
		}
		synced++
	}
	_ = handler.repos.Users.TouchLastCalendarSync(user.ID, time.Now().UTC())

	return c.JSON(fiber.Map{
		"success":      failed == 0,
		"message":      "Batch sync completed",
		"synced_count": synced,
		"failed_count": failed,
	})
}

// CalendarUnsyncLog deletes the calendar event backing a log.
func (handler *Handler) CalendarUnsyncLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if handler.calendar == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "google calendar is not configured")
	}
	if !user.CalendarConnected() {
		return apiError(c, fiber.StatusBadRequest, "google calendar not connected")
	}

	logID, err := parseLogID(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid log id")
	}

	entry, err := handler.logs.FetchLogByID(user.ID, logID)
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "symptom log not found")
	}
	if !entry.SyncedToCalendar() {
		return apiError(c, fiber.StatusBadRequest, "log is not synced")
	}

	if err := handler.calendar.DeleteEvent(c.Context(), user.GoogleRefreshToken, user.CalendarID, entry.CalendarEventID); err != nil {
		return apiError(c, fiber.StatusBadGateway, "failed to delete event")
	}
	if err := handler.repos.Logs.UpdateCalendarEventID(user.ID, entry.ID, ""); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to clear event id")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Calendar event removed"})
}

func parseLogID(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || value == 0 {
		return 0, errInvalidLogID
	}
	return uint(value), nil
}
