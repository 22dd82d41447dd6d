package api

import (
	"strconv"
	"time"

	"github.com/aletheia-health/aletheia/internal/models"
)

// Responses use the server's snake_case convention; clients translate to
// their own field names (see internal/client).

type userResponse struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	AgeRange            string     `json:"age_range"`
	MenstrualStatus     string     `json:"menstrual_status"`
	PrimarySymptoms     []string   `json:"primary_symptoms"`
	OnboardingCompleted bool       `json:"onboarding_completed"`
	CalendarConnected   bool       `json:"calendar_connected"`
	CalendarSyncEnabled bool       `json:"calendar_sync_enabled"`
	CalendarEmail       string     `json:"calendar_email,omitempty"`
	CalendarID          string     `json:"calendar_id,omitempty"`
	LastCalendarSync    *time.Time `json:"last_calendar_sync"`
	CreatedAt           time.Time  `json:"created_at"`
}

func buildUserResponse(user models.User) userResponse {
	symptoms := user.PrimarySymptoms
	if symptoms == nil {
		symptoms = []string{}
	}

	response := userResponse{
		ID:                  strconv.FormatUint(uint64(user.ID), 10),
		Email:               user.Email,
		Name:                user.Name,
		AgeRange:            user.AgeRange,
		MenstrualStatus:     user.MenstrualStatus,
		PrimarySymptoms:     symptoms,
		OnboardingCompleted: user.OnboardingCompleted,
		CalendarConnected:   user.CalendarConnected(),
		CreatedAt:           user.CreatedAt,
	}
	if response.CalendarConnected {
		response.CalendarSyncEnabled = user.CalendarSyncEnabled
		response.CalendarEmail = user.GoogleEmail
		response.CalendarID = user.CalendarID
		response.LastCalendarSync = user.LastCalendarSync
	}
	return response
}

type symptomEntryPayload struct {
	Name     string `json:"name"`
	Severity int    `json:"severity"`
}

type logResponse struct {
	ID               string                `json:"id"`
	UserID           string                `json:"user_id"`
	Date             string                `json:"date"`
	Symptoms         []symptomEntryPayload `json:"symptoms"`
	OverallNotes     string                `json:"overall_notes"`
	SyncedToCalendar bool                  `json:"synced_to_calendar"`
	CalendarEventID  string                `json:"calendar_event_id,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

func buildLogResponse(entry models.SymptomLog) logResponse {
	symptoms := make([]symptomEntryPayload, 0, len(entry.Symptoms))
	for _, symptom := range entry.Symptoms {
		symptoms = append(symptoms, symptomEntryPayload{Name: symptom.Name, Severity: symptom.Severity})
	}

	return logResponse{
		ID:               strconv.FormatUint(uint64(entry.ID), 10),
		UserID:           strconv.FormatUint(uint64(entry.UserID), 10),
		Date:             entry.Date,
		Symptoms:         symptoms,
		OverallNotes:     entry.Notes,
		SyncedToCalendar: entry.SyncedToCalendar(),
		CalendarEventID:  entry.CalendarEventID,
		CreatedAt:        entry.CreatedAt,
		UpdatedAt:        entry.UpdatedAt,
	}
}

func buildLogListResponse(entries []models.SymptomLog) []logResponse {
	responses := make([]logResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, buildLogResponse(entry))
	}
	return responses
}

type articleResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"image_url,omitempty"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func buildArticleResponse(article models.Article) articleResponse {
	return articleResponse{
		ID:          strconv.FormatUint(uint64(article.ID), 10),
		Title:       article.Title,
		Summary:     article.Summary,
		URL:         article.URL,
		ImageURL:    article.ImageURL,
		Source:      article.Source,
		Category:    article.Category,
		PublishedAt: article.PublishedAt,
		CreatedAt:   article.CreatedAt,
	}
}
