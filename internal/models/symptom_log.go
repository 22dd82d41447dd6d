package models

import "time"

const (
	SeverityMin = 1
	SeverityMax = 5
)

// SymptomEntry is one tracked symptom with its 1-5 severity for the day.
type SymptomEntry struct {
	Name     string `json:"name"`
	Severity int    `json:"severity"`
}

// SymptomLog is the single entry a user may have per calendar day.
// Date is stored as YYYY-MM-DD text so the (user_id, date) unique index
// gives upsert-by-date semantics directly.
type SymptomLog struct {
	ID              uint           `gorm:"primaryKey"`
	UserID          uint           `gorm:"not null;uniqueIndex:uidx_log_user_date"`
	Date            string         `gorm:"type:text;not null;uniqueIndex:uidx_log_user_date"`
	Symptoms        []SymptomEntry `gorm:"serializer:json"`
	Notes           string
	CalendarEventID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SyncedToCalendar reports whether a Google Calendar event backs this log.
func (entry *SymptomLog) SyncedToCalendar() bool {
	return entry.CalendarEventID != ""
}

func DefaultSymptomNames() []string {
	return []string{
		"Hot Flushes",
		"Night Sweats",
		"Sleep Quality",
		"Mood Changes",
		"Brain Fog",
		"Joint Pain",
		"Energy Levels",
		"Anxiety",
	}
}
