package client

// Client-side models use camelCase-style Go fields; translation to the
// server's snake_case convention lives in wire.go.

type UserProfile struct {
	ID                  string
	Name                string
	Email               string
	AgeRange            string
	MenstrualStatus     string
	PrimarySymptoms     []string
	OnboardingCompleted bool
	CalendarConnected   bool
	CalendarSyncEnabled bool
	CalendarEmail       string
	CalendarID          string
}

// ProfileUpdate is a partial profile change; nil fields are left untouched
// by the server.
type ProfileUpdate struct {
	Name                *string
	AgeRange            *string
	MenstrualStatus     *string
	PrimarySymptoms     *[]string
	OnboardingCompleted *bool
}

type SymptomRating struct {
	Name     string
	Severity int
}

type LogEntry struct {
	ID               string
	Date             string
	Symptoms         []SymptomRating
	Notes            string
	SyncedToCalendar bool
	CalendarEventID  string
	CreatedAt        string
	UpdatedAt        string
}

// LogInput is the payload for the upsert-by-date endpoint: the server fully
// replaces that date's symptom list and notes.
type LogInput struct {
	Date     string
	Symptoms []SymptomRating
	Notes    string
}

type Article struct {
	ID          string
	Title       string
	Summary     string
	URL         string
	ImageURL    string
	Source      string
	Category    string
	PublishedAt string
}

type GoogleCalendarState struct {
	Connected  bool
	Email      string
	CalendarID string
	AutoSync   bool
}

type Session struct {
	Token string
	User  UserProfile
}
