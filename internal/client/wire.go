package client

// Wire types mirror the server's snake_case field convention. Keeping the
// translation in one place lets the rest of the app stay in client terms.

type userWire struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	AgeRange            string   `json:"age_range"`
	MenstrualStatus     string   `json:"menstrual_status"`
	PrimarySymptoms     []string `json:"primary_symptoms"`
	OnboardingCompleted bool     `json:"onboarding_completed"`
	CalendarConnected   bool     `json:"calendar_connected"`
	CalendarSyncEnabled bool     `json:"calendar_sync_enabled"`
	CalendarEmail       string   `json:"calendar_email"`
	CalendarID          string   `json:"calendar_id"`
}

type profileUpdateWire struct {
	Name                *string   `json:"name,omitempty"`
	AgeRange            *string   `json:"age_range,omitempty"`
	MenstrualStatus     *string   `json:"menstrual_status,omitempty"`
	PrimarySymptoms     *[]string `json:"primary_symptoms,omitempty"`
	OnboardingCompleted *bool     `json:"onboarding_completed,omitempty"`
}

type symptomWire struct {
	Name     string `json:"name"`
	Severity int    `json:"severity"`
}

type logWire struct {
	ID               string        `json:"id"`
	Date             string        `json:"date"`
	Symptoms         []symptomWire `json:"symptoms"`
	OverallNotes     string        `json:"overall_notes"`
	SyncedToCalendar bool          `json:"synced_to_calendar"`
	CalendarEventID  string        `json:"calendar_event_id"`
	CreatedAt        string        `json:"created_at"`
	UpdatedAt        string        `json:"updated_at"`
}

type logInputWire struct {
	Date         string        `json:"date"`
	Symptoms     []symptomWire `json:"symptoms"`
	OverallNotes string        `json:"overall_notes"`
}

type articleWire struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url"`
	Source      string `json:"source"`
	Category    string `json:"category"`
	PublishedAt string `json:"published_at"`
}

type calendarStatusWire struct {
	Connected   bool   `json:"connected"`
	SyncEnabled bool   `json:"sync_enabled"`
	Email       string `json:"email"`
	CalendarID  string `json:"calendar_id"`
}

func userFromWire(wire userWire) UserProfile {
	return UserProfile{
		ID:                  wire.ID,
		Name:                wire.Name,
		Email:               wire.Email,
		AgeRange:            wire.AgeRange,
		MenstrualStatus:     wire.MenstrualStatus,
		PrimarySymptoms:     wire.PrimarySymptoms,
		OnboardingCompleted: wire.OnboardingCompleted,
		CalendarConnected:   wire.CalendarConnected,
		CalendarSyncEnabled: wire.CalendarSyncEnabled,
		CalendarEmail:       wire.CalendarEmail,
		CalendarID:          wire.CalendarID,
	}
}

func profileUpdateToWire(update ProfileUpdate) profileUpdateWire {
	return profileUpdateWire{
		Name:                update.Name,
		AgeRange:            update.AgeRange,
		MenstrualStatus:     update.MenstrualStatus,
		PrimarySymptoms:     update.PrimarySymptoms,
		OnboardingCompleted: update.OnboardingCompleted,
	}
}

func symptomsFromWire(wires []symptomWire) []SymptomRating {
	if wires == nil {
		return nil
	}
	symptoms := make([]SymptomRating, 0, len(wires))
	for _, wire := range wires {
		symptoms = append(symptoms, SymptomRating{Name: wire.Name, Severity: wire.Severity})
	}
	return symptoms
}

func symptomsToWire(symptoms []SymptomRating) []symptomWire {
	wires := make([]symptomWire, 0, len(symptoms))
	for _, symptom := range symptoms {
		wires = append(wires, symptomWire{Name: symptom.Name, Severity: symptom.Severity})
	}
	return wires
}

func logFromWire(wire logWire) LogEntry {
	return LogEntry{
		ID:               wire.ID,
		Date:             wire.Date,
		Symptoms:         symptomsFromWire(wire.Symptoms),
		Notes:            wire.OverallNotes,
		SyncedToCalendar: wire.SyncedToCalendar,
		CalendarEventID:  wire.CalendarEventID,
		CreatedAt:        wire.CreatedAt,
		UpdatedAt:        wire.UpdatedAt,
	}
}

func articleFromWire(wire articleWire) Article {
	return Article{
		ID:          wire.ID,
		Title:       wire.Title,
		Summary:     wire.Summary,
		URL:         wire.URL,
		ImageURL:    wire.ImageURL,
		Source:      wire.Source,
		Category:    wire.Category,
		PublishedAt: wire.PublishedAt,
	}
}

func calendarStateFromWire(wire calendarStatusWire) GoogleCalendarState {
	return GoogleCalendarState{
		Connected:  wire.Connected,
		Email:      wire.Email,
		CalendarID: wire.CalendarID,
		AutoSync:   wire.SyncEnabled,
	}
}

func logInputToWire(input LogInput) logInputWire {
	return logInputWire{
		Date:         input.Date,
		Symptoms:     symptomsToWire(input.Symptoms),
		OverallNotes: input.Notes,
	}
}
