package client

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUserFromWireTranslatesFieldNames(t *testing.T) {
	t.Parallel()

	raw := `{
		"id": "12",
		"name": "Nina",
		"email": "nina@example.com",
		"age_range": "50-55",
		"menstrual_status": "postmenopausal",
		"primary_symptoms": ["Night Sweats"],
		"onboarding_completed": true,
		"calendar_connected": true,
		"calendar_sync_enabled": true,
		"calendar_email": "nina@gmail.com",
		"calendar_id": "cal-1"
	}`

	wire := userWire{}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		t.Fatalf("unmarshal wire user: %v", err)
	}

	user := userFromWire(wire)
	if user.AgeRange != "50-55" {
		t.Fatalf("expected age_range to map to AgeRange, got %q", user.AgeRange)
	}
	if user.MenstrualStatus != "postmenopausal" {
		t.Fatalf("expected menstrual_status to map, got %q", user.MenstrualStatus)
	}
	if !user.OnboardingCompleted {
		t.Fatal("expected onboarding_completed to map")
	}
	if !user.CalendarConnected || user.CalendarEmail != "nina@gmail.com" {
		t.Fatalf("expected calendar hints to map, got %+v", user)
	}
}

func TestProfileUpdateWireOmitsUnsetFields(t *testing.T) {
	t.Parallel()

	name := "Renamed"
	encoded, err := json.Marshal(profileUpdateToWire(ProfileUpdate{Name: &name}))
	if err != nil {
		t.Fatalf("marshal update: %v", err)
	}

	body := string(encoded)
	if !strings.Contains(body, `"name":"Renamed"`) {
		t.Fatalf("expected name in payload, got %s", body)
	}
	for _, absent := range []string{"age_range", "menstrual_status", "primary_symptoms", "onboarding_completed"} {
		if strings.Contains(body, absent) {
			t.Fatalf("expected %s to be omitted, got %s", absent, body)
		}
	}
}

func TestLogWireRoundTrip(t *testing.T) {
	t.Parallel()

	raw := `{
		"id": "3",
		"date": "2026-08-20",
		"symptoms": [{"name": "Hot Flushes", "severity": 4}],
		"overall_notes": "stressful day",
		"synced_to_calendar": true,
		"calendar_event_id": "evt-9"
	}`

	wire := logWire{}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		t.Fatalf("unmarshal wire log: %v", err)
	}

	entry := logFromWire(wire)
	if entry.Notes != "stressful day" {
		t.Fatalf("expected overall_notes to map to Notes, got %q", entry.Notes)
	}
	if len(entry.Symptoms) != 1 || entry.Symptoms[0].Severity != 4 {
		t.Fatalf("unexpected symptoms %+v", entry.Symptoms)
	}
	if !entry.SyncedToCalendar || entry.CalendarEventID != "evt-9" {
		t.Fatalf("expected calendar fields to map, got %+v", entry)
	}

	encoded, err := json.Marshal(logInputToWire(LogInput{
		Date:     entry.Date,
		Symptoms: entry.Symptoms,
		Notes:    entry.Notes,
	}))
	if err != nil {
		t.Fatalf("marshal input: %v", err)
	}
	if !strings.Contains(string(encoded), `"overall_notes":"stressful day"`) {
		t.Fatalf("expected Notes to serialize as overall_notes, got %s", encoded)
	}
}
