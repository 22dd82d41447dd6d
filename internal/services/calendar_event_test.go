package services

import (
	"strings"
	"testing"

	"github.com/aletheia-health/aletheia/internal/models"
)

func TestBuildLogEventAllDayShape(t *testing.T) {
	entry := models.SymptomLog{
		ID:   42,
		Date: "2024-03-01",
		Symptoms: []models.SymptomEntry{
			{Name: "Hot Flushes", Severity: 4},
			{Name: "Brain Fog", Severity: 2},
		},
		Notes: "stressful day",
	}

	event, err := BuildLogEvent(entry)
	if err != nil {
		t.Fatalf("BuildLogEvent() error: %v", err)
	}

	if event.Summary != "Health Log - 2024-03-01" {
		t.Fatalf("event summary = %q", event.Summary)
	}
	if event.Start.Date != "2024-03-01" || event.End.Date != "2024-03-02" {
		t.Fatalf("event range = %s..%s, want all-day 2024-03-01", event.Start.Date, event.End.Date)
	}
	if !strings.Contains(event.Description, "Hot Flushes: 4/5") {
		t.Fatalf("description missing symptom line: %q", event.Description)
	}
	if !strings.Contains(event.Description, "Notes: stressful day") {
		t.Fatalf("description missing notes: %q", event.Description)
	}
	if event.ColorId != colorSevere {
		t.Fatalf("color = %q, want severe for max severity 4", event.ColorId)
	}
	if event.ExtendedProperties.Private[logIDProperty] != "42" {
		t.Fatalf("missing log id property: %+v", event.ExtendedProperties.Private)
	}
}

func TestBuildLogEventSeverityColors(t *testing.T) {
	tests := []struct {
		severity int
		want     string
	}{
		{1, colorMild},
		{2, colorMild},
		{3, colorModerate},
		{4, colorSevere},
		{5, colorSevere},
	}

	for _, test := range tests {
		event, err := BuildLogEvent(models.SymptomLog{
			Date:     "2024-06-15",
			Symptoms: []models.SymptomEntry{{Name: "Anxiety", Severity: test.severity}},
		})
		if err != nil {
			t.Fatalf("BuildLogEvent(severity %d) error: %v", test.severity, err)
		}
		if event.ColorId != test.want {
			t.Fatalf("severity %d color = %q, want %q", test.severity, event.ColorId, test.want)
		}
	}
}

func TestBuildLogEventRejectsBadDate(t *testing.T) {
	if _, err := BuildLogEvent(models.SymptomLog{Date: "not-a-date"}); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
