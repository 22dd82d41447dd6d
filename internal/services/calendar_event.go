package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aletheia-health/aletheia/internal/models"
	calendar "google.golang.org/api/calendar/v3"
)

// Google Calendar color ids keyed by how rough the day was.
const (
	colorMild     = "2"  // green
	colorModerate = "5"  // yellow
	colorSevere   = "11" // red
)

// BuildLogEvent renders a symptom log as an all-day calendar event. The log id
// is carried in a private extended property so later syncs can find the event
// even if the stored event id was lost.
func BuildLogEvent(entry models.SymptomLog) (*calendar.Event, error) {
	day, err := time.Parse("2006-01-02", entry.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid log date %q: %w", entry.Date, err)
	}

	return &calendar.Event{
		Summary:     "Health Log - " + entry.Date,
		Description: describeLog(entry),
		ColorId:     severityColor(maxSeverity(entry.Symptoms)),
		Start:       &calendar.EventDateTime{Date: entry.Date},
		End:         &calendar.EventDateTime{Date: day.AddDate(0, 0, 1).Format("2006-01-02")},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				logIDProperty: strconv.FormatUint(uint64(entry.ID), 10),
			},
		},
	}, nil
}

func describeLog(entry models.SymptomLog) string {
	lines := make([]string, 0, len(entry.Symptoms)+2)
	for _, symptom := range entry.Symptoms {
		lines = append(lines, fmt.Sprintf("• %s: %d/5", symptom.Name, symptom.Severity))
	}
	if strings.TrimSpace(entry.Notes) != "" {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "Notes: "+entry.Notes)
	}
	return strings.Join(lines, "\n")
}

func maxSeverity(symptoms []models.SymptomEntry) int {
	highest := 0
	for _, symptom := range symptoms {
		if symptom.Severity > highest {
			highest = symptom.Severity
		}
	}
	return highest
}

func severityColor(severity int) string {
	switch {
	case severity >= 4:
		return colorSevere
	case severity == 3:
		return colorModerate
	default:
		return colorMild
	}
}
