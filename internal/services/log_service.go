package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aletheia-health/aletheia/internal/models"
)

var (
	ErrInvalidLogDate   = errors.New("invalid log date")
	ErrInvalidSeverity  = errors.New("symptom severity out of range")
	ErrLogLoadFailed    = errors.New("load symptom log failed")
	ErrLogWriteFailed   = errors.New("write symptom log failed")
	ErrLogNotFound      = errors.New("symptom log not found")
	ErrInvalidDateRange = errors.New("invalid date range")
)

// defaultLogListLimit caps unbounded list queries (mirrors the API contract:
// without a range the client gets the most recent 30 days).
const defaultLogListLimit = 30

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type LogInput struct {
	Date     string
	Symptoms []models.SymptomEntry
	Notes    string
}

type LogRepository interface {
	ListByUser(userID uint, limit int) ([]models.SymptomLog, error)
	ListByUserRange(userID uint, startDate string, endDate string) ([]models.SymptomLog, error)
	FindByUserAndDate(userID uint, date string) (models.SymptomLog, bool, error)
	FindByUserAndID(userID uint, logID uint) (models.SymptomLog, bool, error)
	Create(entry *models.SymptomLog) error
	Save(entry *models.SymptomLog) error
	DeleteByUserAndDate(userID uint, date string) (bool, error)
}

// LogService enforces the one-log-per-day rule: writes are keyed by
// (user, date) and fully replace that day's symptom list and notes.
type LogService struct {
	logs LogRepository
}

func NewLogService(logs LogRepository) *LogService {
	return &LogService{logs: logs}
}

func ValidateLogInput(input LogInput) error {
	if !isoDatePattern.MatchString(strings.TrimSpace(input.Date)) {
		return ErrInvalidLogDate
	}
	for _, symptom := range input.Symptoms {
		if symptom.Severity < models.SeverityMin || symptom.Severity > models.SeverityMax {
			return fmt.Errorf("%w: %s is %d", ErrInvalidSeverity, symptom.Name, symptom.Severity)
		}
	}
	return nil
}

// UpsertByDate inserts or replaces the log for input.Date. The second return
// reports whether an existing entry was replaced.
func (service *LogService) UpsertByDate(userID uint, input LogInput) (models.SymptomLog, bool, error) {
	if err := ValidateLogInput(input); err != nil {
		return models.SymptomLog{}, false, err
	}

	date := strings.TrimSpace(input.Date)
	entry, found, err := service.logs.FindByUserAndDate(userID, date)
	if err != nil {
		return models.SymptomLog{}, false, ErrLogLoadFailed
	}

	if found {
		entry.Symptoms = input.Symptoms
		entry.Notes = input.Notes
		if err := service.logs.Save(&entry); err != nil {
			return models.SymptomLog{}, false, ErrLogWriteFailed
		}
		return entry, true, nil
	}

	entry = models.SymptomLog{
		UserID:   userID,
		Date:     date,
		Symptoms: input.Symptoms,
		Notes:    input.Notes,
	}
	if err := service.logs.Create(&entry); err != nil {
		return models.SymptomLog{}, false, ErrLogWriteFailed
	}
	return entry, false, nil
}

// FetchLogs returns logs newest-first. Both bounds are inclusive and
// optional; an unbounded query is capped at the default limit.
func (service *LogService) FetchLogs(userID uint, startDate string, endDate string) ([]models.SymptomLog, error) {
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)
	if startDate != "" && !isoDatePattern.MatchString(startDate) {
		return nil, ErrInvalidDateRange
	}
	if endDate != "" && !isoDatePattern.MatchString(endDate) {
		return nil, ErrInvalidDateRange
	}
	if startDate != "" && endDate != "" && endDate < startDate {
		return nil, ErrInvalidDateRange
	}

	if startDate == "" && endDate == "" {
		return service.logs.ListByUser(userID, defaultLogListLimit)
	}
	return service.logs.ListByUserRange(userID, startDate, endDate)
}

// FetchAllLogs returns every log for the user, newest-first.
func (service *LogService) FetchAllLogs(userID uint) ([]models.SymptomLog, error) {
	return service.logs.ListByUser(userID, 0)
}

func (service *LogService) FetchLogByID(userID uint, logID uint) (models.SymptomLog, error) {
	entry, found, err := service.logs.FindByUserAndID(userID, logID)
	if err != nil {
		return models.SymptomLog{}, ErrLogLoadFailed
	}
	if !found {
		return models.SymptomLog{}, ErrLogNotFound
	}
	return entry, nil
}

func (service *LogService) DeleteByDate(userID uint, date string) error {
	if !isoDatePattern.MatchString(strings.TrimSpace(date)) {
		return ErrInvalidLogDate
	}
	deleted, err := service.logs.DeleteByUserAndDate(userID, strings.TrimSpace(date))
	if err != nil {
		return ErrLogWriteFailed
	}
	if !deleted {
		return ErrLogNotFound
	}
	return nil
}
