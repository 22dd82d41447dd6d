package services

import (
	"errors"
	"testing"

	"github.com/aletheia-health/aletheia/internal/models"
)

type stubLogRepo struct {
	entries       map[string]models.SymptomLog
	nextID        uint
	lastListLimit int
	findErr       error
	saveErr       error
}

func newStubLogRepo() *stubLogRepo {
	return &stubLogRepo{entries: map[string]models.SymptomLog{}, nextID: 1}
}

func (stub *stubLogRepo) ListByUser(userID uint, limit int) ([]models.SymptomLog, error) {
	stub.lastListLimit = limit
	logs := make([]models.SymptomLog, 0, len(stub.entries))
	for _, entry := range stub.entries {
		logs = append(logs, entry)
	}
	return logs, nil
}

func (stub *stubLogRepo) ListByUserRange(userID uint, startDate string, endDate string) ([]models.SymptomLog, error) {
	logs := make([]models.SymptomLog, 0)
	for _, entry := range stub.entries {
		if startDate != "" && entry.Date < startDate {
			continue
		}
		if endDate != "" && entry.Date > endDate {
			continue
		}
		logs = append(logs, entry)
	}
	return logs, nil
}

func (stub *stubLogRepo) FindByUserAndDate(userID uint, date string) (models.SymptomLog, bool, error) {
	if stub.findErr != nil {
		return models.SymptomLog{}, false, stub.findErr
	}
	entry, found := stub.entries[date]
	return entry, found, nil
}

func (stub *stubLogRepo) FindByUserAndID(userID uint, logID uint) (models.SymptomLog, bool, error) {
	for _, entry := range stub.entries {
		if entry.ID == logID {
			return entry, true, nil
		}
	}
	return models.SymptomLog{}, false, nil
}

func (stub *stubLogRepo) Create(entry *models.SymptomLog) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	entry.ID = stub.nextID
	stub.nextID++
	stub.entries[entry.Date] = *entry
	return nil
}

func (stub *stubLogRepo) Save(entry *models.SymptomLog) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.entries[entry.Date] = *entry
	return nil
}

func (stub *stubLogRepo) DeleteByUserAndDate(userID uint, date string) (bool, error) {
	if _, found := stub.entries[date]; !found {
		return false, nil
	}
	delete(stub.entries, date)
	return true, nil
}

func TestUpsertByDateCreatesThenReplaces(t *testing.T) {
	repo := newStubLogRepo()
	service := NewLogService(repo)

	first, replaced, err := service.UpsertByDate(1, LogInput{
		Date:     "2024-03-01",
		Symptoms: []models.SymptomEntry{{Name: "Hot Flushes", Severity: 4}},
		Notes:    "stressful day",
	})
	if err != nil {
		t.Fatalf("UpsertByDate() error: %v", err)
	}
	if replaced {
		t.Fatal("first upsert should not report a replacement")
	}
	if first.ID == 0 {
		t.Fatal("expected assigned id")
	}

	second, replaced, err := service.UpsertByDate(1, LogInput{
		Date:     "2024-03-01",
		Symptoms: []models.SymptomEntry{{Name: "Brain Fog", Severity: 2}},
	})
	if err != nil {
		t.Fatalf("UpsertByDate() replace error: %v", err)
	}
	if !replaced {
		t.Fatal("second upsert should report a replacement")
	}
	if second.ID != first.ID {
		t.Fatalf("replacement changed id: %d -> %d", first.ID, second.ID)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected one entry for the date, got %d", len(repo.entries))
	}

	stored := repo.entries["2024-03-01"]
	if len(stored.Symptoms) != 1 || stored.Symptoms[0].Name != "Brain Fog" {
		t.Fatalf("expected second payload to win, got %+v", stored.Symptoms)
	}
	if stored.Notes != "" {
		t.Fatalf("expected notes to be fully replaced, got %q", stored.Notes)
	}
}

func TestUpsertByDateValidatesInput(t *testing.T) {
	service := NewLogService(newStubLogRepo())

	_, _, err := service.UpsertByDate(1, LogInput{Date: "03/01/2024"})
	if !errors.Is(err, ErrInvalidLogDate) {
		t.Fatalf("expected ErrInvalidLogDate, got %v", err)
	}

	_, _, err = service.UpsertByDate(1, LogInput{
		Date:     "2024-03-01",
		Symptoms: []models.SymptomEntry{{Name: "Anxiety", Severity: 6}},
	})
	if !errors.Is(err, ErrInvalidSeverity) {
		t.Fatalf("expected ErrInvalidSeverity, got %v", err)
	}

	_, _, err = service.UpsertByDate(1, LogInput{
		Date:     "2024-03-01",
		Symptoms: []models.SymptomEntry{{Name: "Anxiety", Severity: 0}},
	})
	if !errors.Is(err, ErrInvalidSeverity) {
		t.Fatalf("expected ErrInvalidSeverity for zero severity, got %v", err)
	}
}

func TestFetchLogsUnboundedQueryIsCapped(t *testing.T) {
	repo := newStubLogRepo()
	service := NewLogService(repo)

	if _, err := service.FetchLogs(1, "", ""); err != nil {
		t.Fatalf("FetchLogs() error: %v", err)
	}
	if repo.lastListLimit != defaultLogListLimit {
		t.Fatalf("unbounded fetch limit = %d, want %d", repo.lastListLimit, defaultLogListLimit)
	}
}

func TestFetchLogsRejectsInvertedRange(t *testing.T) {
	service := NewLogService(newStubLogRepo())

	if _, err := service.FetchLogs(1, "2024-03-10", "2024-03-01"); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
	if _, err := service.FetchLogs(1, "bad", ""); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange for malformed bound, got %v", err)
	}
}

func TestDeleteByDateReportsMissingEntry(t *testing.T) {
	service := NewLogService(newStubLogRepo())

	if err := service.DeleteByDate(1, "2024-03-01"); !errors.Is(err, ErrLogNotFound) {
		t.Fatalf("expected ErrLogNotFound, got %v", err)
	}
}
