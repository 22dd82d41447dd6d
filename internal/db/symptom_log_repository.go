package db

import (
	"github.com/aletheia-health/aletheia/internal/models"
	"gorm.io/gorm"
)

type SymptomLogRepository struct {
	database *gorm.DB
}

func NewSymptomLogRepository(database *gorm.DB) *SymptomLogRepository {
	return &SymptomLogRepository{database: database}
}

func (repo *SymptomLogRepository) ListByUser(userID uint, limit int) ([]models.SymptomLog, error) {
	logs := make([]models.SymptomLog, 0)
	query := repo.database.Where("user_id = ?", userID).Order("date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *SymptomLogRepository) ListByUserRange(userID uint, startDate string, endDate string) ([]models.SymptomLog, error) {
	query := repo.database.Where("user_id = ?", userID)
	if startDate != "" {
		query = query.Where("date >= ?", startDate)
	}
	if endDate != "" {
		query = query.Where("date <= ?", endDate)
	}

	logs := make([]models.SymptomLog, 0)
	if err := query.Order("date DESC, id DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *SymptomLogRepository) FindByUserAndDate(userID uint, date string) (models.SymptomLog, bool, error) {
	entry := models.SymptomLog{}
	result := repo.database.
		Where("user_id = ? AND date = ?", userID, date).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.SymptomLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.SymptomLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *SymptomLogRepository) FindByUserAndID(userID uint, logID uint) (models.SymptomLog, bool, error) {
	entry := models.SymptomLog{}
	result := repo.database.
		Where("user_id = ? AND id = ?", userID, logID).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.SymptomLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.SymptomLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *SymptomLogRepository) Create(entry *models.SymptomLog) error {
	return repo.database.Create(entry).Error
}

func (repo *SymptomLogRepository) Save(entry *models.SymptomLog) error {
	return repo.database.Save(entry).Error
}

func (repo *SymptomLogRepository) UpdateCalendarEventID(userID uint, logID uint, eventID string) error {
	return repo.database.Model(&models.SymptomLog{}).
		Where("user_id = ? AND id = ?", userID, logID).
		Update("calendar_event_id", eventID).Error
}

// DeleteByUserAndDate removes the log for one day; reports whether a row existed.
func (repo *SymptomLogRepository) DeleteByUserAndDate(userID uint, date string) (bool, error) {
	result := repo.database.Where("user_id = ? AND date = ?", userID, date).Delete(&models.SymptomLog{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *SymptomLogRepository) DeleteAllByUser(userID uint) error {
	return repo.database.Where("user_id = ?", userID).Delete(&models.SymptomLog{}).Error
}
