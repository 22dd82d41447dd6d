package db

import (
	"time"

	"github.com/aletheia-health/aletheia/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}

func (repo *UserRepository) UpdateByID(userID uint, updates map[string]any) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"password_hash":        passwordHash,
		"must_change_password": mustChangePassword,
	}).Error
}

func (repo *UserRepository) SaveGoogleConnection(userID uint, encryptedRefreshToken string, googleEmail string, calendarID string) error {
	now := time.Now()
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"google_refresh_token":    encryptedRefreshToken,
		"google_email":            googleEmail,
		"google_token_created_at": &now,
		"calendar_id":             calendarID,
		"calendar_sync_enabled":   true,
	}).Error
}

func (repo *UserRepository) ClearGoogleConnection(userID uint) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"google_refresh_token":    "",
		"google_email":            "",
		"google_token_created_at": nil,
		"calendar_id":             "",
		"calendar_sync_enabled":   false,
		"last_calendar_sync":      nil,
	}).Error
}

func (repo *UserRepository) TouchLastCalendarSync(userID uint, at time.Time) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).
		Update("last_calendar_sync", &at).Error
}

func (repo *UserRepository) SetCalendarSyncEnabled(userID uint, enabled bool) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).
		Update("calendar_sync_enabled", enabled).Error
}
