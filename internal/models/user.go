package models

import "time"

const (
	MenstrualStatusRegular       = "regular"
	MenstrualStatusIrregular     = "irregular"
	MenstrualStatusPerimenopause = "perimenopause"
	MenstrualStatusPostmenopause = "postmenopause"
	MenstrualStatusUnsure        = "unsure"
)

// MaxPrimarySymptoms caps how many symptoms a user can pin during onboarding.
const MaxPrimarySymptoms = 3

type User struct {
	ID                  uint     `gorm:"primaryKey"`
	Email               string   `gorm:"uniqueIndex;not null"`
	Name                string   `gorm:"not null"`
	PasswordHash        string   `gorm:"not null"`
	AgeRange            string   `gorm:"not null;default:''"`
	MenstrualStatus     string   `gorm:"not null;default:''"`
	PrimarySymptoms     []string `gorm:"serializer:json"`
	OnboardingCompleted bool     `gorm:"not null;default:false"`
	MustChangePassword  bool     `gorm:"not null;default:false"`

	// Google Calendar integration. The refresh token is stored encrypted
	// (AES-GCM, see internal/security); everything else is plain metadata.
	GoogleRefreshToken   string
	GoogleEmail          string
	GoogleTokenCreatedAt *time.Time
	CalendarSyncEnabled  bool `gorm:"not null;default:false"`
	CalendarID           string
	LastCalendarSync     *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time
}

// CalendarConnected reports whether a usable refresh token is on file.
func (user *User) CalendarConnected() bool {
	return user.GoogleRefreshToken != ""
}

func (user *User) CalendarActive() bool {
	return user.CalendarConnected() && user.CalendarSyncEnabled
}
