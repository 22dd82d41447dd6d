package models

import "time"

const (
	ArticleCategorySymptoms  = "Symptoms"
	ArticleCategoryNutrition = "Nutrition"
	ArticleCategoryEssential = "Essential"
)

type Article struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"not null"`
	Summary     string    `gorm:"not null"`
	URL         string    `gorm:"uniqueIndex;not null"`
	ImageURL    string
	Source      string    `gorm:"not null"`
	Category    string    `gorm:"not null;index"`
	PublishedAt time.Time `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
