package db

import (
	"github.com/aletheia-health/aletheia/internal/models"
	"gorm.io/gorm"
)

type ArticleRepository struct {
	database *gorm.DB
}

func NewArticleRepository(database *gorm.DB) *ArticleRepository {
	return &ArticleRepository{database: database}
}

func (repo *ArticleRepository) List(category string, limit int, skip int) ([]models.Article, error) {
	query := repo.database.Model(&models.Article{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	articles := make([]models.Article, 0)
	if err := query.
		Order("published_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (repo *ArticleRepository) FindByURL(url string) (models.Article, bool, error) {
	article := models.Article{}
	result := repo.database.Where("url = ?", url).Limit(1).Find(&article)
	if result.Error != nil {
		return models.Article{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Article{}, false, nil
	}
	return article, true, nil
}

func (repo *ArticleRepository) Create(article *models.Article) error {
	return repo.database.Create(article).Error
}

func (repo *ArticleRepository) Save(article *models.Article) error {
	return repo.database.Save(article).Error
}
