package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Logs     *SymptomLogRepository
	Articles *ArticleRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Logs:     NewSymptomLogRepository(database),
		Articles: NewArticleRepository(database),
	}
}
