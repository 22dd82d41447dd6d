package api

import (
	"errors"
	"time"

	"github.com/aletheia-health/aletheia/internal/db"
	"github.com/aletheia-health/aletheia/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db          *gorm.DB
	repos       *db.Repositories
	logs        *services.LogService
	articles    *services.ArticleService
	calendar    *services.CalendarService
	chat        *services.ChatService
	secretKey   []byte
	tokenTTL    time.Duration
	oauthStates *oauthStateRegistry
}

type Options struct {
	Database        *gorm.DB
	Secret          string
	TokenTTL        time.Duration
	ArticleFeedURL  string
	CalendarService *services.CalendarService
	ChatService     *services.ChatService
}

const defaultTokenTTL = 7 * 24 * time.Hour

func NewHandler(options Options) (*Handler, error) {
	if options.Database == nil {
		return nil, errors.New("database is required")
	}
	if options.Secret == "" {
		return nil, errors.New("secret key is required")
	}
	if options.TokenTTL <= 0 {
		options.TokenTTL = defaultTokenTTL
	}

	repos := db.NewRepositories(options.Database)
	return &Handler{
		db:          options.Database,
		repos:       repos,
		logs:        services.NewLogService(repos.Logs),
		articles:    services.NewArticleService(repos.Articles, options.ArticleFeedURL),
		calendar:    options.CalendarService,
		chat:        options.ChatService,
		secretKey:   []byte(options.Secret),
		tokenTTL:    options.TokenTTL,
		oauthStates: newOAuthStateRegistry(),
	}, nil
}
