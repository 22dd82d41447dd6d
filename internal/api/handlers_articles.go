package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultArticleLimit = 10
	maxArticleLimit     = 100
)

func (handler *Handler) ListArticles(c *fiber.Ctx) error {
	limit := queryInt(c, "limit", defaultArticleLimit)
	if limit < 1 || limit > maxArticleLimit {
		return apiError(c, fiber.StatusBadRequest, "limit must be between 1 and 100")
	}
	skip := queryInt(c, "skip", 0)
	if skip < 0 {
		return apiError(c, fiber.StatusBadRequest, "skip must not be negative")
	}

	articles, err := handler.repos.Articles.List(c.Query("category"), limit, skip)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch articles")
	}

	responses := make([]articleResponse, 0, len(articles))
	for _, article := range articles {
		responses = append(responses, buildArticleResponse(article))
	}
	return c.JSON(responses)
}

// RefreshArticles triggers ingestion from the configured feed.
func (handler *Handler) RefreshArticles(c *fiber.Ctx) error {
	count, err := handler.articles.RefreshArticles(c.Context())
	if err != nil {
		return apiError(c, fiber.StatusBadGateway, "failed to refresh articles")
	}
	return c.JSON(fiber.Map{
		"message":            "Articles refreshed successfully",
		"new_articles_count": count,
	})
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return value
}
