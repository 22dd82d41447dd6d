package services

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/aletheia-health/aletheia/internal/models"
)

var ErrFeedUnavailable = errors.New("article feed unavailable")

const articleFetchTimeout = 10 * time.Second

type ArticleStore interface {
	FindByURL(url string) (models.Article, bool, error)
	Create(article *models.Article) error
	Save(article *models.Article) error
}

// ArticleService ingests the configured menopause RSS feed into the articles
// table. Entries are keyed by URL; re-running a refresh updates existing rows
// instead of duplicating them.
type ArticleService struct {
	store      ArticleStore
	httpClient *http.Client
	feedURL    string
	sourceName string
}

func NewArticleService(store ArticleStore, feedURL string) *ArticleService {
	return &ArticleService{
		store:      store,
		httpClient: &http.Client{Timeout: articleFetchTimeout},
		feedURL:    feedURL,
		sourceName: "ScienceDaily",
	}
}

// RefreshArticles fetches the feed and upserts every entry. Returns the number
// of newly created articles; per-entry failures are logged and skipped.
func (service *ArticleService) RefreshArticles(ctx context.Context) (int, error) {
	feed, err := service.fetchFeed(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, item := range feed.Channel.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}

		existing, found, err := service.store.FindByURL(link)
		if err != nil {
			log.Printf("article lookup failed for %s: %v", link, err)
			continue
		}

		article := models.Article{
			Title:       strings.TrimSpace(item.Title),
			Summary:     strings.TrimSpace(item.Description),
			URL:         link,
			ImageURL:    item.firstImageURL(),
			Source:      service.sourceName,
			Category:    CategorizeArticle(item.Title, item.Description),
			PublishedAt: item.publishedTime(),
		}
		if article.Title == "" {
			article.Title = "No Title"
		}
		if article.ImageURL == "" && found {
			article.ImageURL = existing.ImageURL
		}
		if article.ImageURL == "" {
			article.ImageURL = service.extractOpenGraphImage(ctx, link)
		}

		if found {
			article.ID = existing.ID
			article.CreatedAt = existing.CreatedAt
			if err := service.store.Save(&article); err != nil {
				log.Printf("article update failed for %s: %v", link, err)
			}
			continue
		}

		if err := service.store.Create(&article); err != nil {
			log.Printf("article insert failed for %s: %v", link, err)
			continue
		}
		created++
	}

	return created, nil
}

func (service *ArticleService) fetchFeed(ctx context.Context) (*rssFeed, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, service.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	request.Header.Set("User-Agent", "Aletheia/1.0")

	response, err := service.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFeedUnavailable, response.StatusCode)
	}

	feed := rssFeed{}
	if err := xml.NewDecoder(response.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return &feed, nil
}

// extractOpenGraphImage fetches the article page and pulls the og:image meta
// tag. Best effort: any failure yields an empty URL.
func (service *ArticleService) extractOpenGraphImage(ctx context.Context, pageURL string) string {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return ""
	}
	request.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Aletheia/1.0)")

	response, err := service.httpClient.Do(request)
	if err != nil {
		return ""
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return ""
	}

	limited := io.LimitReader(response.Body, 256*1024)
	body, err := io.ReadAll(limited)
	if err != nil {
		return ""
	}
	return FindOpenGraphImage(string(body))
}

var nutritionKeywords = []string{
	"diet", "food", "nutrition", "eat", "vitamin", "supplement",
	"tea", "coffee", "sugar", "protein", "carb", "fat",
}

var symptomKeywords = []string{
	"symptom", "pain", "flash", "sweat", "sleep", "insomnia",
	"mood", "anxiety", "depression", "fog", "weight", "ache",
}

// CategorizeArticle buckets an article by keyword heuristics. Nutrition wins
// over Symptoms when both match; anything else is Essential.
func CategorizeArticle(title string, summary string) string {
	text := strings.ToLower(title + " " + summary)
	for _, keyword := range nutritionKeywords {
		if strings.Contains(text, keyword) {
			return models.ArticleCategoryNutrition
		}
	}
	for _, keyword := range symptomKeywords {
		if strings.Contains(text, keyword) {
			return models.ArticleCategorySymptoms
		}
	}
	return models.ArticleCategoryEssential
}
