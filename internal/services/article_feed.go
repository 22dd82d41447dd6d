package services

import (
	"regexp"
	"strings"
	"time"
)

type rssFeed struct {
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title string    `xml:"title"`
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link"`
	Description string     `xml:"description"`
	PubDate     string     `xml:"pubDate"`
	Media       []rssMedia `xml:"content"`
	Thumbnails  []rssMedia `xml:"thumbnail"`
	Enclosure   rssMedia   `xml:"enclosure"`
}

type rssMedia struct {
	URL string `xml:"url,attr"`
}

func (item rssItem) firstImageURL() string {
	for _, media := range item.Media {
		if media.URL != "" {
			return media.URL
		}
	}
	for _, thumbnail := range item.Thumbnails {
		if thumbnail.URL != "" {
			return thumbnail.URL
		}
	}
	return item.Enclosure.URL
}

var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
}

func (item rssItem) publishedTime() time.Time {
	raw := strings.TrimSpace(item.PubDate)
	for _, layout := range pubDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC()
		}
	}
	return time.Now().UTC()
}

var ogImagePattern = regexp.MustCompile(
	`<meta[^>]+(?:property|name)=["']og:image["'][^>]*content=["']([^"']+)["']|<meta[^>]+content=["']([^"']+)["'][^>]*(?:property|name)=["']og:image["']`,
)

// FindOpenGraphImage extracts the og:image content attribute from raw HTML.
// Returns an empty string when the page declares none.
func FindOpenGraphImage(html string) string {
	matches := ogImagePattern.FindStringSubmatch(html)
	if matches == nil {
		return ""
	}
	if matches[1] != "" {
		return matches[1]
	}
	return matches[2]
}
