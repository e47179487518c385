package scrapers

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/categories"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
)

// clockworks/tiktok-scraper
const tiktokActorID = "GdWCkxBtKWOsKjdch"

// TikTokSource scrapes TikTok posts by category hashtags.
type TikTokSource struct {
	apify *apifyClient
}

var _ Source = (*TikTokSource)(nil)

// NewTikTokSource creates a new TikTok source.
func NewTikTokSource(apifyToken string) *TikTokSource {
	return &TikTokSource{apify: newApifyClient(apifyToken)}
}

func (t *TikTokSource) Platform() models.Platform {
	return models.PlatformTikTok
}

func (t *TikTokSource) IsEnabled() bool {
	return t.apify.token != ""
}

func (t *TikTokSource) Fetch(ctx context.Context, category string, daysBack, limit int) ([]json.RawMessage, error) {
	hashtags := categories.Hashtags(category, models.PlatformTikTok)
	if len(hashtags) > 5 {
		hashtags = hashtags[:5] // actor cost control
	}

	input := map[string]interface{}{
		"hashtags":             hashtags,
		"resultsPerPage":       limit,
		"profileSorting":       "latest",
		"shouldDownloadVideos": false,
		"shouldDownloadCovers": true,
		"commentsPerPost":      0,
		"lang":                 "en",
	}

	logrus.Infof("Starting TikTok scrape: category=%s hashtags=%v limit=%d", category, hashtags, limit)
	items, err := t.apify.runActor(ctx, tiktokActorID, input, limit)
	if err != nil {
		return nil, err
	}
	logrus.Infof("TikTok scrape completed: %d posts for %s", len(items), category)
	return items, nil
}
