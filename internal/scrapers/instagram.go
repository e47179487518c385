package scrapers

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/categories"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
)

const instagramActorID = "apify/instagram-hashtag-scraper"

// InstagramSource scrapes Instagram posts by category hashtags.
type InstagramSource struct {
	apify *apifyClient
}

var _ Source = (*InstagramSource)(nil)

// NewInstagramSource creates a new Instagram source.
func NewInstagramSource(apifyToken string) *InstagramSource {
	return &InstagramSource{apify: newApifyClient(apifyToken)}
}

func (i *InstagramSource) Platform() models.Platform {
	return models.PlatformInstagram
}

func (i *InstagramSource) IsEnabled() bool {
	return i.apify.token != ""
}

func (i *InstagramSource) Fetch(ctx context.Context, category string, daysBack, limit int) ([]json.RawMessage, error) {
	hashtags := categories.Hashtags(category, models.PlatformInstagram)
	if len(hashtags) > 5 {
		hashtags = hashtags[:5]
	}

	input := map[string]interface{}{
		"hashtags":     hashtags,
		"resultsType":  "posts",
		"resultsLimit": limit,
		"language":     "en",
	}

	logrus.Infof("Starting Instagram scrape: category=%s hashtags=%v limit=%d", category, hashtags, limit)
	items, err := i.apify.runActor(ctx, instagramActorID, input, limit)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Instagram scrape completed: %d posts for %s", len(items), category)
	return items, nil
}
