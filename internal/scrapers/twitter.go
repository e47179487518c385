package scrapers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/categories"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
)

const twitterActorID = "apidojo/tweet-scraper"

// TwitterSource scrapes tweets by category keywords.
type TwitterSource struct {
	apify *apifyClient
}

var _ Source = (*TwitterSource)(nil)

// NewTwitterSource creates a new Twitter source.
func NewTwitterSource(apifyToken string) *TwitterSource {
	return &TwitterSource{apify: newApifyClient(apifyToken)}
}

func (t *TwitterSource) Platform() models.Platform {
	return models.PlatformTwitter
}

func (t *TwitterSource) IsEnabled() bool {
	return t.apify.token != ""
}

func (t *TwitterSource) Fetch(ctx context.Context, category string, daysBack, limit int) ([]json.RawMessage, error) {
	keywords := categories.Hashtags(category, models.PlatformTwitter)
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}

	startDate := time.Now().AddDate(0, 0, -daysBack).Format("2006-01-02")
	searchTerms := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		searchTerms = append(searchTerms, fmt.Sprintf("%s since:%s", keyword, startDate))
	}

	input := map[string]interface{}{
		"searchTerms":   searchTerms,
		"maxItems":      limit,
		"sort":          "Latest",
		"tweetLanguage": "en",
	}

	logrus.Infof("Starting Twitter scrape: category=%s keywords=%v limit=%d", category, keywords, limit)
	items, err := t.apify.runActor(ctx, twitterActorID, input, limit)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Twitter scrape completed: %d tweets for %s", len(items), category)
	return items, nil
}
