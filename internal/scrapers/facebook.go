package scrapers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/categories"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
)

const facebookActorID = "apify/facebook-posts-scraper"

// FacebookSource scrapes public Facebook posts by category keywords.
type FacebookSource struct {
	apify *apifyClient
}

var _ Source = (*FacebookSource)(nil)

// NewFacebookSource creates a new Facebook source.
func NewFacebookSource(apifyToken string) *FacebookSource {
	return &FacebookSource{apify: newApifyClient(apifyToken)}
}

func (f *FacebookSource) Platform() models.Platform {
	return models.PlatformFacebook
}

func (f *FacebookSource) IsEnabled() bool {
	return f.apify.token != ""
}

func (f *FacebookSource) Fetch(ctx context.Context, category string, daysBack, limit int) ([]json.RawMessage, error) {
	keywords := categories.Hashtags(category, models.PlatformFacebook)
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}

	startURLs := make([]map[string]string, 0, len(keywords))
	for _, keyword := range keywords {
		startURLs = append(startURLs, map[string]string{
			"url": fmt.Sprintf("https://www.facebook.com/search/posts/?q=%s", url.QueryEscape(keyword)),
		})
	}

	input := map[string]interface{}{
		"startUrls":          startURLs,
		"resultsLimit":       limit,
		"onlyPostsNewerThan": fmt.Sprintf("%d days", daysBack),
		"language":           "en",
	}

	logrus.Infof("Starting Facebook scrape: category=%s keywords=%v limit=%d", category, keywords, limit)
	items, err := f.apify.runActor(ctx, facebookActorID, input, limit)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Facebook scrape completed: %d posts for %s", len(items), category)
	return items, nil
}
