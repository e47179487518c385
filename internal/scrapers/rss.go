package scrapers

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/categories"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
)

const rssActorID = "jupri/rss-xml-scraper"

// RSSSource fetches configured RSS feeds for a category.
type RSSSource struct {
	apify *apifyClient
}

var _ Source = (*RSSSource)(nil)

// NewRSSSource creates a new RSS source.
func NewRSSSource(apifyToken string) *RSSSource {
	return &RSSSource{apify: newApifyClient(apifyToken)}
}

func (r *RSSSource) Platform() models.Platform {
	return models.PlatformRSS
}

func (r *RSSSource) IsEnabled() bool {
	return r.apify.token != ""
}

func (r *RSSSource) Fetch(ctx context.Context, category string, daysBack, limit int) ([]json.RawMessage, error) {
	feeds := categories.RSSFeeds(category)
	if len(feeds) == 0 {
		logrus.Warnf("No RSS feeds configured for category %s", category)
		return nil, nil
	}
	if len(feeds) > 3 {
		feeds = feeds[:3]
	}

	var all []json.RawMessage
	for _, feed := range feeds {
		input := map[string]interface{}{
			"url": feed,
		}

		logrus.Infof("Scraping RSS feed: %s", feed)
		items, err := r.apify.runActor(ctx, rssActorID, input, limit)
		if err != nil {
			// One broken feed should not sink the rest of the category.
			logrus.Errorf("RSS feed %s failed: %v", feed, err)
			continue
		}
		all = append(all, items...)
	}

	logrus.Infof("RSS scrape completed: %d items for %s", len(all), category)
	return all, nil
}
