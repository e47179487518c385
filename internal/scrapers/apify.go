// Package scrapers contains the per-platform adapters that fetch raw post
// data from Apify scraping actors.
package scrapers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const apifyBaseURL = "https://api.apify.com/v2"

// Actor runs are synchronous and can take a while for the bigger platforms.
const actorRunTimeout = 5 * time.Minute

// apifyClient wraps the Apify run-sync API shared by all adapters.
type apifyClient struct {
	client *resty.Client
	token  string
}

func newApifyClient(token string) *apifyClient {
	return &apifyClient{
		client: resty.New().
			SetBaseURL(apifyBaseURL).
			SetTimeout(actorRunTimeout).
			SetHeader("User-Agent", "BoredPanda-Content-Sourcing/1.0"),
		token: token,
	}
}

// runActor starts the actor synchronously and returns its dataset items,
// capped at limit.
func (a *apifyClient) runActor(ctx context.Context, actorID string, input interface{}, limit int) ([]json.RawMessage, error) {
	// The Apify API addresses "username/actor-name" actors with a tilde.
	actorPath := strings.ReplaceAll(actorID, "/", "~")

	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("token", a.token).
		SetQueryParam("clean", "true").
		SetHeader("Content-Type", "application/json").
		SetBody(input).
		Post(fmt.Sprintf("/acts/%s/run-sync-get-dataset-items", actorPath))

	if err != nil {
		return nil, fmt.Errorf("apify actor %s: %w", actorID, err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("apify actor %s returned status %d", actorID, resp.StatusCode())
	}

	var items []json.RawMessage
	if err := json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("apify actor %s response parse: %w", actorID, err)
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
