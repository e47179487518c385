package scrapers

import (
	"context"
	"encoding/json"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
)

// Source is the contract every platform scraper implements. Fetch returns
// raw vendor records for the pipeline to normalize; a failure of one source
// never fails the job.
type Source interface {
	Platform() models.Platform
	IsEnabled() bool
	Fetch(ctx context.Context, category string, daysBack, limit int) ([]json.RawMessage, error)
}
