// Package pipeline implements the aggregation-and-scoring pipeline: it fans
// out to the platform scrapers, normalizes and filters what comes back,
// scores every surviving post, enriches the top of the ranking and produces
// the final capped, deterministically ordered result.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/enrich"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/language"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/scoring"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/scrapers"
)

// Options tunes a Pipeline. Zero values fall back to the documented defaults.
type Options struct {
	EnrichTopK        int // posts enriched per job, highest base score first
	EnrichConcurrency int // enrichment worker pool size
	OutputSize        int // posts returned per job
	LimitPerSource    int // raw results requested per platform/category combo
}

func (o *Options) fillDefaults() {
	if o.EnrichTopK == 0 {
		o.EnrichTopK = 30
	}
	if o.EnrichConcurrency <= 0 {
		o.EnrichConcurrency = 5
	}
	if o.OutputSize <= 0 {
		o.OutputSize = 20
	}
	if o.LimitPerSource <= 0 {
		o.LimitPerSource = 20
	}
}

// Request describes one discovery job.
type Request struct {
	Categories []string
	Platforms  []models.Platform
	DaysBack   int
}

// Metrics records what the last run did. Counters here are log-level detail
// exposed on /metrics; they are not part of the job result contract.
type Metrics struct {
	LastRun           time.Time      `json:"last_run"`
	LastRunDuration   string         `json:"last_run_duration"`
	Collected         int            `json:"collected"`
	DroppedNormalize  int            `json:"dropped_normalize"`
	DroppedLanguage   int            `json:"dropped_language"`
	DroppedDuplicate  int            `json:"dropped_duplicate"`
	Enriched          int            `json:"enriched"`
	EnrichmentErrors  int            `json:"enrichment_errors"`
	SourceErrors      int            `json:"source_errors"`
	CollectedBySource map[string]int `json:"collected_by_source"`
}

// Pipeline orchestrates one job end to end. All per-job state is local to
// Run; the pipeline itself only keeps last-run metrics.
type Pipeline struct {
	sources  map[models.Platform]scrapers.Source
	enricher enrich.Enricher // nil disables enrichment
	opts     Options

	mu      sync.RWMutex
	metrics Metrics
}

// New creates a pipeline over the given sources. A nil enricher disables the
// AI enhancement layer; posts then keep their rule-based scores.
func New(sources []scrapers.Source, enricher enrich.Enricher, opts Options) *Pipeline {
	opts.fillDefaults()
	byPlatform := make(map[models.Platform]scrapers.Source, len(sources))
	for _, src := range sources {
		byPlatform[src.Platform()] = src
	}
	return &Pipeline{
		sources:  byPlatform,
		enricher: enricher,
		opts:     opts,
	}
}

// scrapeResult is one fan-out task's outcome.
type scrapeResult struct {
	platform models.Platform
	category string
	items    []json.RawMessage
	err      error
}

// Run executes the full workflow and returns the ranked, capped post list.
// A per-source failure is tolerated; Run errors only on total failure: no
// task succeeded, or no post survived filtering.
func (p *Pipeline) Run(ctx context.Context, req Request) ([]models.Post, error) {
	start := time.Now()
	m := Metrics{CollectedBySource: make(map[string]int)}

	posts, succeeded := p.collect(ctx, req, &m)
	if succeeded == 0 {
		p.storeMetrics(m, start)
		return nil, fmt.Errorf("all sources failed, nothing collected")
	}

	posts = p.filterEnglish(posts, &m)

	before := len(posts)
	posts = Deduplicate(posts)
	m.DroppedDuplicate = before - len(posts)

	if len(posts) == 0 {
		p.storeMetrics(m, start)
		return nil, fmt.Errorf("no posts survived filtering")
	}

	baseScores := p.scoreAll(posts, start)
	p.enrichTop(ctx, posts, baseScores, &m)

	// Final ranking: score descending, ties by higher total engagement; the
	// stable sort keeps earlier collection order for full ties.
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].ViralityScore != posts[j].ViralityScore {
			return posts[i].ViralityScore > posts[j].ViralityScore
		}
		return posts[i].TotalEngagement() > posts[j].TotalEngagement()
	})

	if len(posts) > p.opts.OutputSize {
		posts = posts[:p.opts.OutputSize]
	}

	p.storeMetrics(m, start)
	logrus.Infof("Pipeline run completed in %v: %d posts returned", time.Since(start), len(posts))
	return posts, nil
}

// collect fans out one scrape task per category/platform combination and
// joins them all, tolerating individual failures. It returns the normalized
// posts in collection order and the number of tasks that succeeded.
func (p *Pipeline) collect(ctx context.Context, req Request, m *Metrics) ([]models.Post, int) {
	type task struct {
		source   scrapers.Source
		category string
	}

	var tasks []task
	for _, platform := range req.Platforms {
		src, ok := p.sources[platform]
		if !ok || !src.IsEnabled() {
			logrus.Warnf("Source %s unavailable or disabled, skipping", platform)
			continue
		}
		for _, category := range req.Categories {
			tasks = append(tasks, task{source: src, category: category})
		}
	}

	logrus.Infof("Starting %d scrape tasks across %d platforms", len(tasks), len(req.Platforms))

	// Each task owns one slot, so results assemble in task order no matter
	// which vendor answers first. Collection order feeds the tie-breaks
	// downstream and has to be reproducible across runs.
	var wg sync.WaitGroup
	results := make([]scrapeResult, len(tasks))

	for i, t := range tasks {
		wg.Add(1)
		go func(i int, t task) {
			defer wg.Done()
			items, err := t.source.Fetch(ctx, t.category, req.DaysBack, p.opts.LimitPerSource)
			results[i] = scrapeResult{
				platform: t.source.Platform(),
				category: t.category,
				items:    items,
				err:      err,
			}
		}(i, t)
	}
	wg.Wait()

	var posts []models.Post
	succeeded := 0
	now := time.Now()

	for _, res := range results {
		if res.err != nil {
			logrus.Errorf("Scrape %s/%s failed: %v", res.platform, res.category, res.err)
			m.SourceErrors++
			continue
		}
		succeeded++
		normalized := 0
		for _, raw := range res.items {
			post, ok := Normalize(res.platform, raw, res.category, now)
			if !ok {
				m.DroppedNormalize++
				continue
			}
			posts = append(posts, post)
			normalized++
		}
		m.CollectedBySource[string(res.platform)] += normalized
	}

	m.Collected = len(posts)
	if m.DroppedNormalize > 0 {
		logrus.Infof("Dropped %d structurally empty records during normalization", m.DroppedNormalize)
	}
	logrus.Infof("Collected %d posts from %d successful scrape tasks", len(posts), succeeded)
	return posts, succeeded
}

func (p *Pipeline) filterEnglish(posts []models.Post, m *Metrics) []models.Post {
	kept := posts[:0]
	for _, post := range posts {
		if language.IsEnglish(post.Text) {
			kept = append(kept, post)
		} else {
			m.DroppedLanguage++
		}
	}
	if m.DroppedLanguage > 0 {
		logrus.Infof("Dropped %d non-English posts", m.DroppedLanguage)
	}
	return kept
}

// scoreAll computes base scores in place and returns them, parallel to posts.
func (p *Pipeline) scoreAll(posts []models.Post, collectionTime time.Time) []float64 {
	baseScores := make([]float64, len(posts))
	for i := range posts {
		breakdown := scoring.Score(&posts[i], collectionTime)
		baseScores[i] = breakdown.Base()
		posts[i].ViralityScore = baseScores[i]
	}
	return baseScores
}

// enrichTop sends the K highest-base-scored posts through the enrichment
// worker pool. Failures are isolated per post: the post keeps its base score
// and gets no brief.
func (p *Pipeline) enrichTop(ctx context.Context, posts []models.Post, baseScores []float64, m *Metrics) {
	if p.enricher == nil || p.opts.EnrichTopK <= 0 {
		return
	}

	// Rank indices by base score; ties by engagement, then collection order.
	order := make([]int, len(posts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if baseScores[i] != baseScores[j] {
			return baseScores[i] > baseScores[j]
		}
		return posts[i].TotalEngagement() > posts[j].TotalEngagement()
	})

	topK := p.opts.EnrichTopK
	if topK > len(order) {
		topK = len(order)
	}

	pending := make(chan int, topK)
	for _, idx := range order[:topK] {
		pending <- idx
	}
	close(pending)

	workers := p.opts.EnrichConcurrency
	if workers > topK {
		workers = topK
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	logrus.Infof("Enriching top %d posts with %d workers", topK, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range pending {
				result, err := p.enricher.Enrich(ctx, &posts[idx], baseScores[idx])

				mu.Lock()
				if err != nil {
					logrus.Errorf("Enrichment failed for %s: %v", posts[idx].URL, err)
					m.EnrichmentErrors++
				} else {
					posts[idx].ViralityScore = scoring.ClampFinal(baseScores[idx], result.Adjustment)
					brief := result.Brief
					posts[idx].Brief = &brief
					m.Enriched++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}

func (p *Pipeline) storeMetrics(m Metrics, start time.Time) {
	m.LastRun = time.Now()
	m.LastRunDuration = time.Since(start).String()

	p.mu.Lock()
	p.metrics = m
	p.mu.Unlock()
}

// GetMetrics returns the last run's metrics as JSON.
func (p *Pipeline) GetMetrics() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	data, _ := json.MarshalIndent(p.metrics, "", "  ")
	return string(data)
}
