// Package scoring computes the rule-based virality score. Sub-scores are
// bounded, monotonic in their driving metric and sum to the base score, which
// the enrichment adjustment is later applied on top of.
package scoring

import (
	"math"
	"time"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
)

// Sub-score point caps. Diversity and Novelty are reserved for
// cross-platform-repeat and historical-freshness signals that need cross-run
// state this pipeline does not keep; they contribute 0 until those signals
// exist, so the 0-100 ceiling is nominal: the reachable base maximum is 75.
const (
	MaxVelocity       = 25.0
	MaxVolume         = 20.0
	MaxEngagementRate = 20.0
	MaxAuthority      = 10.0
	MaxDiversity      = 15.0
	MaxNovelty        = 10.0
)

// Saturation points: the metric value at which a sub-score hits its cap.
const (
	velocitySaturation       = 1000.0   // engagements per hour
	volumeSaturation         = 100000.0 // total engagements
	engagementRateSaturation = 10.0     // percent of followers
)

// Breakdown holds the per-factor sub-scores for one post.
type Breakdown struct {
	Velocity       float64
	Volume         float64
	EngagementRate float64
	Authority      float64
	Diversity      float64
	Novelty        float64
}

// Base returns the rule-based score, the sum of all sub-scores.
func (b Breakdown) Base() float64 {
	return b.Velocity + b.Volume + b.EngagementRate + b.Authority + b.Diversity + b.Novelty
}

// Score computes the rule-based breakdown for a post at the given collection
// time. It is pure: no I/O, no randomness.
func Score(post *models.Post, now time.Time) Breakdown {
	engagement := float64(post.TotalEngagement())

	return Breakdown{
		Velocity:       velocityScore(engagement, post.Timestamp, now),
		Volume:         saturating(engagement, volumeSaturation, MaxVolume),
		EngagementRate: engagementRateScore(engagement, post.Followers),
		Authority:      authorityScore(post.Followers),
		Diversity:      0,
		Novelty:        0,
	}
}

// ClampFinal applies the enrichment adjustment and clamps into [0, 100].
func ClampFinal(base float64, adjustment int) float64 {
	return math.Min(100, math.Max(0, base+float64(adjustment)))
}

// velocityScore rewards engagements per hour since posting. Elapsed time is
// floored at one hour so just-posted content cannot blow up the rate.
func velocityScore(engagement float64, postedAt, now time.Time) float64 {
	hours := now.Sub(postedAt).Hours()
	if hours < 1 {
		hours = 1
	}
	return saturating(engagement/hours, velocitySaturation, MaxVelocity)
}

// engagementRateScore rewards engagement relative to audience size. Posts
// with no recorded followers get the floor, not a division error.
func engagementRateScore(engagement float64, followers int) float64 {
	if followers == 0 {
		return 0
	}
	ratePercent := engagement / float64(followers) * 100
	return saturating(ratePercent, engagementRateSaturation, MaxEngagementRate)
}

// authorityScore proxies source credibility from follower count alone.
func authorityScore(followers int) float64 {
	switch {
	case followers > 1000000:
		return 10
	case followers > 100000:
		return 7
	case followers > 10000:
		return 5
	default:
		return 3
	}
}

// saturating maps value linearly onto [0, max], capping once value reaches
// the saturation point. Monotonically non-decreasing and bounded.
func saturating(value, saturation, max float64) float64 {
	if value <= 0 {
		return 0
	}
	if value >= saturation {
		return max
	}
	return round2(value / saturation * max)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
