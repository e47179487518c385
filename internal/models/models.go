package models

import "time"

// Platform identifies the social network a post was collected from.
type Platform string

const (
	PlatformTikTok    Platform = "TikTok"
	PlatformInstagram Platform = "Instagram"
	PlatformFacebook  Platform = "Facebook"
	PlatformTwitter   Platform = "Twitter"
	PlatformRSS       Platform = "RSS"
)

// AllPlatforms returns the platforms the pipeline knows how to normalize.
func AllPlatforms() []Platform {
	return []Platform{
		PlatformTikTok,
		PlatformInstagram,
		PlatformFacebook,
		PlatformTwitter,
		PlatformRSS,
	}
}

// Valid reports whether p is one of the recognized platforms.
func (p Platform) Valid() bool {
	switch p {
	case PlatformTikTok, PlatformInstagram, PlatformFacebook, PlatformTwitter, PlatformRSS:
		return true
	}
	return false
}

// Post is the unified record every platform's raw result is normalized into.
// URL is the deduplication key; a post with an empty URL never survives
// normalization. ViralityScore is populated by the scorer before a post
// reaches the output, Brief only when enrichment succeeds.
type Post struct {
	Platform      Platform  `json:"platform"`
	URL           string    `json:"url"`
	Text          string    `json:"text"`
	Author        string    `json:"author"`
	Followers     int       `json:"followers"`
	Likes         int       `json:"likes"`
	Shares        int       `json:"shares"`
	Comments      int       `json:"comments"`
	Category      string    `json:"category"`
	Timestamp     time.Time `json:"timestamp"`
	ViralityScore float64   `json:"virality_score"`
	Brief         *Brief    `json:"ai_brief,omitempty"`
}

// TotalEngagement sums likes, shares and comments.
func (p *Post) TotalEngagement() int {
	return p.Likes + p.Shares + p.Comments
}

// Brief is the AI-generated editorial brief attached to top-scored posts.
type Brief struct {
	WhyViral      string   `json:"why_viral"`
	BoredPandaFit string   `json:"boredpanda_fit"`
	WriterRoadmap []string `json:"writer_roadmap"`
}

// JobStatus is the lifecycle state of a scraping job.
type JobStatus string

const (
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Job is one end-to-end pipeline execution, polled by the caller. The store
// replaces the whole record on each transition so readers never observe a
// partially written result list.
type Job struct {
	ID        string    `json:"id"`
	Status    JobStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Result    []Post    `json:"result,omitempty"`
}
