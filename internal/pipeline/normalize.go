package pipeline

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
)

// Raw vendor records, one variant per platform. Field names are the contract
// with the scraping actors; keep them in sync with the adapters and pinned by
// the tests in normalize_test.go.

type tiktokRaw struct {
	WebVideoURL   string `json:"webVideoUrl"`
	URL           string `json:"url"`
	Text          string `json:"text"`
	DiggCount     int    `json:"diggCount"`
	ShareCount    int    `json:"shareCount"`
	CommentCount  int    `json:"commentCount"`
	CreateTimeISO string `json:"createTimeISO"`
	CreateTime    int64  `json:"createTime"`
	AuthorMeta    struct {
		Name string `json:"name"`
		Fans int    `json:"fans"`
	} `json:"authorMeta"`
}

type instagramRaw struct {
	URL           string `json:"url"`
	Caption       string `json:"caption"`
	OwnerUsername string `json:"ownerUsername"`
	LikesCount    int    `json:"likesCount"`
	CommentsCount int    `json:"commentsCount"`
	Timestamp     string `json:"timestamp"`
}

type facebookRaw struct {
	URL      string `json:"url"`
	Text     string `json:"text"`
	Likes    int    `json:"likes"`
	Shares   int    `json:"shares"`
	Comments int    `json:"comments"`
	Time     string `json:"time"`
	User     struct {
		Name string `json:"name"`
	} `json:"user"`
}

type twitterRaw struct {
	TweetURL     string `json:"tweetUrl"`
	URL          string `json:"url"`
	Text         string `json:"text"`
	FullText     string `json:"fullText"`
	LikeCount    int    `json:"likeCount"`
	RetweetCount int    `json:"retweetCount"`
	ReplyCount   int    `json:"replyCount"`
	CreatedAt    string `json:"createdAt"`
	Author       struct {
		UserName  string `json:"userName"`
		Followers int    `json:"followers"`
	} `json:"author"`
}

type rssRaw struct {
	Link        string `json:"link"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	PubDate     string `json:"pubDate"`
}

// Normalize converts one raw vendor record into the unified post schema.
// It is total over well-formed JSON: absent fields get their defaults,
// negative counters are floored at zero and neither fails the record. The
// second return value is false when the record is
// structurally unusable (malformed JSON or no canonical URL) and must be
// dropped.
func Normalize(platform models.Platform, raw json.RawMessage, category string, now time.Time) (models.Post, bool) {
	var post models.Post

	switch platform {
	case models.PlatformTikTok:
		var r tiktokRaw
		if err := json.Unmarshal(raw, &r); err != nil {
			return models.Post{}, false
		}
		post = models.Post{
			Platform:  models.PlatformTikTok,
			URL:       firstNonEmpty(r.WebVideoURL, r.URL),
			Text:      r.Text,
			Author:    authorOrUnknown(r.AuthorMeta.Name),
			Followers: nonNegative(r.AuthorMeta.Fans),
			Likes:     nonNegative(r.DiggCount),
			Shares:    nonNegative(r.ShareCount),
			Comments:  nonNegative(r.CommentCount),
			Timestamp: tiktokTime(r, now),
		}

	case models.PlatformInstagram:
		var r instagramRaw
		if err := json.Unmarshal(raw, &r); err != nil {
			return models.Post{}, false
		}
		post = models.Post{
			Platform:  models.PlatformInstagram,
			URL:       r.URL,
			Text:      r.Caption,
			Author:    authorOrUnknown(r.OwnerUsername),
			Likes:     nonNegative(r.LikesCount),
			Comments:  nonNegative(r.CommentsCount),
			Timestamp: parseTime(r.Timestamp, now),
		}

	case models.PlatformFacebook:
		var r facebookRaw
		if err := json.Unmarshal(raw, &r); err != nil {
			return models.Post{}, false
		}
		post = models.Post{
			Platform:  models.PlatformFacebook,
			URL:       r.URL,
			Text:      r.Text,
			Author:    authorOrUnknown(r.User.Name),
			Likes:     nonNegative(r.Likes),
			Shares:    nonNegative(r.Shares),
			Comments:  nonNegative(r.Comments),
			Timestamp: parseTime(r.Time, now),
		}

	case models.PlatformTwitter:
		var r twitterRaw
		if err := json.Unmarshal(raw, &r); err != nil {
			return models.Post{}, false
		}
		post = models.Post{
			Platform: models.PlatformTwitter,
			// The tweet-scraper actor puts the canonical link in tweetUrl;
			// url, when present, points elsewhere. Priority order matters.
			URL:       firstNonEmpty(r.TweetURL, r.URL),
			Text:      firstNonEmpty(r.Text, r.FullText),
			Author:    authorOrUnknown(r.Author.UserName),
			Followers: nonNegative(r.Author.Followers),
			Likes:     nonNegative(r.LikeCount),
			Shares:    nonNegative(r.RetweetCount),
			Comments:  nonNegative(r.ReplyCount),
			Timestamp: parseTime(r.CreatedAt, now),
		}

	case models.PlatformRSS:
		var r rssRaw
		if err := json.Unmarshal(raw, &r); err != nil {
			return models.Post{}, false
		}
		post = models.Post{
			Platform:  models.PlatformRSS,
			URL:       r.Link,
			Text:      joinTitleDescription(r.Title, r.Description),
			Author:    authorOrUnknown(r.Author),
			Timestamp: parseTime(r.PubDate, now),
		}

	default:
		return models.Post{}, false
	}

	post.URL = strings.TrimSpace(post.URL)
	if post.URL == "" {
		return models.Post{}, false
	}
	post.Category = category
	return post, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// nonNegative floors vendor counters at zero; some actors emit -1 for
// unavailable metrics.
func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func authorOrUnknown(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Unknown"
	}
	return name
}

func joinTitleDescription(title, description string) string {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	switch {
	case title == "":
		return description
	case description == "":
		return title
	default:
		return title + "\n\n" + description
	}
}

// timeLayouts are tried in order for vendor timestamp strings.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05",
	"Mon Jan 02 15:04:05 -0700 2006", // twitter legacy createdAt
}

// parseTime parses a vendor timestamp best-effort, defaulting to the
// collection time when the source omits or mangles it.
func parseTime(value string, now time.Time) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return now
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return now
}

func tiktokTime(r tiktokRaw, now time.Time) time.Time {
	if r.CreateTimeISO != "" {
		return parseTime(r.CreateTimeISO, now)
	}
	if r.CreateTime > 0 {
		return time.Unix(r.CreateTime, 0).UTC()
	}
	return now
}
