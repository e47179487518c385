package pipeline

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
)

var collectionTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNormalize_TikTok(t *testing.T) {
	raw := json.RawMessage(`{
		"webVideoUrl": "https://www.tiktok.com/@user/video/123",
		"url": "https://other.example.com/123",
		"text": "funny cat video",
		"diggCount": 1500,
		"shareCount": 200,
		"commentCount": 85,
		"createTimeISO": "2024-05-30T10:00:00Z",
		"authorMeta": {"name": "catlover", "fans": 50000}
	}`)

	post, ok := Normalize(models.PlatformTikTok, raw, "Animals", collectionTime)
	require.True(t, ok)

	assert.Equal(t, models.PlatformTikTok, post.Platform)
	assert.Equal(t, "https://www.tiktok.com/@user/video/123", post.URL, "webVideoUrl takes priority over url")
	assert.Equal(t, "funny cat video", post.Text)
	assert.Equal(t, "catlover", post.Author)
	assert.Equal(t, 50000, post.Followers)
	assert.Equal(t, 1500, post.Likes)
	assert.Equal(t, 200, post.Shares)
	assert.Equal(t, 85, post.Comments)
	assert.Equal(t, "Animals", post.Category)
	assert.Equal(t, time.Date(2024, 5, 30, 10, 0, 0, 0, time.UTC), post.Timestamp)
}

func TestNormalize_TikTok_URLFallback(t *testing.T) {
	raw := json.RawMessage(`{"url": "https://www.tiktok.com/fallback", "text": "hi"}`)

	post, ok := Normalize(models.PlatformTikTok, raw, "Funny", collectionTime)
	require.True(t, ok)
	assert.Equal(t, "https://www.tiktok.com/fallback", post.URL)
}

func TestNormalize_TikTok_UnixCreateTime(t *testing.T) {
	raw := json.RawMessage(`{"webVideoUrl": "https://t.example/1", "createTime": 1717063200}`)

	post, ok := Normalize(models.PlatformTikTok, raw, "Funny", collectionTime)
	require.True(t, ok)
	assert.Equal(t, time.Unix(1717063200, 0).UTC(), post.Timestamp)
}

func TestNormalize_Instagram(t *testing.T) {
	raw := json.RawMessage(`{
		"url": "https://www.instagram.com/p/abc/",
		"caption": "sunset vibes",
		"ownerUsername": "traveler",
		"likesCount": 900,
		"commentsCount": 42,
		"timestamp": "2024-05-29T08:30:00Z"
	}`)

	post, ok := Normalize(models.PlatformInstagram, raw, "Lifestyle", collectionTime)
	require.True(t, ok)

	assert.Equal(t, models.PlatformInstagram, post.Platform)
	assert.Equal(t, "https://www.instagram.com/p/abc/", post.URL)
	assert.Equal(t, "sunset vibes", post.Text)
	assert.Equal(t, "traveler", post.Author)
	assert.Equal(t, 900, post.Likes)
	assert.Equal(t, 0, post.Shares, "Instagram does not expose share counts")
	assert.Equal(t, 42, post.Comments)
	assert.Equal(t, 0, post.Followers)
}

func TestNormalize_Facebook(t *testing.T) {
	raw := json.RawMessage(`{
		"url": "https://www.facebook.com/post/1",
		"text": "community event",
		"likes": 10,
		"shares": 3,
		"comments": 7,
		"time": "2024-05-28T18:00:00Z",
		"user": {"name": "Jamie"}
	}`)

	post, ok := Normalize(models.PlatformFacebook, raw, "Society", collectionTime)
	require.True(t, ok)

	assert.Equal(t, "https://www.facebook.com/post/1", post.URL)
	assert.Equal(t, "community event", post.Text)
	assert.Equal(t, "Jamie", post.Author)
	assert.Equal(t, 10, post.Likes)
	assert.Equal(t, 3, post.Shares)
	assert.Equal(t, 7, post.Comments)
}

func TestNormalize_Twitter_TweetURLPriority(t *testing.T) {
	// Both fields populated with different values: tweetUrl must win.
	raw := json.RawMessage(`{
		"tweetUrl": "https://twitter.com/user/status/42",
		"url": "https://t.co/shortened",
		"text": "breaking story",
		"likeCount": 300,
		"retweetCount": 120,
		"replyCount": 45,
		"createdAt": "2024-05-31T22:15:00Z",
		"author": {"userName": "reporter", "followers": 120000}
	}`)

	post, ok := Normalize(models.PlatformTwitter, raw, "Politics", collectionTime)
	require.True(t, ok)

	assert.Equal(t, "https://twitter.com/user/status/42", post.URL)
	assert.Equal(t, "breaking story", post.Text)
	assert.Equal(t, "reporter", post.Author)
	assert.Equal(t, 120000, post.Followers)
	assert.Equal(t, 300, post.Likes)
	assert.Equal(t, 120, post.Shares, "retweets map to shares")
	assert.Equal(t, 45, post.Comments, "replies map to comments")
}

func TestNormalize_Twitter_FullTextFallback(t *testing.T) {
	raw := json.RawMessage(`{
		"tweetUrl": "https://twitter.com/user/status/43",
		"fullText": "the long version of the tweet"
	}`)

	post, ok := Normalize(models.PlatformTwitter, raw, "Funny", collectionTime)
	require.True(t, ok)
	assert.Equal(t, "the long version of the tweet", post.Text)
}

func TestNormalize_RSS(t *testing.T) {
	raw := json.RawMessage(`{
		"link": "https://news.example.com/story",
		"title": "Big Story",
		"description": "Something happened today.",
		"author": "Newsroom",
		"pubDate": "Fri, 31 May 2024 09:00:00 +0000"
	}`)

	post, ok := Normalize(models.PlatformRSS, raw, "Entertainment", collectionTime)
	require.True(t, ok)

	assert.Equal(t, "https://news.example.com/story", post.URL)
	assert.Equal(t, "Big Story\n\nSomething happened today.", post.Text)
	assert.Equal(t, "Newsroom", post.Author)
	assert.Equal(t, 0, post.Likes)
	assert.Equal(t, 0, post.Shares)
	assert.Equal(t, 0, post.Comments)
	assert.Equal(t, time.Date(2024, 5, 31, 9, 0, 0, 0, time.UTC), post.Timestamp.UTC())
}

func TestNormalize_MissingFieldsGetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		platform models.Platform
		raw      string
	}{
		{"TikTok minimal", models.PlatformTikTok, `{"webVideoUrl": "https://t.example/min"}`},
		{"Instagram minimal", models.PlatformInstagram, `{"url": "https://i.example/min"}`},
		{"Facebook minimal", models.PlatformFacebook, `{"url": "https://f.example/min"}`},
		{"Twitter minimal", models.PlatformTwitter, `{"tweetUrl": "https://tw.example/min"}`},
		{"RSS minimal", models.PlatformRSS, `{"link": "https://r.example/min"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, ok := Normalize(tt.platform, json.RawMessage(tt.raw), "Funny", collectionTime)
			require.True(t, ok, "minimal record must normalize, never fail")

			assert.NotEmpty(t, post.URL)
			assert.Equal(t, 0, post.Likes)
			assert.Equal(t, 0, post.Shares)
			assert.Equal(t, 0, post.Comments)
			assert.Equal(t, 0, post.Followers)
			assert.Equal(t, "Unknown", post.Author)
			assert.Equal(t, collectionTime, post.Timestamp, "missing timestamp defaults to collection time")
		})
	}
}

func TestNormalize_ClampsNegativeCounts(t *testing.T) {
	// Some actors report -1 for metrics they could not read; counts in the
	// unified schema are never negative.
	tests := []struct {
		name     string
		platform models.Platform
		raw      string
	}{
		{
			"TikTok", models.PlatformTikTok,
			`{"webVideoUrl": "https://t.example/neg", "diggCount": -5, "shareCount": -1, "commentCount": -2, "authorMeta": {"fans": -100}}`,
		},
		{
			"Instagram", models.PlatformInstagram,
			`{"url": "https://i.example/neg", "likesCount": -1, "commentsCount": -2}`,
		},
		{
			"Facebook", models.PlatformFacebook,
			`{"url": "https://f.example/neg", "likes": -1, "shares": -2, "comments": -3}`,
		},
		{
			"Twitter", models.PlatformTwitter,
			`{"tweetUrl": "https://tw.example/neg", "likeCount": -3, "retweetCount": -4, "replyCount": -5, "author": {"followers": -6}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, ok := Normalize(tt.platform, json.RawMessage(tt.raw), "Funny", collectionTime)
			require.True(t, ok)

			assert.Equal(t, 0, post.Likes)
			assert.Equal(t, 0, post.Shares)
			assert.Equal(t, 0, post.Comments)
			assert.Equal(t, 0, post.Followers)
		})
	}
}

func TestNormalize_DropsUnusableRecords(t *testing.T) {
	tests := []struct {
		name     string
		platform models.Platform
		raw      string
	}{
		{"Malformed JSON", models.PlatformTikTok, `{"webVideoUrl": `},
		{"Empty object", models.PlatformTwitter, `{}`},
		{"Whitespace URL", models.PlatformInstagram, `{"url": "   "}`},
		{"Unknown platform", models.Platform("MySpace"), `{"url": "https://x.example"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Normalize(tt.platform, json.RawMessage(tt.raw), "Funny", collectionTime)
			assert.False(t, ok)
		})
	}
}
