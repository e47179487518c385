// Package categories maps editorial content categories to the
// platform-specific hashtags, keywords and RSS feeds used to scrape them.
package categories

import "github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"

var categoryHashtags = map[string]map[models.Platform][]string{
	"Funny": {
		models.PlatformTikTok:    {"fyp", "funny", "comedy", "memes", "foryou"},
		models.PlatformInstagram: {"funny", "memes", "comedy", "lol", "funnyvideos"},
		models.PlatformTwitter:   {"funny", "memes", "comedy", "viral", "lol"},
		models.PlatformFacebook:  {"funny", "comedy", "memes"},
	},
	"Animals": {
		models.PlatformTikTok:    {"animals", "cute", "pets", "dogs", "cats"},
		models.PlatformInstagram: {"animals", "cute", "petsofinstagram", "dogsofinstagram", "catsofinstagram"},
		models.PlatformTwitter:   {"animals", "pets", "cute animals", "wildlife"},
		models.PlatformFacebook:  {"animals", "pets", "wildlife"},
	},
	"Relationships": {
		models.PlatformTikTok:    {"relationships", "dating", "marriage", "storytime"},
		models.PlatformInstagram: {"relationships", "relationshipgoals", "dating", "marriage"},
		models.PlatformTwitter:   {"relationships", "dating", "AITA", "relationship advice"},
		models.PlatformFacebook:  {"relationships", "family", "marriage"},
	},
	"Art & Design": {
		models.PlatformTikTok:    {"art", "design", "creative", "artist"},
		models.PlatformInstagram: {"art", "design", "artwork", "creativity", "artistsoninstagram"},
		models.PlatformTwitter:   {"art", "design", "creative", "artist"},
		models.PlatformFacebook:  {"art", "design", "creative"},
	},
	"Entertainment": {
		models.PlatformTikTok:    {"entertainment", "celebrity", "movies", "tv"},
		models.PlatformInstagram: {"entertainment", "celebrity", "movies", "tvshows"},
		models.PlatformTwitter:   {"entertainment", "celebrity news", "movies", "TV"},
		models.PlatformFacebook:  {"entertainment", "celebrity", "movies"},
	},
	"Curiosities": {
		models.PlatformTikTok:    {"interesting", "didyouknow", "facts", "todayilearned"},
		models.PlatformInstagram: {"interesting", "facts", "knowledge", "didyouknow"},
		models.PlatformTwitter:   {"interesting", "TIL", "facts", "mind blown"},
		models.PlatformFacebook:  {"interesting", "facts", "curiosities"},
	},
	"Lifestyle": {
		models.PlatformTikTok:    {"lifestyle", "lifehacks", "wellness", "selfcare"},
		models.PlatformInstagram: {"lifestyle", "wellness", "selfcare", "lifestyleblogger"},
		models.PlatformTwitter:   {"lifestyle", "wellness", "life tips"},
		models.PlatformFacebook:  {"lifestyle", "wellness", "life tips"},
	},
	"Society": {
		models.PlatformTikTok:    {"society", "social", "community", "awareness"},
		models.PlatformInstagram: {"society", "social", "community", "socialissues"},
		models.PlatformTwitter:   {"society", "social issues", "community"},
		models.PlatformFacebook:  {"society", "social issues", "community"},
	},
	"Entertainment News": {
		models.PlatformTikTok:    {"celebritynews", "gossip", "hollywood"},
		models.PlatformInstagram: {"celebritynews", "gossip", "enews"},
		models.PlatformTwitter:   {"celebrity news", "Hollywood gossip", "entertainment news"},
		models.PlatformFacebook:  {"celebrity news", "entertainment news"},
	},
	"Politics": {
		models.PlatformTikTok:    {"politics", "news", "political"},
		models.PlatformInstagram: {"politics", "political", "news"},
		models.PlatformTwitter:   {"politics", "political news", "breaking news"},
		models.PlatformFacebook:  {"politics", "political news"},
	},
}

var rssFeeds = map[string][]string{
	"Funny":         {"https://www.reddit.com/r/funny/.rss"},
	"Animals":       {"https://www.reddit.com/r/aww/.rss"},
	"Relationships": {"https://www.reddit.com/r/relationships/.rss"},
	"Art & Design":  {"https://www.reddit.com/r/Art/.rss"},
	"Entertainment": {"https://rss.nytimes.com/services/xml/rss/nyt/Movies.xml"},
	"Curiosities":   {"https://www.reddit.com/r/todayilearned/.rss"},
	"Lifestyle":     {"https://www.reddit.com/r/LifeProTips/.rss"},
	"Society":       {"https://www.reddit.com/r/news/.rss"},
	"Entertainment News": {
		"https://rss.nytimes.com/services/xml/rss/nyt/Movies.xml",
	},
	"Politics": {"https://rss.nytimes.com/services/xml/rss/nyt/Politics.xml"},
}

// All returns the recognized categories in a stable order.
func All() []string {
	return []string{
		"Funny",
		"Animals",
		"Relationships",
		"Art & Design",
		"Entertainment",
		"Curiosities",
		"Lifestyle",
		"Society",
		"Entertainment News",
		"Politics",
	}
}

// Valid reports whether the category is one of the recognized ten.
func Valid(category string) bool {
	_, ok := categoryHashtags[category]
	return ok
}

// Hashtags returns the hashtags or keywords to search a platform with for the
// given category. Unknown categories fall back to generic viral tags.
func Hashtags(category string, platform models.Platform) []string {
	byPlatform, ok := categoryHashtags[category]
	if !ok {
		return []string{"viral", "trending", "fyp"}
	}
	return byPlatform[platform]
}

// RSSFeeds returns the feed URLs configured for the category.
func RSSFeeds(category string) []string {
	return rssFeeds[category]
}
