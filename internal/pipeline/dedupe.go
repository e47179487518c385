package pipeline

import (
	"strings"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
)

// Deduplicate removes posts sharing a canonical URL, keeping the first
// occurrence and preserving order. Comparison is exact string after trimming
// surrounding whitespace; query parameters and protocol are not normalized,
// which is a known limitation accepted for simplicity.
func Deduplicate(posts []models.Post) []models.Post {
	seen := make(map[string]struct{}, len(posts))
	unique := make([]models.Post, 0, len(posts))

	for _, post := range posts {
		key := strings.TrimSpace(post.URL)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, post)
	}

	return unique
}
