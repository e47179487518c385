package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
)

func TestDeduplicate_FirstOccurrenceWins(t *testing.T) {
	posts := []models.Post{
		{URL: "https://a.example/1", Text: "first"},
		{URL: "https://a.example/2", Text: "second"},
		{URL: "https://a.example/1", Text: "duplicate of first"},
		{URL: "https://a.example/3", Text: "third"},
	}

	unique := Deduplicate(posts)

	assert.Len(t, unique, 3)
	assert.Equal(t, "first", unique[0].Text, "first occurrence must survive")
	assert.Equal(t, "second", unique[1].Text)
	assert.Equal(t, "third", unique[2].Text)
}

func TestDeduplicate_TrimsSurroundingWhitespace(t *testing.T) {
	posts := []models.Post{
		{URL: "https://a.example/1", Text: "original"},
		{URL: "  https://a.example/1  ", Text: "padded duplicate"},
	}

	unique := Deduplicate(posts)

	assert.Len(t, unique, 1)
	assert.Equal(t, "original", unique[0].Text)
}

func TestDeduplicate_Idempotent(t *testing.T) {
	posts := []models.Post{
		{URL: "https://a.example/1"},
		{URL: "https://a.example/2"},
		{URL: "https://a.example/1"},
	}

	once := Deduplicate(posts)
	twice := Deduplicate(once)

	assert.Equal(t, once, twice)
}

func TestDeduplicate_Empty(t *testing.T) {
	assert.Empty(t, Deduplicate(nil))
}
