package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/jobs"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/pipeline"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/scrapers"
)

// stubSource returns one well-formed Facebook record per fetch.
type stubSource struct {
	platform models.Platform
	err      error
}

func (s *stubSource) Platform() models.Platform { return s.platform }
func (s *stubSource) IsEnabled() bool           { return true }
func (s *stubSource) Fetch(ctx context.Context, category string, daysBack, limit int) ([]json.RawMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []json.RawMessage{
		json.RawMessage(`{"url": "https://facebook.example/1", "text": "a story the whole team will love", "likes": 120}`),
	}, nil
}

func newTestServer(srcErr error) (*Server, *jobs.Store) {
	pipe := pipeline.New(
		[]scrapers.Source{&stubSource{platform: models.PlatformFacebook, err: srcErr}},
		nil,
		pipeline.Options{},
	)
	store := jobs.NewStore(time.Hour)
	return NewServer(pipe, store), store
}

func postScrape(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/scrape", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleScrape_Accepted(t *testing.T) {
	server, store := newTestServer(nil)

	rec := postScrape(t, server, `{"categories": ["Funny"], "sources": ["Facebook"], "days_back": 7}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp scrapeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "processing", resp.Status)
	require.NotEmpty(t, resp.JobID)

	job := pollTerminal(t, store, resp.JobID)
	assert.Equal(t, models.JobCompleted, job.Status)
	require.Len(t, job.Result, 1)
	assert.Equal(t, "https://facebook.example/1", job.Result[0].URL)
}

func TestHandleScrape_FailedJob(t *testing.T) {
	server, store := newTestServer(fmt.Errorf("vendor down"))

	rec := postScrape(t, server, `{"categories": ["Funny"], "sources": ["Facebook"]}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp scrapeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	job := pollTerminal(t, store, resp.JobID)
	assert.Equal(t, models.JobFailed, job.Status)
	assert.Empty(t, job.Result)
}

func TestHandleScrape_Validation(t *testing.T) {
	server, _ := newTestServer(nil)

	tests := []struct {
		name string
		body string
	}{
		{"Invalid category", `{"categories": ["Gardening"], "sources": ["Facebook"]}`},
		{"Invalid source", `{"categories": ["Funny"], "sources": ["MySpace"]}`},
		{"Missing categories", `{"sources": ["Facebook"]}`},
		{"Missing sources", `{"categories": ["Funny"]}`},
		{"Days back too large", `{"categories": ["Funny"], "sources": ["Facebook"], "days_back": 31}`},
		{"Malformed body", `{"categories": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postScrape(t, server, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleResults_NotFound(t *testing.T) {
	server, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/results/unknown-id", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleResults_Completed(t *testing.T) {
	server, store := newTestServer(nil)
	id := store.Create()
	store.Complete(id, []models.Post{{URL: "https://facebook.example/1", ViralityScore: 33}})

	req := httptest.NewRequest(http.MethodGet, "/results/"+id, nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp resultsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.JobCompleted, resp.Status)
	assert.Equal(t, 1, resp.TotalFound)
	assert.Equal(t, id, resp.JobID)
}

func TestHandleConfig(t *testing.T) {
	server, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/config", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Categories []string `json:"categories"`
		Sources    []string `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Categories, 10)
	assert.Len(t, resp.Sources, 5)
	assert.Contains(t, resp.Sources, "TikTok")
}

func TestHandleHealth(t *testing.T) {
	server, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

// pollTerminal waits for the background job goroutine to finish.
func pollTerminal(t *testing.T, store *jobs.Store, id string) models.Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, ok := store.Get(id)
		require.True(t, ok)
		if job.Status != models.JobProcessing {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s never reached a terminal state", id)
	return models.Job{}
}
