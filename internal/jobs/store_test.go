package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(time.Hour)

	id := store.Create()
	require.NotEmpty(t, id)

	job, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, id, job.ID)
	assert.Equal(t, models.JobProcessing, job.Status)
	assert.Nil(t, job.Result)
}

func TestStore_Complete(t *testing.T) {
	store := NewStore(time.Hour)
	id := store.Create()

	result := []models.Post{{URL: "https://a.example/1", ViralityScore: 42}}
	store.Complete(id, result)

	job, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, models.JobCompleted, job.Status)
	require.Len(t, job.Result, 1)
	assert.Equal(t, 42.0, job.Result[0].ViralityScore)
}

func TestStore_Fail(t *testing.T) {
	store := NewStore(time.Hour)
	id := store.Create()

	store.Fail(id)

	job, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, models.JobFailed, job.Status)
	assert.Nil(t, job.Result)
}

func TestStore_TransitionIsTerminal(t *testing.T) {
	store := NewStore(time.Hour)
	id := store.Create()

	store.Complete(id, []models.Post{{URL: "https://a.example/1"}})
	store.Fail(id) // must be ignored

	job, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, models.JobCompleted, job.Status)
	assert.Len(t, job.Result, 1)
}

func TestStore_UnknownJob(t *testing.T) {
	store := NewStore(time.Hour)

	_, ok := store.Get("nope")
	assert.False(t, ok)

	// Updating an unknown job must not panic or create it.
	store.Complete("nope", nil)
	_, ok = store.Get("nope")
	assert.False(t, ok)
}

func TestStore_TTLEviction(t *testing.T) {
	store := NewStore(time.Millisecond)
	id := store.Create()
	store.Complete(id, nil)

	time.Sleep(5 * time.Millisecond)

	_, ok := store.Get(id)
	assert.False(t, ok, "expired jobs are evicted regardless of terminal state")
}

func TestStore_GetStats(t *testing.T) {
	store := NewStore(time.Hour)

	processing := store.Create()
	completed := store.Create()
	failed := store.Create()
	store.Complete(completed, nil)
	store.Fail(failed)
	_ = processing

	stats := store.GetStats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Processing)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Failed)
}

func TestStore_GetReturnsSnapshot(t *testing.T) {
	store := NewStore(time.Hour)
	id := store.Create()

	before, ok := store.Get(id)
	require.True(t, ok)

	store.Complete(id, []models.Post{{URL: "https://a.example/1"}})

	// The earlier snapshot is unaffected by the transition.
	assert.Equal(t, models.JobProcessing, before.Status)
	assert.Nil(t, before.Result)
}
