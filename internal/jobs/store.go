// Package jobs holds the in-memory, TTL-bounded store of scraping jobs that
// the HTTP layer polls. Records are replaced wholesale on each transition so
// a concurrent reader sees either the processing or the fully completed job,
// never a torn result list.
package jobs

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
)

// Store is a process-lifetime job cache. Jobs expire a fixed TTL after
// creation regardless of terminal state.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*models.Job
	ttl  time.Duration
}

// Stats summarizes the store for the health endpoint.
type Stats struct {
	Total      int `json:"total_jobs"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}

// NewStore creates a job store with the given time-to-live.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		jobs: make(map[string]*models.Job),
		ttl:  ttl,
	}
}

// Create registers a new processing job and returns its ID.
func (s *Store) Create() string {
	id := uuid.NewString()
	job := &models.Job{
		ID:        id,
		Status:    models.JobProcessing,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sweepLocked()
	s.jobs[id] = job
	s.mu.Unlock()

	logrus.Infof("Created job %s", id)
	return id
}

// Complete transitions the job to its completed state with the final result.
// The record is replaced as a whole; the result slice is owned by the store
// from here on.
func (s *Store) Complete(id string, result []models.Post) {
	s.transition(id, models.JobCompleted, result)
}

// Fail transitions the job to its failed state.
func (s *Store) Fail(id string) {
	s.transition(id, models.JobFailed, nil)
}

func (s *Store) transition(id string, status models.JobStatus, result []models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.jobs[id]
	if !ok {
		logrus.Warnf("Attempted to update unknown job %s", id)
		return
	}
	if existing.Status != models.JobProcessing {
		logrus.Warnf("Job %s already terminal (%s), ignoring transition to %s", id, existing.Status, status)
		return
	}

	s.jobs[id] = &models.Job{
		ID:        existing.ID,
		Status:    status,
		CreatedAt: existing.CreatedAt,
		Result:    result,
	}
	logrus.Infof("Job %s transitioned to %s with %d results", id, status, len(result))
}

// Get returns a snapshot of the job, or false when unknown or expired.
func (s *Store) Get(id string) (models.Job, bool) {
	s.mu.Lock()
	s.sweepLocked()
	job, ok := s.jobs[id]
	s.mu.Unlock()

	if !ok {
		return models.Job{}, false
	}
	return *job, true
}

// GetStats reports current store contents.
func (s *Store) GetStats() Stats {
	s.mu.Lock()
	s.sweepLocked()
	defer s.mu.Unlock()

	stats := Stats{Total: len(s.jobs)}
	for _, job := range s.jobs {
		switch job.Status {
		case models.JobProcessing:
			stats.Processing++
		case models.JobCompleted:
			stats.Completed++
		case models.JobFailed:
			stats.Failed++
		}
	}
	return stats
}

func (s *Store) sweepLocked() {
	now := time.Now()
	expired := 0
	for id, job := range s.jobs {
		if now.Sub(job.CreatedAt) > s.ttl {
			delete(s.jobs, id)
			expired++
		}
	}
	if expired > 0 {
		logrus.Infof("Evicted %d expired jobs", expired)
	}
}
