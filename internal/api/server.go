// Package api exposes the job-based scraping HTTP surface.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/categories"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/jobs"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/pipeline"
)

// Server wires the pipeline and job store to the HTTP endpoints.
type Server struct {
	pipe  *pipeline.Pipeline
	store *jobs.Store
}

// NewServer creates the HTTP layer over a pipeline and job store.
func NewServer(pipe *pipeline.Pipeline, store *jobs.Store) *Server {
	return &Server{pipe: pipe, store: store}
}

// Router builds the mux router with all endpoints registered.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/config", s.handleConfig).Methods("GET")
	router.HandleFunc("/metrics", s.handleMetrics).Methods("GET")
	router.HandleFunc("/scrape", s.handleScrape).Methods("POST")
	router.HandleFunc("/results/{job_id}", s.handleResults).Methods("GET")
	return router
}

type scrapeRequest struct {
	Categories []string `json:"categories"`
	Sources    []string `json:"sources"`
	DaysBack   int      `json:"days_back"`
}

type scrapeResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type resultsResponse struct {
	Status     models.JobStatus `json:"status"`
	TotalFound int              `json:"total_found"`
	TopStories []models.Post    `json:"top_stories"`
	JobID      string           `json:"job_id"`
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Categories) == 0 || len(req.Sources) == 0 {
		writeError(w, http.StatusBadRequest, "categories and sources are required")
		return
	}
	if req.DaysBack == 0 {
		req.DaysBack = 7
	}
	if req.DaysBack < 1 || req.DaysBack > 30 {
		writeError(w, http.StatusBadRequest, "days_back must be between 1 and 30")
		return
	}

	for _, category := range req.Categories {
		if !categories.Valid(category) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid category: %s", category))
			return
		}
	}

	platforms := make([]models.Platform, 0, len(req.Sources))
	for _, source := range req.Sources {
		platform := models.Platform(source)
		if !platform.Valid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid source: %s", source))
			return
		}
		platforms = append(platforms, platform)
	}

	jobID := s.store.Create()
	pipeReq := pipeline.Request{
		Categories: req.Categories,
		Platforms:  platforms,
		DaysBack:   req.DaysBack,
	}

	// The job runs to natural completion; the HTTP request does not carry
	// its lifetime.
	go s.runJob(jobID, pipeReq)

	logrus.Infof("Accepted job %s: %d categories, %d sources", jobID, len(req.Categories), len(platforms))
	writeJSON(w, http.StatusAccepted, scrapeResponse{
		JobID:  jobID,
		Status: string(models.JobProcessing),
		Message: fmt.Sprintf("Scraping %d categories from %d sources",
			len(req.Categories), len(platforms)),
	})
}

func (s *Server) runJob(jobID string, req pipeline.Request) {
	result, err := s.pipe.Run(context.Background(), req)
	if err != nil {
		logrus.Errorf("Job %s failed: %v", jobID, err)
		s.store.Fail(jobID)
		return
	}
	s.store.Complete(jobID, result)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["job_id"]

	job, ok := s.store.Get(jobID)
	if !ok {
		writeError(w, http.StatusNotFound, "job not found or expired")
		return
	}

	stories := job.Result
	if stories == nil {
		stories = []models.Post{}
	}
	writeJSON(w, http.StatusOK, resultsResponse{
		Status:     job.Status,
		TotalFound: len(stories),
		TopStories: stories,
		JobID:      job.ID,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "boredpanda-content-sourcing",
		"timestamp": time.Now().Format(time.RFC3339),
		"job_stats": s.store.GetStats(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	sources := make([]string, 0, len(models.AllPlatforms()))
	for _, platform := range models.AllPlatforms() {
		sources = append(sources, string(platform))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories.All(),
		"sources":    sources,
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.pipe.GetMetrics()))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
