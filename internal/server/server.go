package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/afrainity/cv-portal/internal/entities"
	"github.com/afrainity/cv-portal/internal/services"
	"github.com/go-playground/validator/v10"
)

type jobsRepository interface {
	GetActive(ctx context.Context) ([]entities.JobPost, error)
	GetAll(ctx context.Context) ([]entities.JobPost, error)
	GetByID(ctx context.Context, id string) (*entities.JobPost, error)
	Create(ctx context.Context, post entities.JobPost) (string, error)
	Update(ctx context.Context, post entities.JobPost) error
	Remove(ctx context.Context, id string) error
}

type applicationSubmitter interface {
	Submit(ctx context.Context, request services.ApplicationRequest) error
}

type cvReviewer interface {
	GetAll(ctx context.Context) ([]entities.CVAnalysis, error)
	Search(records []entities.CVAnalysis, term string) []entities.CVAnalysis
}

type sessionVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Server exposes the public job board and the session-gated admin surface.
type Server struct {
	jobs       jobsRepository
	submitter  applicationSubmitter
	reviewer   cvReviewer
	aggregator *services.StatsAggregator
	sessions   sessionVerifier
	validate   *validator.Validate
}

func NewServer(jobs jobsRepository, submitter applicationSubmitter, reviewer cvReviewer,
	aggregator *services.StatsAggregator, sessions sessionVerifier) *Server {

	return &Server{
		jobs:       jobs,
		submitter:  submitter,
		reviewer:   reviewer,
		aggregator: aggregator,
		sessions:   sessions,
		validate:   validator.New(),
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/jobs", s.handleListActiveJobs)
	mux.HandleFunc("GET /api/jobs/{id}", s.handleGetActiveJob)
	mux.HandleFunc("POST /api/applications", s.handleSubmitApplication)

	mux.Handle("GET /api/admin/stats", s.sessionGate(s.handleDashboardStats))
	mux.Handle("GET /api/admin/cv-analyses", s.sessionGate(s.handleListCVAnalyses))
	mux.Handle("GET /api/admin/jobs", s.sessionGate(s.handleListAllJobs))
	mux.Handle("POST /api/admin/jobs", s.sessionGate(s.handleCreateJob))
	mux.Handle("GET /api/admin/jobs/{id}", s.sessionGate(s.handleGetJob))
	mux.Handle("PUT /api/admin/jobs/{id}", s.sessionGate(s.handleUpdateJob))
	mux.Handle("DELETE /api/admin/jobs/{id}", s.sessionGate(s.handleDeleteJob))

	return s.loggingMiddleware(mux)
}

// Run serves the router until ctx is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context, port int) error {

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Router(),
	}

	errs := make(chan error, 1)
	go func() {
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
