package server

import (
	"net/http"

	"github.com/afrainity/cv-portal/internal/entities"
	"github.com/afrainity/cv-portal/internal/logger"
	"github.com/afrainity/cv-portal/internal/services"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type cvAnalysisResponse struct {
	entities.CVAnalysis
	RatingBand  entities.RatingBand `json:"ratingBand"`
	RatingLabel string              `json:"ratingLabel"`
}

type dashboardResponse struct {
	Stats    services.DashboardStats `json:"stats"`
	JobStats []entities.JobStats     `json:"jobStats"`
	Scale    int                     `json:"ratingScale"`
}

func (s *Server) handleListCVAnalyses(w http.ResponseWriter, r *http.Request) {

	records, err := s.reviewer.GetAll(r.Context())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("couldn't fetch cv analyses: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to load CV data")
		return
	}

	records = s.reviewer.Search(records, r.URL.Query().Get("search"))

	scale := s.aggregator.Scale()
	response := lo.Map(records, func(record entities.CVAnalysis, _ int) cvAnalysisResponse {
		return cvAnalysisResponse{
			CVAnalysis:  record,
			RatingBand:  scale.Band(record.Rating),
			RatingLabel: scale.Label(record.Rating),
		}
	})
	s.respondJSON(w, http.StatusOK, response)
}

// handleDashboardStats serves the admin landing page: summary counters plus
// per-job aggregates, largest group first.
func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {

	records, err := s.reviewer.GetAll(r.Context())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("couldn't fetch cv analyses: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to load dashboard stats")
		return
	}

	jobs, err := s.jobs.GetAll(r.Context())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("couldn't fetch job posts: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to load dashboard stats")
		return
	}

	s.respondJSON(w, http.StatusOK, dashboardResponse{
		Stats:    s.aggregator.Dashboard(records, len(jobs)),
		JobStats: s.aggregator.JobStats(records),
		Scale:    s.aggregator.Scale().Max,
	})
}
