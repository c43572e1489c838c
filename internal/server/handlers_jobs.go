package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/afrainity/cv-portal/internal/entities"
	"github.com/afrainity/cv-portal/internal/logger"
	"github.com/afrainity/cv-portal/internal/repositories"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type jobPostInput struct {
	Title        string `json:"title" validate:"required"`
	Location     string `json:"location" validate:"required"`
	Department   string `json:"department"`
	Type         string `json:"type" validate:"required"`
	Status       string `json:"status"`
	Description  string `json:"description" validate:"required"`
	Requirements string `json:"requirements"`
	Benefits     string `json:"benefits"`
}

func (in jobPostInput) toEntity() (entities.JobPost, error) {

	status := entities.StatusDraft
	if in.Status != "" {
		var err error
		if status, err = entities.ToJobStatus(in.Status); err != nil {
			return entities.JobPost{}, err
		}
	}

	return entities.JobPost{
		Title:        in.Title,
		Location:     in.Location,
		Department:   in.Department,
		Type:         in.Type,
		Status:       status,
		Description:  in.Description,
		Requirements: in.Requirements,
		Benefits:     in.Benefits,
	}, nil
}

func (s *Server) handleListActiveJobs(w http.ResponseWriter, r *http.Request) {

	jobs, err := s.jobs.GetActive(r.Context())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("couldn't fetch active jobs: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to load job posts")
		return
	}
	s.respondJSON(w, http.StatusOK, jobs)
}

// handleGetActiveJob backs the application form's job pre-selection. Only
// active posts are visible here; anything else reads as not found.
func (s *Server) handleGetActiveJob(w http.ResponseWriter, r *http.Request) {

	job, err := s.jobs.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "job post not found")
			return
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("couldn't fetch job post: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to load job post")
		return
	}

	if !job.IsActive() {
		s.respondError(w, http.StatusNotFound, "job post not found")
		return
	}
	s.respondJSON(w, http.StatusOK, job)
}

func (s *Server) handleListAllJobs(w http.ResponseWriter, r *http.Request) {

	jobs, err := s.jobs.GetAll(r.Context())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("couldn't fetch job posts: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to load job posts")
		return
	}

	if term := r.URL.Query().Get("search"); term != "" {
		needle := strings.ToLower(term)
		jobs = lo.Filter(jobs, func(job entities.JobPost, _ int) bool {
			searchable := strings.ToLower(job.Title + " " + job.Location + " " + job.Department)
			return strings.Contains(searchable, needle)
		})
	}
	s.respondJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {

	job, err := s.jobs.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "job post not found")
			return
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("couldn't fetch job post: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to load job post")
		return
	}
	s.respondJSON(w, http.StatusOK, job)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {

	post, ok := s.decodeJobInput(w, r)
	if !ok {
		return
	}

	id, err := s.jobs.Create(r.Context(), post)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("couldn't create job post: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to create job post")
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {

	post, ok := s.decodeJobInput(w, r)
	if !ok {
		return
	}
	post.ID = r.PathValue("id")

	err := s.jobs.Update(r.Context(), post)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "job post not found")
			return
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("couldn't update job post: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to update job post")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// handleDeleteJob removes a post permanently. Deleting an already removed id
// still reports success, matching how the admin screen drops rows locally.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {

	if err := s.jobs.Remove(r.Context(), r.PathValue("id")); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("couldn't delete job post: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to delete job post")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) decodeJobInput(w http.ResponseWriter, r *http.Request) (entities.JobPost, bool) {

	var input jobPostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return entities.JobPost{}, false
	}

	if err := s.validate.Struct(input); err != nil {
		s.respondError(w, http.StatusBadRequest, "please fill in all required fields")
		return entities.JobPost{}, false
	}

	post, err := input.toEntity()
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return entities.JobPost{}, false
	}
	return post, true
}
