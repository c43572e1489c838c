package server

import (
	"net/http"

	"github.com/afrainity/cv-portal/internal/clients/intake"
	"github.com/afrainity/cv-portal/internal/logger"
	"github.com/afrainity/cv-portal/internal/services"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Applicants send up to a 10MB CV by convention; the form cap leaves headroom
// for the other fields.
const maxApplicationFormSize = 12 << 20

func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseMultipartForm(maxApplicationFormSize); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	request := services.ApplicationRequest{
		Name:  r.FormValue("name"),
		Email: r.FormValue("email"),
		JobID: r.FormValue("jobId"),
	}

	file, header, err := r.FormFile("cv")
	if err == nil {
		defer file.Close()
		request.CV = file
		request.CVFileName = header.Filename
	}

	if err := s.submitter.Submit(r.Context(), request); err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			s.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, intake.ErrSubmission):
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeIntake).
				Errorf("application submission failed: %v", err)
			s.respondError(w, http.StatusBadGateway, "failed to submit application")
		default:
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeIntake).
				Errorf("application submission failed: %v", err)
			s.respondError(w, http.StatusInternalServerError, "failed to submit application")
		}
		return
	}

	s.respondJSON(w, http.StatusAccepted, map[string]string{"status": "submitted"})
}
