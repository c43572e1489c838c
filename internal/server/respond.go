package server

import (
	"encoding/json"
	"net/http"

	"github.com/afrainity/cv-portal/internal/logger"
	log "github.com/sirupsen/logrus"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).
			Errorf("failed to encode JSON response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
