package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/afrainity/cv-portal/internal/logger"
	"github.com/afrainity/cv-portal/internal/metrics"
	log "github.com/sirupsen/logrus"
)

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		route := r.Pattern
		if route == "" {
			route = r.URL.Path
		}
		metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		log.Debugf("%s %s from %s took %v", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	})
}

// sessionGate restricts a route to authenticated administrators. There is no
// role model beyond authenticated-or-not.
func (s *Server) sessionGate(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		token := bearerToken(r)
		if token == "" {
			s.respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		subject, err := s.sessions.Verify(r.Context(), token)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeIdentity).
				Warnf("rejected admin request to %s: %v", r.URL.Path, err)
			s.respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		log.Debugf("admin request by %s: %s %s", subject, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
