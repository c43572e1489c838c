package metrics

import (
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	SubmissionsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_applications_submitted_total",
			Help: "Total number of applications forwarded to the intake endpoint.",
		},
	)
	SubmissionFailuresCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_applications_failed_total",
			Help: "Total number of application submissions that failed.",
		},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "Duration of handled HTTP requests in seconds.",
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 5},
		},
		[]string{"route"},
	)
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(SubmissionsCounter)
	prometheus.MustRegister(SubmissionFailuresCounter)
	prometheus.MustRegister(RequestDuration)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), mux))
	}()
}
