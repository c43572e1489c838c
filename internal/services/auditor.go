package services

import (
	"github.com/afrainity/cv-portal/internal/events"
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

// SubmissionAuditor writes an audit line for every accepted application so
// forwarded submissions stay traceable even though nothing is persisted
// locally.
type SubmissionAuditor struct {
	bus EventBus.Bus
}

func NewSubmissionAuditor(bus EventBus.Bus) (*SubmissionAuditor, error) {
	a := &SubmissionAuditor{bus: bus}
	if err := bus.Subscribe(events.ApplicationSubmittedTopic, a.onApplicationSubmitted); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *SubmissionAuditor) Stop() {
	_ = a.bus.Unsubscribe(events.ApplicationSubmittedTopic, a.onApplicationSubmitted)
}

func (a *SubmissionAuditor) onApplicationSubmitted(event events.ApplicationSubmitted) {
	log.WithFields(log.Fields{
		"email":    event.Email,
		"jobID":    event.JobID,
		"jobTitle": event.JobTitle,
	}).Infof("application forwarded to intake at %v", event.SubmittedAt)
}
