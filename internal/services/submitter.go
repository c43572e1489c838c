package services

import (
	"context"
	"fmt"
	"github.com/afrainity/cv-portal/internal/clients/intake"
	"github.com/afrainity/cv-portal/internal/entities"
	"github.com/afrainity/cv-portal/internal/events"
	"github.com/afrainity/cv-portal/internal/logger"
	"github.com/afrainity/cv-portal/internal/metrics"
	"github.com/asaskevich/EventBus"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrValidation marks locally rejected input; nothing was sent anywhere.
var ErrValidation = errors.New("invalid application")

type jobReader interface {
	GetByID(ctx context.Context, id string) (*entities.JobPost, error)
}

type intakeSender interface {
	Send(ctx context.Context, payload intake.Payload) error
}

// ApplicationRequest is one visitor's application form as received.
type ApplicationRequest struct {
	Name       string `validate:"required"`
	Email      string `validate:"required,email"`
	JobID      string `validate:"required"`
	CVFileName string
	CV         io.Reader
}

// ApplicationSubmitter forwards applications to the external intake endpoint.
// The payload exists only for the duration of one outbound request; nothing
// is retained locally after a successful send.
type ApplicationSubmitter struct {
	bus      EventBus.Bus
	jobs     jobReader
	sender   intakeSender
	formMode string
	validate *validator.Validate
}

func NewApplicationSubmitter(bus EventBus.Bus, jobs jobReader, sender intakeSender, formMode string) *ApplicationSubmitter {
	return &ApplicationSubmitter{
		bus:      bus,
		jobs:     jobs,
		sender:   sender,
		formMode: formMode,
		validate: validator.New(),
	}
}

func (s *ApplicationSubmitter) Submit(ctx context.Context, request ApplicationRequest) error {

	if err := s.validate.Struct(request); err != nil {
		return fmt.Errorf("%w: please fill in all fields and upload your CV", ErrValidation)
	}
	if request.CV == nil {
		return fmt.Errorf("%w: please fill in all fields and upload your CV", ErrValidation)
	}

	payload := intake.Payload{
		Name:        request.Name,
		Email:       request.Email,
		CVFileName:  request.CVFileName,
		CV:          request.CV,
		JobID:       request.JobID,
		SubmittedAt: time.Now(),
		FormMode:    s.formMode,
	}

	// The snapshot is taken at submit time so a previously viewed posting can
	// never leak into the payload. A missing posting leaves the snapshot
	// fields empty instead of blocking the send.
	job, err := s.jobs.GetByID(ctx, request.JobID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Warnf("couldn't snapshot job %v for application: %v", request.JobID, err)
	} else {
		payload.JobTitle = job.Title
		payload.JobLocation = job.Location
		payload.JobDepartment = job.Department
		payload.JobType = job.Type
		payload.JobDescription = job.Description
		payload.JobRequirements = job.Requirements
		payload.JobBenefits = job.Benefits
	}

	if err := s.sender.Send(ctx, payload); err != nil {
		metrics.SubmissionFailuresCounter.Inc()
		return err
	}

	metrics.SubmissionsCounter.Inc()
	s.bus.Publish(events.ApplicationSubmittedTopic, events.ApplicationSubmitted{
		Name:        payload.Name,
		Email:       payload.Email,
		JobID:       payload.JobID,
		JobTitle:    payload.JobTitle,
		SubmittedAt: payload.SubmittedAt,
	})

	return nil
}
