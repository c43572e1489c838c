package entities

import (
	"errors"
	"time"
)

type JobStatus string

const (
	StatusDraft  JobStatus = "Draft"
	StatusActive JobStatus = "Active"
	StatusClosed JobStatus = "Closed"
)

func ToJobStatus(s string) (JobStatus, error) {
	switch s {
	case string(StatusDraft):
		return StatusDraft, nil
	case string(StatusActive):
		return StatusActive, nil
	case string(StatusClosed):
		return StatusClosed, nil
	default:
		return "", errors.New("invalid job status")
	}
}

// JobPost is a job posting. Only posts with StatusActive are eligible for
// public listing and application.
type JobPost struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Title        string    `json:"title"`
	Location     string    `json:"location"`
	Department   string    `json:"department"`
	Type         string    `json:"type"`
	Status       JobStatus `json:"status"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Benefits     string    `json:"benefits"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (JobPost) TableName() string {
	return "job_posts"
}

func (j JobPost) IsActive() bool {
	return j.Status == StatusActive
}
