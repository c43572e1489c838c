package services

import (
	"context"
	"github.com/afrainity/cv-portal/internal/config"
	"github.com/afrainity/cv-portal/internal/entities"
	"github.com/afrainity/cv-portal/internal/logger"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"strings"
)

const (
	unknownPositionTitle = "Unknown Position"
	notSpecifiedTitle    = "Not specified"
)

type cvRecordsRepository interface {
	GetAll(ctx context.Context) ([]entities.CVAnalysis, error)
}

type jobTitleSource interface {
	Titles(ctx context.Context) (map[string]string, error)
}

// CVReviewer reads externally produced CV analyses for the admin screens.
// Depending on the dataset, the stored job reference is either a posting id
// (resolved through the job-posts collection) or already the human-readable
// title; the configured resolution mode decides which.
type CVReviewer struct {
	records cvRecordsRepository
	titles  jobTitleSource
	cfg     config.ReviewConfig
}

func NewCVReviewer(records cvRecordsRepository, titles jobTitleSource, cfg config.ReviewConfig) *CVReviewer {
	return &CVReviewer{records: records, titles: titles, cfg: cfg}
}

// GetAll returns all analysis records, newest first, with job titles resolved.
func (r *CVReviewer) GetAll(ctx context.Context) ([]entities.CVAnalysis, error) {

	records, err := r.records.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if r.cfg.TitleResolution == config.LiteralField {
		for i := range records {
			records[i].JobTitle = literalTitle(records[i].JobApplied)
		}
		return records, nil
	}

	titles, err := r.titles.Titles(ctx)
	if err != nil {
		// A failed join degrades titles, not the whole screen.
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("couldn't fetch job titles: %v", err)
		titles = map[string]string{}
	}

	for i := range records {
		records[i].JobTitle = resolvedTitle(records[i].JobApplied, titles)
	}
	return records, nil
}

// Search filters records by a case-insensitive substring over name, email,
// skills, city and resolved job title. It runs against the full in-memory
// set, matching the original per-keystroke behavior.
func (r *CVReviewer) Search(records []entities.CVAnalysis, term string) []entities.CVAnalysis {

	if term == "" {
		return records
	}

	needle := strings.ToLower(term)
	return lo.Filter(records, func(record entities.CVAnalysis, _ int) bool {
		searchable := strings.ToLower(strings.Join([]string{
			record.Name, record.Email, record.Skills, record.City, record.JobTitle,
		}, " "))
		return strings.Contains(searchable, needle)
	})
}

func literalTitle(jobApplied string) string {
	if jobApplied == "" {
		return notSpecifiedTitle
	}
	return jobApplied
}

func resolvedTitle(jobApplied string, titles map[string]string) string {
	if jobApplied == "" {
		return notSpecifiedTitle
	}
	if title, ok := titles[jobApplied]; ok && title != "" {
		return title
	}
	return unknownPositionTitle
}
