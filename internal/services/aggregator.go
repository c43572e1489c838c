package services

import (
	"github.com/afrainity/cv-portal/internal/entities"
	"github.com/samber/lo"
	"sort"
)

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TotalCVs     int `json:"totalCVs"`
	HighRatedCVs int `json:"highRatedCVs"`
	TotalJobs    int `json:"totalJobs"`
}

// StatsAggregator derives per-job aggregates from CV analysis snapshots. All
// results are recomputed per call and held only by the requesting view.
type StatsAggregator struct {
	scale entities.RatingScale
}

func NewStatsAggregator(scale entities.RatingScale) *StatsAggregator {
	return &StatsAggregator{scale: scale}
}

func (a *StatsAggregator) Scale() entities.RatingScale {
	return a.scale
}

// JobStats groups records by job, averages ratings per group and orders the
// groups by application count descending. The first group is the default
// chart selection.
func (a *StatsAggregator) JobStats(records []entities.CVAnalysis) []entities.JobStats {

	groups := lo.GroupBy(records, func(record entities.CVAnalysis) string {
		if record.JobApplied == "" {
			return entities.UnknownJobKey
		}
		return record.JobApplied
	})

	stats := make([]entities.JobStats, 0, len(groups))
	for jobID, group := range groups {
		points := lo.Map(group, func(record entities.CVAnalysis, _ int) entities.RatingPoint {
			return entities.RatingPoint{Rating: record.Rating, Date: record.RecordedAt}
		})
		sort.Slice(points, func(i, j int) bool {
			return points[i].Date.Before(points[j].Date)
		})

		stats = append(stats, entities.JobStats{
			JobID:         jobID,
			JobTitle:      group[0].JobTitle,
			Points:        points,
			AverageRating: averageRating(group),
			Applications:  len(group),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Applications > stats[j].Applications
	})
	return stats
}

// Dashboard computes the summary counters shown on the admin landing page.
func (a *StatsAggregator) Dashboard(records []entities.CVAnalysis, totalJobs int) DashboardStats {

	highRated := lo.CountBy(records, func(record entities.CVAnalysis) bool {
		return a.scale.IsHigh(record.Rating)
	})

	return DashboardStats{
		TotalCVs:     len(records),
		HighRatedCVs: highRated,
		TotalJobs:    totalJobs,
	}
}

// Band classifies a rating for display using the configured scale.
func (a *StatsAggregator) Band(rating int) entities.RatingBand {
	return a.scale.Band(rating)
}

func averageRating(records []entities.CVAnalysis) float64 {
	if len(records) == 0 {
		return 0
	}

	sum := lo.SumBy(records, func(record entities.CVAnalysis) int {
		return record.Rating
	})
	return float64(sum) / float64(len(records))
}
