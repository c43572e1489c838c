package entities

import "time"

// UnknownJobKey groups CV records whose job reference is absent.
const UnknownJobKey = "unknown"

type RatingPoint struct {
	Rating int       `json:"rating"`
	Date   time.Time `json:"date"`
}

// JobStats is the per-job aggregate derived from CVAnalysis records. It is
// recomputed on every view load and never persisted.
type JobStats struct {
	JobID         string        `json:"jobId"`
	JobTitle      string        `json:"jobTitle"`
	Points        []RatingPoint `json:"points"`
	AverageRating float64       `json:"averageRating"`
	Applications  int           `json:"applications"`
}
