package entities

import "time"

// CVAnalysis is one externally-produced CV review. The analysis service owns
// these records; this system only reads them. Loose store values (string
// votes, absent fields) are normalized by the repository before a record
// reaches this type.
type CVAnalysis struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	City          string    `json:"city"`
	DateOfBirth   string    `json:"dateOfBirth"`
	Skills        string    `json:"skills"`
	Education     string    `json:"education"`
	JobHistory    string    `json:"jobHistory"`
	Consideration string    `json:"consideration"`
	Summary       string    `json:"summary"`
	Rating        int       `json:"rating"`
	JobApplied    string    `json:"jobApplied"`
	JobTitle      string    `json:"jobTitle"`
	RecordedAt    time.Time `json:"recordedAt"`
}
