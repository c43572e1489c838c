package intake

import (
	"io"
	"time"
)

// Payload is one application submission as the workflow-automation service
// expects it. Job snapshot fields carry the posting as it was at submit time;
// absent values stay empty strings rather than blocking the send.
type Payload struct {
	Name       string
	Email      string
	CVFileName string
	CV         io.Reader

	JobID           string
	JobTitle        string
	JobLocation     string
	JobDepartment   string
	JobType         string
	JobDescription  string
	JobRequirements string
	JobBenefits     string

	SubmittedAt time.Time
	FormMode    string
}

func (p Payload) formFields() map[string]string {
	return map[string]string{
		"Name":            p.Name,
		"Email":           p.Email,
		"JobId":           p.JobID,
		"JobTitle":        p.JobTitle,
		"JobLocation":     p.JobLocation,
		"JobDepartment":   p.JobDepartment,
		"JobType":         p.JobType,
		"JobDescription":  p.JobDescription,
		"JobRequirements": p.JobRequirements,
		"JobBenefits":     p.JobBenefits,
		"submittedAt":     p.SubmittedAt.UTC().Format(time.RFC3339),
		"formMode":        p.FormMode,
	}
}
