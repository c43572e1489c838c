package events

import "time"

var ApplicationSubmittedTopic = "ApplicationSubmittedEvent"

type ApplicationSubmitted struct {
	Name        string
	Email       string
	JobID       string
	JobTitle    string
	SubmittedAt time.Time
}
