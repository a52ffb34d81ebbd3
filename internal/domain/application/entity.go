package application

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusSaved        Status = "saved"
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffer        Status = "offer"
	StatusRejected     Status = "rejected"
	StatusWithdrawn    Status = "withdrawn"
)

var statuses = []Status{
	StatusSaved, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected, StatusWithdrawn,
}

func (s Status) Valid() bool {
	for _, v := range statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Application is one job the user is tracking, from saved posting to outcome.
type Application struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Company        string
	Position       string
	Location       string
	PostingURL     string
	JobDescription string
	Status         Status
	AppliedAt      *time.Time
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
