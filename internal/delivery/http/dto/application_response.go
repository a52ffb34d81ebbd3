package dto

import (
	"time"

	"github.com/26nm/careerpath/internal/domain/application"
	"github.com/26nm/careerpath/internal/domain/interview"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID             uuid.UUID  `json:"id"`
	Company        string     `json:"company"`
	Position       string     `json:"position"`
	Location       string     `json:"location"`
	PostingURL     string     `json:"posting_url"`
	JobDescription string     `json:"job_description"`
	Status         string     `json:"status"`
	AppliedAt      *time.Time `json:"applied_at"`
	Notes          string     `json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:             a.ID,
		Company:        a.Company,
		Position:       a.Position,
		Location:       a.Location,
		PostingURL:     a.PostingURL,
		JobDescription: a.JobDescription,
		Status:         string(a.Status),
		AppliedAt:      a.AppliedAt,
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func NewApplicationList(items []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}

type InterviewResponse struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Kind          string    `json:"kind"`
	Location      string    `json:"location"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewInterviewResponse(iv interview.Interview) InterviewResponse {
	return InterviewResponse{
		ID:            iv.ID,
		ApplicationID: iv.ApplicationID,
		ScheduledAt:   iv.ScheduledAt,
		Kind:          string(iv.Kind),
		Location:      iv.Location,
		Notes:         iv.Notes,
		CreatedAt:     iv.CreatedAt,
		UpdatedAt:     iv.UpdatedAt,
	}
}

func NewInterviewList(items []interview.Interview) []InterviewResponse {
	out := make([]InterviewResponse, 0, len(items))
	for _, iv := range items {
		out = append(out, NewInterviewResponse(iv))
	}
	return out
}
