package dto

import (
	"time"

	"github.com/26nm/careerpath/internal/domain/resume"

	"github.com/google/uuid"
)

type ResumeResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Qualifications string    `json:"qualifications"`
	FileName       string    `json:"file_name,omitempty"`
	ContentType    string    `json:"content_type,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewResumeResponse(r resume.Resume) ResumeResponse {
	return ResumeResponse{
		ID:             r.ID,
		Title:          r.Title,
		Qualifications: r.Qualifications,
		FileName:       r.FileName,
		ContentType:    r.ContentType,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func NewResumeList(items []resume.Resume) []ResumeResponse {
	out := make([]ResumeResponse, 0, len(items))
	for _, r := range items {
		out = append(out, NewResumeResponse(r))
	}
	return out
}
