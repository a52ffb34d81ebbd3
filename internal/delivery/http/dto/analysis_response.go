package dto

import (
	"time"

	"github.com/26nm/careerpath/internal/domain/analysis"
	"github.com/26nm/careerpath/internal/domain/matching"

	"github.com/google/uuid"
)

type AnalysisResponse struct {
	ID            uuid.UUID  `json:"id"`
	ResumeID      *uuid.UUID `json:"resume_id"`
	ApplicationID *uuid.UUID `json:"application_id"`
	Matched       []string   `json:"matched"`
	Missing       []string   `json:"missing"`
	MatchRate     string     `json:"matchRate"`
	SavedAt       time.Time  `json:"saved_at"`
}

func NewAnalysisResponse(a analysis.Analysis) AnalysisResponse {
	return AnalysisResponse{
		ID:            a.ID,
		ResumeID:      a.ResumeID,
		ApplicationID: a.ApplicationID,
		Matched:       nonNil(a.Matched),
		Missing:       nonNil(a.Missing),
		MatchRate:     a.MatchRate,
		SavedAt:       a.SavedAt,
	}
}

func NewAnalysisList(items []analysis.Analysis) []AnalysisResponse {
	out := make([]AnalysisResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewAnalysisResponse(a))
	}
	return out
}

type AnalyzeResponse struct {
	Report matching.MatchReport `json:"report"`
	Saved  *AnalysisResponse    `json:"saved,omitempty"`
	Cached bool                 `json:"cached"`
}

// MatchResponse is the public analyze payload: the bare report, plus scorer
// output when diagnostics were requested.
type MatchResponse struct {
	matching.MatchReport
	Diagnostics *DiagnosticsResponse `json:"diagnostics,omitempty"`
}

type DiagnosticsResponse struct {
	Signals []matching.SkillSignal `json:"signals"`
	Scores  map[string]int         `json:"scores"`
}

func NewMatchResponse(a matching.Analysis, diagnostics bool) MatchResponse {
	out := MatchResponse{MatchReport: a.Report}
	out.Matched = nonNil(out.Matched)
	out.Missing = nonNil(out.Missing)
	if diagnostics {
		d := &DiagnosticsResponse{Signals: a.Scoring.Signals, Scores: a.Scoring.Scores}
		if d.Signals == nil {
			d.Signals = []matching.SkillSignal{}
		}
		if d.Scores == nil {
			d.Scores = map[string]int{}
		}
		out.Diagnostics = d
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
