package usecase

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/26nm/careerpath/internal/domain/analysis"
	"github.com/26nm/careerpath/internal/domain/application"
	"github.com/26nm/careerpath/internal/domain/matching"
	"github.com/26nm/careerpath/internal/domain/resume"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Notifier pushes a realtime event to a user's open connections. Delivery
// is best effort.
type Notifier interface {
	NotifyUser(userID uuid.UUID, eventType string, data any)
}

type AnalysisMetrics interface {
	ObserveAnalysis(outcome string, matchRatePercent int, d time.Duration)
}

const EventAnalysisSaved = "analysis_saved"

// Outcomes reported to AnalysisMetrics.
const (
	analysisComputed = "computed"
	analysisCached   = "cached"
	analysisRejected = "rejected"
	analysisFailed   = "failed"
)

// AnalyzeInput names the two texts to compare. Inline text wins over the
// stored record; a stored id is still checked for ownership.
type AnalyzeInput struct {
	ResumeText     string
	JobDescription string
	ResumeID       *uuid.UUID
	ApplicationID  *uuid.UUID
	Save           bool
}

type AnalyzeResult struct {
	Report matching.MatchReport
	Saved  *analysis.Analysis
	Cached bool
}

type AnalysisUsecase interface {
	Analyze(ctx context.Context, userID uuid.UUID, in AnalyzeInput) (AnalyzeResult, error)
	AnalyzeText(ctx context.Context, resumeText, jobText string) (matching.Analysis, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]analysis.Analysis, error)
	Get(ctx context.Context, userID, id uuid.UUID) (analysis.Analysis, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type AnalysisDeps struct {
	Engine       *matching.Engine
	Analyses     analysis.Repository
	Resumes      resume.Repository
	Applications application.Repository
	Cache        AnalysisCache
	CacheTTL     time.Duration
	Notifier     Notifier
	Metrics      AnalysisMetrics
	Logger       *log.Logger
}

type Analyses struct {
	deps AnalysisDeps
	now  func() time.Time
}

func NewAnalysisUsecase(deps AnalysisDeps) *Analyses {
	if deps.Engine == nil {
		deps.Engine = matching.NewEngine(matching.DefaultWeights())
	}
	return &Analyses{deps: deps, now: time.Now}
}

func (u *Analyses) Analyze(ctx context.Context, userID uuid.UUID, in AnalyzeInput) (AnalyzeResult, error) {
	start := u.now()

	resumeText, jobText, err := u.resolveTexts(ctx, userID, in)
	if err != nil {
		if errors.Is(err, ErrNothingToAnalyze) {
			u.observe(analysisRejected, "", start)
		}
		return AnalyzeResult{}, err
	}

	result, cached := u.compute(ctx, resumeText, jobText)
	out := AnalyzeResult{Report: result.Report, Cached: cached}

	if in.Save {
		rec := analysis.Analysis{
			ID:            uuid.New(),
			UserID:        userID,
			ResumeID:      in.ResumeID,
			ApplicationID: in.ApplicationID,
			Matched:       result.Report.Matched,
			Missing:       result.Report.Missing,
			MatchRate:     result.Report.MatchRate,
			SavedAt:       u.now().UTC(),
		}
		saved, err := u.deps.Analyses.Append(ctx, rec)
		if err != nil {
			u.logf("[Analysis] save failed user_id=%s err=%v", userID, err)
			u.observe(analysisFailed, "", start)
			return AnalyzeResult{}, ErrInternal
		}
		out.Saved = &saved
		if u.deps.Notifier != nil {
			u.deps.Notifier.NotifyUser(userID, EventAnalysisSaved, saved)
		}
	}

	outcome := analysisComputed
	if cached {
		outcome = analysisCached
	}
	u.observe(outcome, result.Report.MatchRate, start)
	return out, nil
}

// AnalyzeText runs the engine on raw text. Empty input is not an error here;
// it yields an empty report.
func (u *Analyses) AnalyzeText(ctx context.Context, resumeText, jobText string) (matching.Analysis, error) {
	start := u.now()
	result, cached := u.compute(ctx, resumeText, jobText)
	outcome := analysisComputed
	if cached {
		outcome = analysisCached
	}
	u.observe(outcome, result.Report.MatchRate, start)
	return result, nil
}

func (u *Analyses) resolveTexts(ctx context.Context, userID uuid.UUID, in AnalyzeInput) (string, string, error) {
	resumeText := in.ResumeText
	jobText := in.JobDescription

	g, gctx := errgroup.WithContext(ctx)
	if in.ResumeID != nil {
		id := *in.ResumeID
		g.Go(func() error {
			r, err := u.deps.Resumes.Get(gctx, userID, id)
			if err != nil {
				if errors.Is(err, resume.ErrNotFound) {
					return ErrResumeNotFound
				}
				u.logf("[Analysis] load resume failed id=%s err=%v", id, err)
				return ErrInternal
			}
			if strings.TrimSpace(resumeText) == "" {
				resumeText = r.Qualifications
			}
			return nil
		})
	}
	if in.ApplicationID != nil {
		id := *in.ApplicationID
		g.Go(func() error {
			a, err := u.deps.Applications.Get(gctx, userID, id)
			if err != nil {
				if errors.Is(err, application.ErrNotFound) {
					return ErrApplicationNotFound
				}
				u.logf("[Analysis] load application failed id=%s err=%v", id, err)
				return ErrInternal
			}
			if strings.TrimSpace(jobText) == "" {
				jobText = a.JobDescription
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", "", err
	}

	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" {
		return "", "", ErrNothingToAnalyze
	}
	return resumeText, jobText, nil
}

// compute consults the cache before running the engine. Cache failures are
// logged and otherwise ignored.
func (u *Analyses) compute(ctx context.Context, resumeText, jobText string) (matching.Analysis, bool) {
	if u.deps.Cache == nil {
		return u.deps.Engine.Analyze(resumeText, jobText), false
	}

	key := AnalysisCacheKey(resumeText, jobText, u.deps.Engine.Weights())
	var cached matching.Analysis
	found, err := u.deps.Cache.GetJSON(ctx, key, &cached)
	if err != nil {
		u.logf("[Analysis] cache get failed key=%s err=%v", key, err)
	}
	if found {
		return cached, true
	}

	result := u.deps.Engine.Analyze(resumeText, jobText)
	if err := u.deps.Cache.SetJSON(ctx, key, result, u.deps.CacheTTL); err != nil {
		u.logf("[Analysis] cache set failed key=%s err=%v", key, err)
	}
	return result, false
}

func (u *Analyses) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]analysis.Analysis, error) {
	limit, offset, err := pageBounds(limit, offset)
	if err != nil {
		return nil, err
	}
	items, err := u.deps.Analyses.List(ctx, userID, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Analyses) Get(ctx context.Context, userID, id uuid.UUID) (analysis.Analysis, error) {
	a, err := u.deps.Analyses.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			return analysis.Analysis{}, ErrAnalysisNotFound
		}
		return analysis.Analysis{}, ErrInternal
	}
	return a, nil
}

func (u *Analyses) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := u.deps.Analyses.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			return ErrAnalysisNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Analyses) observe(outcome, matchRate string, start time.Time) {
	if u.deps.Metrics == nil {
		return
	}
	pct, _ := strconv.Atoi(strings.TrimSuffix(matchRate, "%"))
	u.deps.Metrics.ObserveAnalysis(outcome, pct, u.now().Sub(start))
}

func (u *Analyses) logf(format string, args ...any) {
	if u.deps.Logger != nil {
		u.deps.Logger.Printf(format, args...)
	}
}
