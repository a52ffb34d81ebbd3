package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/26nm/careerpath/internal/domain/analysis"
	"github.com/26nm/careerpath/internal/domain/application"
	"github.com/26nm/careerpath/internal/domain/matching"
	"github.com/26nm/careerpath/internal/domain/resume"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	exampleResume = "Experienced in React and Node.js development, strong in SQL"
	exampleJob    = "Looking for React, Node.js, SQL skills"
)

type analysisFixture struct {
	uc       *Analyses
	userID   uuid.UUID
	resumeID uuid.UUID
	appID    uuid.UUID
	records  *mockAnalysisRepo
	resumes  *mockResumeRepo
	apps     *mockApplicationRepo
	cache    *memCache
	notifier *recordingNotifier
	metrics  *recordingMetrics
}

func newAnalysisFixture() *analysisFixture {
	f := &analysisFixture{
		userID:   uuid.New(),
		resumeID: uuid.New(),
		appID:    uuid.New(),
		records:  &mockAnalysisRepo{},
		cache:    newMemCache(),
		notifier: &recordingNotifier{},
		metrics:  &recordingMetrics{},
	}
	f.resumes = newMockResumeRepo(resume.Resume{ID: f.resumeID, UserID: f.userID, Title: "Main", Qualifications: exampleResume})
	f.apps = newMockApplicationRepo(application.Application{ID: f.appID, UserID: f.userID, Company: "Acme", Position: "Dev", JobDescription: exampleJob})
	f.uc = NewAnalysisUsecase(AnalysisDeps{
		Engine:       matching.NewEngine(matching.DefaultWeights()),
		Analyses:     f.records,
		Resumes:      f.resumes,
		Applications: f.apps,
		Cache:        f.cache,
		Notifier:     f.notifier,
		Metrics:      f.metrics,
	})
	return f
}

func TestAnalyses_AnalyzeInlineText(t *testing.T) {
	f := newAnalysisFixture()

	got, err := f.uc.Analyze(context.Background(), f.userID, AnalyzeInput{ResumeText: exampleResume, JobDescription: exampleJob})

	require.NoError(t, err)
	assert.Equal(t, matching.MatchReport{
		Matched:   []string{"nodejs", "react", "sql"},
		Missing:   []string{"for", "looking", "skills"},
		MatchRate: "50%",
	}, got.Report)
	assert.Nil(t, got.Saved)
	assert.False(t, got.Cached)
	assert.Empty(t, f.records.items)
	assert.Empty(t, f.notifier.events)
	assert.Equal(t, []string{analysisComputed}, f.metrics.outcomes)
	assert.Equal(t, []int{50}, f.metrics.rates)
}

func TestAnalyses_AnalyzeStoredRecordsAndSave(t *testing.T) {
	f := newAnalysisFixture()
	fixed := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	f.uc.now = func() time.Time { return fixed }

	got, err := f.uc.Analyze(context.Background(), f.userID, AnalyzeInput{
		ResumeID:      &f.resumeID,
		ApplicationID: &f.appID,
		Save:          true,
	})

	require.NoError(t, err)
	require.NotNil(t, got.Saved)
	assert.Equal(t, "50%", got.Saved.MatchRate)
	assert.Equal(t, fixed, got.Saved.SavedAt)
	assert.Equal(t, f.resumeID, *got.Saved.ResumeID)
	assert.Equal(t, f.appID, *got.Saved.ApplicationID)
	require.Len(t, f.records.items, 1)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, EventAnalysisSaved, f.notifier.events[0].Type)
	assert.Equal(t, f.userID, f.notifier.events[0].UserID)
}

func TestAnalyses_InlineTextOverridesStoredRecord(t *testing.T) {
	f := newAnalysisFixture()

	got, err := f.uc.Analyze(context.Background(), f.userID, AnalyzeInput{
		ResumeID:       &f.resumeID,
		JobDescription: "kubernetes",
	})

	require.NoError(t, err)
	assert.Empty(t, got.Report.Matched)
	assert.Equal(t, []string{"kubernetes"}, got.Report.Missing)
	assert.Equal(t, "0%", got.Report.MatchRate)
}

func TestAnalyses_NothingToAnalyze(t *testing.T) {
	f := newAnalysisFixture()
	ctx := context.Background()

	for _, in := range []AnalyzeInput{
		{},
		{ResumeText: exampleResume},
		{JobDescription: exampleJob},
		{ResumeText: "  \n\t", JobDescription: exampleJob},
	} {
		_, err := f.uc.Analyze(ctx, f.userID, in)
		assert.ErrorIs(t, err, ErrNothingToAnalyze)
	}
	assert.Equal(t, analysisRejected, f.metrics.outcomes[0])

	blankApp := uuid.New()
	_, err := f.apps.Create(ctx, application.Application{ID: blankApp, UserID: f.userID, Company: "X", Position: "Y"})
	require.NoError(t, err)
	_, err = f.uc.Analyze(ctx, f.userID, AnalyzeInput{ResumeID: &f.resumeID, ApplicationID: &blankApp, Save: true})
	assert.ErrorIs(t, err, ErrNothingToAnalyze)
	assert.Empty(t, f.records.items)
}

func TestAnalyses_ForeignRecordsAreNotFound(t *testing.T) {
	f := newAnalysisFixture()
	other := uuid.New()

	_, err := f.uc.Analyze(context.Background(), other, AnalyzeInput{ResumeID: &f.resumeID, JobDescription: exampleJob})
	assert.ErrorIs(t, err, ErrResumeNotFound)

	_, err = f.uc.Analyze(context.Background(), other, AnalyzeInput{ResumeText: exampleResume, ApplicationID: &f.appID})
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestAnalyses_LoadFailureIsInternal(t *testing.T) {
	f := newAnalysisFixture()
	f.resumes.err = errors.New("connection refused")

	_, err := f.uc.Analyze(context.Background(), f.userID, AnalyzeInput{ResumeID: &f.resumeID, JobDescription: exampleJob})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestAnalyses_CacheHit(t *testing.T) {
	f := newAnalysisFixture()
	ctx := context.Background()

	first, err := f.uc.Analyze(ctx, f.userID, AnalyzeInput{ResumeText: exampleResume, JobDescription: exampleJob})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	// Same texts after normalization hit the same entry.
	second, err := f.uc.Analyze(ctx, f.userID, AnalyzeInput{
		ResumeText:     "experienced in REACTJS and nodejs   development, strong in sql",
		JobDescription: "looking for react, NODE.JS, sql skills",
	})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Report, second.Report)
	assert.Equal(t, 1, f.cache.sets)
	assert.Equal(t, []string{analysisComputed, analysisCached}, f.metrics.outcomes)
}

func TestAnalyses_CacheFailuresAreIgnored(t *testing.T) {
	f := newAnalysisFixture()
	f.cache.getErr = errors.New("redis down")
	f.cache.setErr = errors.New("redis down")

	got, err := f.uc.Analyze(context.Background(), f.userID, AnalyzeInput{ResumeText: exampleResume, JobDescription: exampleJob, Save: true})

	require.NoError(t, err)
	assert.Equal(t, "50%", got.Report.MatchRate)
	assert.NotNil(t, got.Saved)
}

func TestAnalyses_SaveFailureIsInternal(t *testing.T) {
	f := newAnalysisFixture()
	f.records.appendErr = errors.New("disk full")

	_, err := f.uc.Analyze(context.Background(), f.userID, AnalyzeInput{ResumeText: exampleResume, JobDescription: exampleJob, Save: true})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.notifier.events)
	assert.Equal(t, []string{analysisFailed}, f.metrics.outcomes)
}

func TestAnalyses_AnalyzeTextAcceptsEmptyInput(t *testing.T) {
	f := newAnalysisFixture()

	got, err := f.uc.AnalyzeText(context.Background(), "", "")

	require.NoError(t, err)
	assert.Empty(t, got.Report.Matched)
	assert.Empty(t, got.Report.Missing)
	assert.Equal(t, "0%", got.Report.MatchRate)
}

func TestAnalyses_AnalyzeTextWithoutCache(t *testing.T) {
	uc := NewAnalysisUsecase(AnalysisDeps{})

	got, err := uc.AnalyzeText(context.Background(), exampleResume, exampleJob)

	require.NoError(t, err)
	assert.Equal(t, "50%", got.Report.MatchRate)
	assert.Equal(t, 2, got.Scoring.Scores["sql"])
}

func TestAnalyses_ConcurrentAnalyze(t *testing.T) {
	f := newAnalysisFixture()
	f.uc.deps.Cache = nil
	f.uc.deps.Metrics = nil

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := f.uc.Analyze(context.Background(), f.userID, AnalyzeInput{ResumeID: &f.resumeID, ApplicationID: &f.appID})
			if err == nil && got.Report.MatchRate != "50%" {
				err = errors.New("unexpected rate " + got.Report.MatchRate)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestAnalyses_ListGetDelete(t *testing.T) {
	f := newAnalysisFixture()
	ctx := context.Background()
	id := uuid.New()
	f.records.items = []analysis.Analysis{{ID: id, UserID: f.userID, MatchRate: "10%"}}

	items, err := f.uc.List(ctx, f.userID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, defaultListLimit, f.records.lastLimit)

	_, err = f.uc.List(ctx, f.userID, maxListLimit+1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	got, err := f.uc.Get(ctx, f.userID, id)
	require.NoError(t, err)
	assert.Equal(t, "10%", got.MatchRate)

	_, err = f.uc.Get(ctx, uuid.New(), id)
	assert.ErrorIs(t, err, ErrAnalysisNotFound)

	require.NoError(t, f.uc.Delete(ctx, f.userID, id))
	assert.ErrorIs(t, f.uc.Delete(ctx, f.userID, id), ErrAnalysisNotFound)
}

func TestAnalysisCacheKey(t *testing.T) {
	w := matching.DefaultWeights()

	a := AnalysisCacheKey("React.js and Node JS", "SQL", w)
	b := AnalysisCacheKey("  react   and nodejs ", "sql", w)
	assert.Equal(t, a, b)
	assert.Contains(t, a, AnalysisCachePrefix)

	assert.NotEqual(t, a, AnalysisCacheKey("sql", "React.js and Node JS", w))

	w.MinScore = 3
	assert.NotEqual(t, a, AnalysisCacheKey("React.js and Node JS", "SQL", w))
}
