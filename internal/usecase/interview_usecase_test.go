package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/26nm/careerpath/internal/domain/application"
	"github.com/26nm/careerpath/internal/domain/interview"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInterviewFixture() (*Interviews, *recordingNotifier, uuid.UUID, uuid.UUID) {
	userID := uuid.New()
	appID := uuid.New()
	apps := newMockApplicationRepo(application.Application{ID: appID, UserID: userID, Company: "Acme", Position: "Dev"})
	notifier := &recordingNotifier{}
	return NewInterviewUsecase(newMockInterviewRepo(apps), apps, notifier, nil), notifier, userID, appID
}

func TestInterviews_Create(t *testing.T) {
	ctx := context.Background()
	uc, notifier, userID, appID := newInterviewFixture()
	at := time.Date(2026, 5, 4, 9, 0, 0, 0, time.FixedZone("CET", 3600))

	got, err := uc.Create(ctx, userID, InterviewInput{ApplicationID: appID, ScheduledAt: at, Kind: interview.KindVideo, Location: " Meet "})

	require.NoError(t, err)
	assert.Equal(t, at.UTC(), got.ScheduledAt)
	assert.Equal(t, "Meet", got.Location)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, EventInterviewScheduled, notifier.events[0].Type)

	defaulted, err := uc.Create(ctx, userID, InterviewInput{ApplicationID: appID, ScheduledAt: at})
	require.NoError(t, err)
	assert.Equal(t, interview.KindOther, defaulted.Kind)
}

func TestInterviews_CreateValidation(t *testing.T) {
	ctx := context.Background()
	uc, _, userID, appID := newInterviewFixture()
	at := time.Now()

	_, err := uc.Create(ctx, userID, InterviewInput{ScheduledAt: at})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Create(ctx, userID, InterviewInput{ApplicationID: appID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Create(ctx, userID, InterviewInput{ApplicationID: appID, ScheduledAt: at, Kind: "coffee"})
	assert.ErrorIs(t, err, ErrInvalidInterviewKind)

	_, err = uc.Create(ctx, uuid.New(), InterviewInput{ApplicationID: appID, ScheduledAt: at})
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestInterviews_ListByApplication(t *testing.T) {
	ctx := context.Background()
	uc, _, userID, appID := newInterviewFixture()
	_, err := uc.Create(ctx, userID, InterviewInput{ApplicationID: appID, ScheduledAt: time.Now()})
	require.NoError(t, err)

	items, err := uc.ListByApplication(ctx, userID, appID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = uc.ListByApplication(ctx, uuid.New(), appID)
	assert.ErrorIs(t, err, ErrApplicationNotFound)

	all, err := uc.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestInterviews_UpdateReschedule(t *testing.T) {
	ctx := context.Background()
	uc, notifier, userID, appID := newInterviewFixture()
	at := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	created, err := uc.Create(ctx, userID, InterviewInput{ApplicationID: appID, ScheduledAt: at, Kind: interview.KindPhone})
	require.NoError(t, err)

	got, err := uc.Update(ctx, userID, created.ID, InterviewInput{ApplicationID: uuid.New(), ScheduledAt: at, Kind: interview.KindPhone, Notes: "prep"})
	require.NoError(t, err)
	assert.Equal(t, appID, got.ApplicationID)
	assert.Equal(t, "prep", got.Notes)
	assert.Len(t, notifier.events, 1)

	_, err = uc.Update(ctx, userID, created.ID, InterviewInput{ScheduledAt: at.Add(24 * time.Hour), Kind: interview.KindPhone})
	require.NoError(t, err)
	assert.Len(t, notifier.events, 2)

	_, err = uc.Update(ctx, uuid.New(), created.ID, InterviewInput{ScheduledAt: at})
	assert.ErrorIs(t, err, ErrInterviewNotFound)

	require.NoError(t, uc.Delete(ctx, userID, created.ID))
	_, err = uc.Get(ctx, userID, created.ID)
	assert.ErrorIs(t, err, ErrInterviewNotFound)
}
