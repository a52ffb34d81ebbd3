package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/26nm/careerpath/internal/domain/application"
	"github.com/26nm/careerpath/internal/domain/interview"

	"github.com/google/uuid"
)

const EventInterviewScheduled = "interview_scheduled"

type InterviewInput struct {
	ApplicationID uuid.UUID
	ScheduledAt   time.Time
	Kind          interview.Kind
	Location      string
	Notes         string
}

type InterviewUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, in InterviewInput) (interview.Interview, error)
	List(ctx context.Context, userID uuid.UUID) ([]interview.Interview, error)
	ListByApplication(ctx context.Context, userID, applicationID uuid.UUID) ([]interview.Interview, error)
	Get(ctx context.Context, userID, id uuid.UUID) (interview.Interview, error)
	Update(ctx context.Context, userID, id uuid.UUID, in InterviewInput) (interview.Interview, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type Interviews struct {
	repo     interview.Repository
	apps     application.Repository
	notifier Notifier
	logger   *log.Logger
}

func NewInterviewUsecase(repo interview.Repository, apps application.Repository, notifier Notifier, logger *log.Logger) *Interviews {
	return &Interviews{repo: repo, apps: apps, notifier: notifier, logger: logger}
}

func (u *Interviews) Create(ctx context.Context, userID uuid.UUID, in InterviewInput) (interview.Interview, error) {
	if in.ApplicationID == uuid.Nil {
		return interview.Interview{}, ErrInvalidInput
	}
	iv, err := fromInterviewInput(userID, uuid.New(), in)
	if err != nil {
		return interview.Interview{}, err
	}

	created, err := u.repo.Create(ctx, iv)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return interview.Interview{}, ErrApplicationNotFound
		}
		if u.logger != nil {
			u.logger.Printf("[Interview] create failed user_id=%s err=%v", userID, err)
		}
		return interview.Interview{}, ErrInternal
	}

	u.notifyScheduled(userID, created)
	return created, nil
}

func (u *Interviews) List(ctx context.Context, userID uuid.UUID) ([]interview.Interview, error) {
	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// ListByApplication reports ErrApplicationNotFound for applications the user
// does not own instead of an empty list.
func (u *Interviews) ListByApplication(ctx context.Context, userID, applicationID uuid.UUID) ([]interview.Interview, error) {
	if _, err := u.apps.Get(ctx, userID, applicationID); err != nil {
		return nil, mapApplicationErr(err)
	}
	items, err := u.repo.ListByApplication(ctx, userID, applicationID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Interviews) Get(ctx context.Context, userID, id uuid.UUID) (interview.Interview, error) {
	iv, err := u.repo.Get(ctx, userID, id)
	if err != nil {
		return interview.Interview{}, mapInterviewErr(err)
	}
	return iv, nil
}

// Update keeps the interview on its application; ApplicationID in the input
// is ignored.
func (u *Interviews) Update(ctx context.Context, userID, id uuid.UUID, in InterviewInput) (interview.Interview, error) {
	current, err := u.repo.Get(ctx, userID, id)
	if err != nil {
		return interview.Interview{}, mapInterviewErr(err)
	}
	in.ApplicationID = current.ApplicationID
	iv, err := fromInterviewInput(userID, id, in)
	if err != nil {
		return interview.Interview{}, err
	}

	updated, err := u.repo.Update(ctx, iv)
	if err != nil {
		return interview.Interview{}, mapInterviewErr(err)
	}
	if !updated.ScheduledAt.Equal(current.ScheduledAt) {
		u.notifyScheduled(userID, updated)
	}
	return updated, nil
}

func (u *Interviews) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, userID, id); err != nil {
		return mapInterviewErr(err)
	}
	return nil
}

func (u *Interviews) notifyScheduled(userID uuid.UUID, iv interview.Interview) {
	if u.notifier == nil {
		return
	}
	u.notifier.NotifyUser(userID, EventInterviewScheduled, map[string]any{
		"interview_id":   iv.ID,
		"application_id": iv.ApplicationID,
		"scheduled_at":   iv.ScheduledAt.UTC().Format(time.RFC3339),
		"kind":           iv.Kind,
	})
}

func fromInterviewInput(userID, id uuid.UUID, in InterviewInput) (interview.Interview, error) {
	if in.ScheduledAt.IsZero() {
		return interview.Interview{}, ErrInvalidInput
	}
	kind := in.Kind
	if kind == "" {
		kind = interview.KindOther
	}
	if !kind.Valid() {
		return interview.Interview{}, ErrInvalidInterviewKind
	}
	return interview.Interview{
		ID:            id,
		UserID:        userID,
		ApplicationID: in.ApplicationID,
		ScheduledAt:   in.ScheduledAt.UTC(),
		Kind:          kind,
		Location:      strings.TrimSpace(in.Location),
		Notes:         strings.TrimSpace(in.Notes),
	}, nil
}

func mapInterviewErr(err error) error {
	if errors.Is(err, interview.ErrNotFound) {
		return ErrInterviewNotFound
	}
	return ErrInternal
}
