package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/26nm/careerpath/internal/domain/application"

	"github.com/google/uuid"
)

const EventApplicationUpdated = "application_updated"

// PostingFetcher loads the readable parts of a job posting page.
type PostingFetcher interface {
	FetchPosting(ctx context.Context, url string) (FetchedPosting, error)
}

type FetchedPosting struct {
	URL         string
	Title       string
	Company     string
	Location    string
	Description string
}

type ApplicationInput struct {
	Company        string
	Position       string
	Location       string
	PostingURL     string
	JobDescription string
	Status         application.Status
	AppliedAt      *time.Time
	Notes          string
}

// ImportApplicationInput creates an application from a posting url. Company
// and Position override whatever the page says.
type ImportApplicationInput struct {
	URL      string
	Company  string
	Position string
	Status   application.Status
	Notes    string
}

type ApplicationUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, in ApplicationInput) (application.Application, error)
	Import(ctx context.Context, userID uuid.UUID, in ImportApplicationInput) (application.Application, error)
	List(ctx context.Context, userID uuid.UUID, f application.ListFilter) ([]application.Application, error)
	Get(ctx context.Context, userID, id uuid.UUID) (application.Application, error)
	Update(ctx context.Context, userID, id uuid.UUID, in ApplicationInput) (application.Application, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type Applications struct {
	repo     application.Repository
	fetcher  PostingFetcher
	notifier Notifier
	logger   *log.Logger
	now      func() time.Time
}

func NewApplicationUsecase(repo application.Repository, fetcher PostingFetcher, notifier Notifier, logger *log.Logger) *Applications {
	return &Applications{repo: repo, fetcher: fetcher, notifier: notifier, logger: logger, now: time.Now}
}

func (u *Applications) Create(ctx context.Context, userID uuid.UUID, in ApplicationInput) (application.Application, error) {
	a, err := u.fromInput(userID, uuid.New(), in)
	if err != nil {
		return application.Application{}, err
	}
	created, err := u.repo.Create(ctx, a)
	if err != nil {
		u.logf("[Application] create failed user_id=%s err=%v", userID, err)
		return application.Application{}, ErrInternal
	}
	return created, nil
}

func (u *Applications) Import(ctx context.Context, userID uuid.UUID, in ImportApplicationInput) (application.Application, error) {
	if strings.TrimSpace(in.URL) == "" {
		return application.Application{}, ErrInvalidInput
	}
	if u.fetcher == nil {
		return application.Application{}, ErrPostingUnavailable
	}
	p, err := u.fetcher.FetchPosting(ctx, strings.TrimSpace(in.URL))
	if err != nil {
		u.logf("[Application] import fetch failed url=%s err=%v", in.URL, err)
		return application.Application{}, ErrPostingUnavailable
	}

	return u.Create(ctx, userID, ApplicationInput{
		Company:        firstNonBlank(in.Company, p.Company),
		Position:       firstNonBlank(in.Position, p.Title),
		Location:       p.Location,
		PostingURL:     firstNonBlank(p.URL, in.URL),
		JobDescription: p.Description,
		Status:         in.Status,
		Notes:          in.Notes,
	})
}

func (u *Applications) List(ctx context.Context, userID uuid.UUID, f application.ListFilter) ([]application.Application, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	limit, offset, err := pageBounds(f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	f.Limit, f.Offset = limit, offset

	items, err := u.repo.List(ctx, userID, f)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Applications) Get(ctx context.Context, userID, id uuid.UUID) (application.Application, error) {
	a, err := u.repo.Get(ctx, userID, id)
	if err != nil {
		return application.Application{}, mapApplicationErr(err)
	}
	return a, nil
}

// Update replaces the editable fields. Moving to "applied" without a date
// stamps AppliedAt with the current time.
func (u *Applications) Update(ctx context.Context, userID, id uuid.UUID, in ApplicationInput) (application.Application, error) {
	current, err := u.repo.Get(ctx, userID, id)
	if err != nil {
		return application.Application{}, mapApplicationErr(err)
	}

	if in.AppliedAt == nil {
		in.AppliedAt = current.AppliedAt
	}
	a, err := u.fromInput(userID, id, in)
	if err != nil {
		return application.Application{}, err
	}

	updated, err := u.repo.Update(ctx, a)
	if err != nil {
		return application.Application{}, mapApplicationErr(err)
	}

	if updated.Status != current.Status && u.notifier != nil {
		u.notifier.NotifyUser(userID, EventApplicationUpdated, map[string]any{
			"application_id":  updated.ID,
			"previous_status": current.Status,
			"status":          updated.Status,
		})
	}
	return updated, nil
}

func (u *Applications) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, userID, id); err != nil {
		return mapApplicationErr(err)
	}
	return nil
}

func (u *Applications) fromInput(userID, id uuid.UUID, in ApplicationInput) (application.Application, error) {
	company := strings.TrimSpace(in.Company)
	position := strings.TrimSpace(in.Position)
	if company == "" || position == "" {
		return application.Application{}, ErrInvalidInput
	}

	status := in.Status
	if status == "" {
		status = application.StatusSaved
	}
	if !status.Valid() {
		return application.Application{}, ErrInvalidStatus
	}

	appliedAt := in.AppliedAt
	if appliedAt == nil && status == application.StatusApplied {
		now := u.now().UTC()
		appliedAt = &now
	}

	return application.Application{
		ID:             id,
		UserID:         userID,
		Company:        company,
		Position:       position,
		Location:       strings.TrimSpace(in.Location),
		PostingURL:     strings.TrimSpace(in.PostingURL),
		JobDescription: strings.TrimSpace(in.JobDescription),
		Status:         status,
		AppliedAt:      appliedAt,
		Notes:          strings.TrimSpace(in.Notes),
	}, nil
}

func (u *Applications) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

func mapApplicationErr(err error) error {
	if errors.Is(err, application.ErrNotFound) {
		return ErrApplicationNotFound
	}
	return ErrInternal
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
