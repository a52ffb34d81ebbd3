package usecase

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"

	"github.com/26nm/careerpath/internal/domain/resume"
	"github.com/26nm/careerpath/internal/infrastructure/textextract"

	"github.com/google/uuid"
)

const MaxResumeUploadBytes = 10 << 20

type ResumeInput struct {
	Title          string
	Qualifications string
}

// ResumeUpload is an uploaded file. Only its extracted text is stored.
type ResumeUpload struct {
	Title       string
	FileName    string
	ContentType string
	Data        []byte
}

type ResumeUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, in ResumeInput) (resume.Resume, error)
	Upload(ctx context.Context, userID uuid.UUID, in ResumeUpload) (resume.Resume, error)
	List(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error)
	Get(ctx context.Context, userID, id uuid.UUID) (resume.Resume, error)
	Update(ctx context.Context, userID, id uuid.UUID, in ResumeInput) (resume.Resume, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type Resumes struct {
	repo   resume.Repository
	logger *log.Logger
}

func NewResumeUsecase(repo resume.Repository, logger *log.Logger) *Resumes {
	return &Resumes{repo: repo, logger: logger}
}

func (u *Resumes) Create(ctx context.Context, userID uuid.UUID, in ResumeInput) (resume.Resume, error) {
	title := strings.TrimSpace(in.Title)
	quals := strings.TrimSpace(in.Qualifications)
	if title == "" || quals == "" {
		return resume.Resume{}, ErrInvalidInput
	}
	return u.create(ctx, resume.Resume{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          title,
		Qualifications: quals,
	})
}

func (u *Resumes) Upload(ctx context.Context, userID uuid.UUID, in ResumeUpload) (resume.Resume, error) {
	if len(in.Data) == 0 || len(in.Data) > MaxResumeUploadBytes {
		return resume.Resume{}, ErrInvalidInput
	}
	fileName := filepath.Base(strings.TrimSpace(in.FileName))
	if fileName == "." || fileName == string(filepath.Separator) {
		fileName = ""
	}

	text, err := textextract.Extract(fileName, in.ContentType, in.Data)
	if err != nil {
		switch {
		case errors.Is(err, textextract.ErrUnsupportedFormat):
			return resume.Resume{}, ErrUnsupportedFile
		case errors.Is(err, textextract.ErrEmptyDocument), errors.Is(err, textextract.ErrInvalidDocument):
			if u.logger != nil {
				u.logger.Printf("[Resume] extract failed file=%s err=%v", fileName, err)
			}
			return resume.Resume{}, ErrEmptyFile
		default:
			return resume.Resume{}, ErrInternal
		}
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = strings.TrimSuffix(fileName, filepath.Ext(fileName))
	}
	if title == "" {
		title = "Untitled resume"
	}

	return u.create(ctx, resume.Resume{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          title,
		Qualifications: text,
		FileName:       fileName,
		ContentType:    strings.TrimSpace(in.ContentType),
	})
}

func (u *Resumes) create(ctx context.Context, r resume.Resume) (resume.Resume, error) {
	created, err := u.repo.Create(ctx, r)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Resume] create failed user_id=%s err=%v", r.UserID, err)
		}
		return resume.Resume{}, ErrInternal
	}
	return created, nil
}

func (u *Resumes) List(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	items, err := u.repo.List(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Resumes) Get(ctx context.Context, userID, id uuid.UUID) (resume.Resume, error) {
	r, err := u.repo.Get(ctx, userID, id)
	if err != nil {
		return resume.Resume{}, mapResumeErr(err)
	}
	return r, nil
}

// Update edits title and text. File metadata of an uploaded resume is kept.
func (u *Resumes) Update(ctx context.Context, userID, id uuid.UUID, in ResumeInput) (resume.Resume, error) {
	current, err := u.repo.Get(ctx, userID, id)
	if err != nil {
		return resume.Resume{}, mapResumeErr(err)
	}
	if t := strings.TrimSpace(in.Title); t != "" {
		current.Title = t
	}
	if q := strings.TrimSpace(in.Qualifications); q != "" {
		current.Qualifications = q
	}

	updated, err := u.repo.Update(ctx, current)
	if err != nil {
		return resume.Resume{}, mapResumeErr(err)
	}
	return updated, nil
}

func (u *Resumes) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, userID, id); err != nil {
		return mapResumeErr(err)
	}
	return nil
}

func mapResumeErr(err error) error {
	if errors.Is(err, resume.ErrNotFound) {
		return ErrResumeNotFound
	}
	return ErrInternal
}
