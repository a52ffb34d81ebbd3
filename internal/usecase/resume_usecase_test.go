package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/26nm/careerpath/internal/domain/resume"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumes_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	uc := NewResumeUsecase(newMockResumeRepo(), nil)

	got, err := uc.Create(ctx, userID, ResumeInput{Title: " Backend ", Qualifications: "Go\nSQL"})
	require.NoError(t, err)
	assert.Equal(t, "Backend", got.Title)
	assert.Equal(t, userID, got.UserID)

	_, err = uc.Create(ctx, userID, ResumeInput{Title: "Backend", Qualifications: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResumes_Upload(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("plain text", func(t *testing.T) {
		uc := NewResumeUsecase(newMockResumeRepo(), nil)
		got, err := uc.Upload(ctx, userID, ResumeUpload{
			FileName:    "../../jane_cv.txt",
			ContentType: "text/plain",
			Data:        []byte("Go   developer\r\n\r\n  Kubernetes  \n"),
		})

		require.NoError(t, err)
		assert.Equal(t, "jane_cv", got.Title)
		assert.Equal(t, "jane_cv.txt", got.FileName)
		assert.Equal(t, "Go developer\nKubernetes", got.Qualifications)
	})

	t.Run("explicit title", func(t *testing.T) {
		uc := NewResumeUsecase(newMockResumeRepo(), nil)
		got, err := uc.Upload(ctx, userID, ResumeUpload{Title: "Main", FileName: "cv.md", Data: []byte("# Skills\n- go")})
		require.NoError(t, err)
		assert.Equal(t, "Main", got.Title)
	})

	t.Run("content type only", func(t *testing.T) {
		uc := NewResumeUsecase(newMockResumeRepo(), nil)
		got, err := uc.Upload(ctx, userID, ResumeUpload{ContentType: "text/plain; charset=utf-8", Data: []byte("sql")})
		require.NoError(t, err)
		assert.Equal(t, "Untitled resume", got.Title)
	})

	t.Run("rejections", func(t *testing.T) {
		uc := NewResumeUsecase(newMockResumeRepo(), nil)

		_, err := uc.Upload(ctx, userID, ResumeUpload{FileName: "cv.txt"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = uc.Upload(ctx, userID, ResumeUpload{FileName: "cv.exe", Data: []byte("MZ")})
		assert.ErrorIs(t, err, ErrUnsupportedFile)

		_, err = uc.Upload(ctx, userID, ResumeUpload{FileName: "cv.txt", Data: []byte(" \n\t ")})
		assert.ErrorIs(t, err, ErrEmptyFile)

		_, err = uc.Upload(ctx, userID, ResumeUpload{FileName: "cv.pdf", Data: []byte("not a pdf")})
		assert.ErrorIs(t, err, ErrEmptyFile)

		_, err = uc.Upload(ctx, userID, ResumeUpload{FileName: "big.txt", Data: make([]byte, MaxResumeUploadBytes+1)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := newMockResumeRepo()
		repo.err = errors.New("boom")
		_, err := NewResumeUsecase(repo, nil).Upload(ctx, userID, ResumeUpload{FileName: "cv.txt", Data: []byte("go")})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestResumes_UpdateKeepsFileMetadata(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	id := uuid.New()
	uc := NewResumeUsecase(newMockResumeRepo(resume.Resume{
		ID: id, UserID: userID, Title: "CV", Qualifications: "go", FileName: "cv.pdf", ContentType: "application/pdf",
	}), nil)

	got, err := uc.Update(ctx, userID, id, ResumeInput{Qualifications: "go, rust"})
	require.NoError(t, err)
	assert.Equal(t, "CV", got.Title)
	assert.Equal(t, "go, rust", got.Qualifications)
	assert.Equal(t, "cv.pdf", got.FileName)

	_, err = uc.Update(ctx, uuid.New(), id, ResumeInput{Title: "x"})
	assert.ErrorIs(t, err, ErrResumeNotFound)

	items, err := uc.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, uc.Delete(ctx, userID, id))
	_, err = uc.Get(ctx, userID, id)
	assert.ErrorIs(t, err, ErrResumeNotFound)
}
