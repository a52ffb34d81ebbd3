package handler

import (
	"errors"
	"io"
	"strings"

	"github.com/26nm/careerpath/internal/delivery/http/dto"
	"github.com/26nm/careerpath/internal/delivery/http/middleware"
	"github.com/26nm/careerpath/internal/pkg/response"
	"github.com/26nm/careerpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ResumeHandler struct {
	uc usecase.ResumeUsecase
}

// resumeRequest takes qualifications as a list; they are stored one per line.
type resumeRequest struct {
	Title          string   `json:"title" validate:"max=200"`
	Qualifications []string `json:"qualifications" validate:"max=500,dive,max=5000"`
}

func NewResumeHandler(uc usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/resumes")
	grp.Get("", h.List)
	grp.Post("", h.Create)
	grp.Post("/upload", h.Upload)
	grp.Get("/:id", h.Get)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *ResumeHandler) Create(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req resumeRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	r, err := h.uc.Create(c.Context(), userID, req.input())
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Resume created", dto.NewResumeResponse(r))
}

// Upload reads multipart field "file" and an optional "title".
func (h *ResumeHandler) Upload(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing file", nil, err)
	}
	if fh.Size > usecase.MaxResumeUploadBytes {
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "File too large", nil, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file", nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, usecase.MaxResumeUploadBytes+1))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file", nil, err)
	}

	r, err := h.uc.Upload(c.Context(), userID, usecase.ResumeUpload{
		Title:       c.FormValue("title"),
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Resume uploaded", dto.NewResumeResponse(r))
}

func (h *ResumeHandler) List(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewResumeList(items))
}

func (h *ResumeHandler) Get(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	r, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewResumeResponse(r))
}

func (h *ResumeHandler) Update(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req resumeRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	r, err := h.uc.Update(c.Context(), userID, id, req.input())
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewResumeResponse(r))
}

func (h *ResumeHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapResumeUsecaseError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (r resumeRequest) input() usecase.ResumeInput {
	return usecase.ResumeInput{Title: r.Title, Qualifications: joinLines(r.Qualifications)}
}

// joinLines drops blank entries and puts one entry per line.
func joinLines(items []string) string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n")
}

func mapResumeUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrResumeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", nil, err)
	case errors.Is(err, usecase.ErrUnsupportedFile):
		return middleware.NewAppError(fiber.StatusUnsupportedMediaType, "Unsupported file type", nil, err)
	case errors.Is(err, usecase.ErrEmptyFile):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "No text could be extracted from the file", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
