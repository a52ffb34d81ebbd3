package handler

import (
	"errors"
	"time"

	"github.com/26nm/careerpath/internal/delivery/http/dto"
	"github.com/26nm/careerpath/internal/delivery/http/middleware"
	"github.com/26nm/careerpath/internal/domain/application"
	"github.com/26nm/careerpath/internal/pkg/response"
	"github.com/26nm/careerpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc         usecase.ApplicationUsecase
	interviews usecase.InterviewUsecase
}

type applicationRequest struct {
	Company        string     `json:"company" validate:"required,max=200"`
	Position       string     `json:"position" validate:"required,max=200"`
	Location       string     `json:"location" validate:"max=200"`
	PostingURL     string     `json:"posting_url" validate:"omitempty,url,max=2048"`
	JobDescription string     `json:"job_description" validate:"max=100000"`
	Status         string     `json:"status"`
	AppliedAt      *time.Time `json:"applied_at"`
	Notes          string     `json:"notes" validate:"max=10000"`
}

type importApplicationRequest struct {
	URL      string `json:"url" validate:"required,url,max=2048"`
	Company  string `json:"company" validate:"max=200"`
	Position string `json:"position" validate:"max=200"`
	Status   string `json:"status"`
	Notes    string `json:"notes" validate:"max=10000"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase, interviews usecase.InterviewUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, interviews: interviews}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/applications")
	grp.Get("", h.List)
	grp.Post("", h.Create)
	grp.Post("/import", h.Import)
	grp.Get("/:id", h.Get)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
	grp.Get("/:id/interviews", h.ListInterviews)
}

func (h *ApplicationHandler) Create(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req applicationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.uc.Create(c.Context(), userID, req.input())
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Application created", dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) Import(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req importApplicationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.uc.Import(c.Context(), userID, usecase.ImportApplicationInput{
		URL:      req.URL,
		Company:  req.Company,
		Position: req.Position,
		Status:   application.Status(req.Status),
		Notes:    req.Notes,
	})
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Application imported", dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) List(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	limit, offset, err := pageQuery(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID, application.ListFilter{
		Status: application.Status(c.Query("status")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationList(items))
}

func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	a, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) Update(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req applicationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.uc.Update(c.Context(), userID, id, req.input())
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapApplicationUsecaseError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ApplicationHandler) ListInterviews(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.interviews.ListByApplication(c.Context(), userID, id)
	if err != nil {
		return mapInterviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewInterviewList(items))
}

func (r applicationRequest) input() usecase.ApplicationInput {
	return usecase.ApplicationInput{
		Company:        r.Company,
		Position:       r.Position,
		Location:       r.Location,
		PostingURL:     r.PostingURL,
		JobDescription: r.JobDescription,
		Status:         application.Status(r.Status),
		AppliedAt:      r.AppliedAt,
		Notes:          r.Notes,
	}
}

func mapApplicationUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, usecase.ErrPostingUnavailable):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Job posting could not be fetched", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
