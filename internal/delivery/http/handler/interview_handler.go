package handler

import (
	"errors"
	"time"

	"github.com/26nm/careerpath/internal/delivery/http/dto"
	"github.com/26nm/careerpath/internal/delivery/http/middleware"
	"github.com/26nm/careerpath/internal/domain/interview"
	"github.com/26nm/careerpath/internal/pkg/response"
	"github.com/26nm/careerpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type InterviewHandler struct {
	uc usecase.InterviewUsecase
}

type interviewRequest struct {
	ApplicationID uuid.UUID `json:"application_id"`
	ScheduledAt   time.Time `json:"scheduled_at" validate:"required"`
	Kind          string    `json:"kind"`
	Location      string    `json:"location" validate:"max=500"`
	Notes         string    `json:"notes" validate:"max=10000"`
}

func NewInterviewHandler(uc usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/interviews")
	grp.Get("", h.List)
	grp.Post("", h.Create)
	grp.Get("/:id", h.Get)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *InterviewHandler) Create(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req interviewRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	iv, err := h.uc.Create(c.Context(), userID, req.input())
	if err != nil {
		return mapInterviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Interview scheduled", dto.NewInterviewResponse(iv))
}

func (h *InterviewHandler) List(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapInterviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewInterviewList(items))
}

func (h *InterviewHandler) Get(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	iv, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return mapInterviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewInterviewResponse(iv))
}

func (h *InterviewHandler) Update(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req interviewRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	iv, err := h.uc.Update(c.Context(), userID, id, req.input())
	if err != nil {
		return mapInterviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewInterviewResponse(iv))
}

func (h *InterviewHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapInterviewUsecaseError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (r interviewRequest) input() usecase.InterviewInput {
	return usecase.InterviewInput{
		ApplicationID: r.ApplicationID,
		ScheduledAt:   r.ScheduledAt,
		Kind:          interview.Kind(r.Kind),
		Location:      r.Location,
		Notes:         r.Notes,
	}
}

func mapInterviewUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInterviewNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Interview not found", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInterviewKind):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid interview kind", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
