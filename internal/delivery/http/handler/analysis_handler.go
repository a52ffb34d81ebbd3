package handler

import (
	"errors"
	"strconv"

	"github.com/26nm/careerpath/internal/delivery/http/dto"
	"github.com/26nm/careerpath/internal/delivery/http/middleware"
	"github.com/26nm/careerpath/internal/pkg/response"
	"github.com/26nm/careerpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AnalysisHandler struct {
	uc usecase.AnalysisUsecase
}

// analysisRequest compares inline text and/or stored records. Inline text
// takes precedence over the referenced record.
type analysisRequest struct {
	ResumeID       *uuid.UUID `json:"resume_id"`
	ApplicationID  *uuid.UUID `json:"application_id"`
	Qualifications []string   `json:"qualifications" validate:"max=500,dive,max=5000"`
	JobDescription string     `json:"job_description" validate:"max=100000"`
	Save           bool       `json:"save"`
}

type matchRequest struct {
	Qualifications []string `json:"qualifications" validate:"max=500,dive,max=5000"`
	JobDescription string   `json:"job_description" validate:"max=100000"`
}

func NewAnalysisHandler(uc usecase.AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

func (h *AnalysisHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/analyses")
	grp.Post("", h.Analyze)
	grp.Get("", h.List)
	grp.Get("/:id", h.Get)
	grp.Delete("/:id", h.Delete)
}

// RegisterPublicRoutes mounts the unauthenticated text-in endpoint.
func (h *AnalysisHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/analyze", h.Match)
}

func (h *AnalysisHandler) Analyze(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req analysisRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Analyze(c.Context(), userID, usecase.AnalyzeInput{
		ResumeText:     joinLines(req.Qualifications),
		JobDescription: req.JobDescription,
		ResumeID:       req.ResumeID,
		ApplicationID:  req.ApplicationID,
		Save:           req.Save,
	})
	if err != nil {
		return mapAnalysisUsecaseError(err)
	}

	out := dto.AnalyzeResponse{Report: res.Report, Cached: res.Cached}
	status := fiber.StatusOK
	if res.Saved != nil {
		saved := dto.NewAnalysisResponse(*res.Saved)
		out.Saved = &saved
		status = fiber.StatusCreated
	}
	return response.Success(c, status, response.MessageOK, out)
}

// Match is the stateless core endpoint. ?diagnostics=true adds the scorer's
// signals and score map.
func (h *AnalysisHandler) Match(c fiber.Ctx) error {
	var req matchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	diagnostics := false
	if raw := c.Query("diagnostics"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid diagnostics", nil, err)
		}
		diagnostics = v
	}

	res, err := h.uc.AnalyzeText(c.Context(), joinLines(req.Qualifications), req.JobDescription)
	if err != nil {
		return mapAnalysisUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(res, diagnostics))
}

func (h *AnalysisHandler) List(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	limit, offset, err := pageQuery(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID, limit, offset)
	if err != nil {
		return mapAnalysisUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAnalysisList(items))
}

func (h *AnalysisHandler) Get(c fiber.Ctx) error {
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
		return mapAnalysisUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAnalysisResponse(a))
}

func (h *AnalysisHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapAnalysisUsecaseError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func mapAnalysisUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrNothingToAnalyze):
		return middleware.NewAppError(fiber.StatusBadRequest, "Nothing to analyze", nil, err)
	case errors.Is(err, usecase.ErrAnalysisNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Analysis not found", nil, err)
	case errors.Is(err, usecase.ErrResumeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
