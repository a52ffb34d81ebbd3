package handler

import (
	"errors"

	"github.com/26nm/careerpath/internal/delivery/http/dto"
	"github.com/26nm/careerpath/internal/delivery/http/middleware"
	"github.com/26nm/careerpath/internal/domain/user"
	"github.com/26nm/careerpath/internal/pkg/response"
	"github.com/26nm/careerpath/internal/usecase"
	useruc "github.com/26nm/careerpath/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateMeRequest struct {
	Email           *string `json:"email" validate:"omitempty,email,max=254"`
	Password        *string `json:"password" validate:"omitempty,min=8,max=72"`
	CurrentPassword string  `json:"current_password"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	usr, err := h.uc.GetMe(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateMeRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if req.Email == nil && req.Password == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, nil)
	}

	usr, err := h.uc.UpdateMe(c.Context(), userID, useruc.UpdateMeInput{
		Email:           req.Email,
		Password:        req.Password,
		CurrentPassword: req.CurrentPassword,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

func mapUserUsecaseError(err error) error {
	switch {
	case errors.Is(err, useruc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, useruc.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, useruc.ErrWrongPassword):
		return middleware.NewAppError(fiber.StatusForbidden, "Current password is incorrect", nil, err)
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
