package handler

import (
	"errors"
	"strings"

	"github.com/26nm/careerpath/internal/delivery/http/dto"
	"github.com/26nm/careerpath/internal/delivery/http/middleware"
	"github.com/26nm/careerpath/internal/pkg/response"
	"github.com/26nm/careerpath/internal/usecase"
	ucauth "github.com/26nm/careerpath/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, access, refresh, err := h.uc.Register(c.Context(), ucauth.RegisterInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	data := dto.AuthResponse{User: dto.NewUserResponse(usr), AccessToken: access, RefreshToken: refresh}
	return response.Success(c, fiber.StatusCreated, "Registered", data)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, access, refresh, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	data := dto.AuthResponse{User: dto.NewUserResponse(usr), AccessToken: access, RefreshToken: refresh}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := bearerFromAuthorizationHeader(c.Get("Authorization"))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	access, refresh, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		if errors.Is(err, usecase.ErrRefreshTokenExpired) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
		}
		if errors.Is(err, usecase.ErrInvalidRefreshToken) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
		}
		if errors.Is(err, usecase.ErrUnauthorized) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.TokenResponse{AccessToken: access, RefreshToken: refresh})
}

func bearerFromAuthorizationHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", false
	}
	return tok, true
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
