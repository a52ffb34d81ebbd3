package handler

import (
	"errors"
	"strconv"

	"github.com/26nm/careerpath/internal/delivery/http/middleware"
	"github.com/26nm/careerpath/internal/delivery/http/validation"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// bindBody decodes the JSON body. Validation runs inside the binder when the
// app is configured with a StructValidator.
func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", verr.Fields, err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	return nil
}

func currentUserID(c fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return userID, nil
}

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id", nil, err)
	}
	return id, nil
}

// pageQuery reads ?limit= and ?offset=. Range checks are left to the usecase.
func pageQuery(c fiber.Ctx) (int, int, error) {
	limit, err := intQuery(c, "limit")
	if err != nil {
		return 0, 0, err
	}
	offset, err := intQuery(c, "offset")
	if err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

func intQuery(c fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return v, nil
}
