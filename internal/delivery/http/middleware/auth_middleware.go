package middleware

import (
	"errors"
	"strings"

	"github.com/26nm/careerpath/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxUserIDKey  = "user_id"
	CtxEmailKey   = "email"
	CtxTokenIDKey = "token_id"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware admits only access tokens. Refresh tokens are signed with a
// different secret and carry token_type=refresh, so they fail validation here.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateAccessToken(token)
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
		case err != nil:
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxTokenIDKey, claims.ID)

		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
