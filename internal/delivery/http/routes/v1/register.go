package v1

import (
	"github.com/26nm/careerpath/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Application *handler.ApplicationHandler
	Interview   *handler.InterviewHandler
	Resume      *handler.ResumeHandler
	Analysis    *handler.AnalysisHandler
}

// Register mounts the public routes first; everything registered after the
// protected group requires an access token.
func Register(r fiber.Router, h Handlers, authMw fiber.Handler) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}
	if h.Analysis != nil {
		h.Analysis.RegisterPublicRoutes(r)
	}

	if authMw == nil {
		authMw = func(fiber.Ctx) error { return fiber.ErrUnauthorized }
	}
	protected := r.Group("", authMw)

	if h.User != nil {
		h.User.RegisterRoutes(protected.Group("/users"))
	}
	if h.Application != nil {
		h.Application.RegisterRoutes(protected)
	}
	if h.Interview != nil {
		h.Interview.RegisterRoutes(protected)
	}
	if h.Resume != nil {
		h.Resume.RegisterRoutes(protected)
	}
	if h.Analysis != nil {
		h.Analysis.RegisterRoutes(protected)
	}
}
