package middleware

import (
	"errors"
	"time"

	"github.com/26nm/careerpath/internal/pkg/metrics"

	"github.com/gofiber/fiber/v3"
)

type MetricsMiddleware struct {
	metrics *metrics.Manager
}

func NewMetricsMiddleware(m *metrics.Manager) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Middleware labels requests with the route template ("/api/v1/applications/:id"),
// never the raw path.
func (m *MetricsMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.metrics == nil {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusFromError(err)
		}

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && status != fiber.StatusNotFound {
			route = r.Path
		}
		m.metrics.ObserveHTTPRequest(route, c.Method(), status, time.Since(start))
		return err
	}
}

func statusFromError(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode > 0 {
		return appErr.StatusCode
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code > 0 {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
