package handler

import (
	"context"
	"time"

	"github.com/26nm/careerpath/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is satisfied by database.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CacheStatus is satisfied by the redis cache, which can run disabled.
type CacheStatus interface {
	Available() bool
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache CacheStatus
}

type healthResponse struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

const (
	componentUp       = "up"
	componentDown     = "down"
	componentDisabled = "disabled"
)

func NewHealthHandler(db Pinger, cache CacheStatus) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports 503 only when the database is unreachable. A missing cache
// degrades performance, not correctness.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	res := healthResponse{Database: componentDisabled, Cache: componentDisabled}
	status := fiber.StatusOK

	if h.db != nil {
		res.Database = componentUp
		if err := h.db.Ping(ctx); err != nil {
			res.Database = componentDown
			status = fiber.StatusServiceUnavailable
		}
	}
	if h.cache != nil && h.cache.Available() {
		res.Cache = componentUp
		if err := h.cache.Ping(ctx); err != nil {
			res.Cache = componentDown
		}
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "Service unavailable", res)
	}
	return response.Success(c, status, response.MessageOK, res)
}
