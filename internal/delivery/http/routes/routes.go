package routes

import (
	"net/http"

	"github.com/26nm/careerpath/internal/delivery/http/handler"
	v1 "github.com/26nm/careerpath/internal/delivery/http/routes/v1"
	"github.com/26nm/careerpath/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

type Registry struct {
	health  *handler.HealthHandler
	v1      v1.Handlers
	authMw  fiber.Handler
	metrics http.Handler
	ws      *ws.Handler
}

type RegistryConfig struct {
	Health  *handler.HealthHandler
	V1      v1.Handlers
	AuthMw  fiber.Handler
	Metrics http.Handler
	WS      *ws.Handler
}

func NewRegistry(cfg RegistryConfig) *Registry {
	return &Registry{
		health:  cfg.Health,
		v1:      cfg.V1,
		authMw:  cfg.AuthMw,
		metrics: cfg.Metrics,
		ws:      cfg.WS,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerOps(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

// registerOps mounts /metrics and the /ws upgrade endpoint, which
// authenticates on its own.
func (r *Registry) registerOps(app *fiber.App) {
	if r.metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(r.metrics))
	}
	if r.ws != nil {
		app.Get("/ws", r.ws.HandleWS)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1, r.authMw)
}
