package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/26nm/careerpath/internal/config"
	"github.com/26nm/careerpath/internal/delivery/http/handler"
	"github.com/26nm/careerpath/internal/delivery/http/middleware"
	"github.com/26nm/careerpath/internal/delivery/http/routes"
	v1 "github.com/26nm/careerpath/internal/delivery/http/routes/v1"
	"github.com/26nm/careerpath/internal/delivery/http/validation"
	"github.com/26nm/careerpath/internal/usecase"
	"github.com/26nm/careerpath/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// bodyLimit leaves room for multipart framing around the largest upload.
const bodyLimit = usecase.MaxResumeUploadBytes + 1<<20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app on top of an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:         c.Config.App.AppName,
		BodyLimit:       bodyLimit,
		StructValidator: validation.New(),
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts the websocket hub and returns a
// cleanup that stops the hub and closes connections.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	ctx, cancel := context.WithCancel(context.Background())
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	go c.Hub.Run(ctx)

	app := New(c)
	cleanup := func() error {
		cancel()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewMetricsMiddleware(c.Metrics).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	routes.NewRegistry(routes.RegistryConfig{
		Health: handler.NewHealthHandler(c.DB, c.Cache),
		V1: v1.Handlers{
			Auth:        handler.NewAuthHandler(c.Auth),
			User:        handler.NewUserHandler(c.Users),
			Application: handler.NewApplicationHandler(c.Applications, c.Interviews),
			Interview:   handler.NewInterviewHandler(c.Interviews),
			Resume:      handler.NewResumeHandler(c.Resumes),
			Analysis:    handler.NewAnalysisHandler(c.Analyses),
		},
		AuthMw:  middleware.NewAuthMiddleware(c.JWT).Middleware(),
		Metrics: c.Metrics.Handler(),
		WS:      ws.NewHandler(c.Hub, c.JWT, c.Logger),
	}).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
