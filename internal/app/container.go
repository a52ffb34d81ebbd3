package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/26nm/careerpath/internal/config"
	"github.com/26nm/careerpath/internal/database"
	"github.com/26nm/careerpath/internal/database/migration"
	dbpostgres "github.com/26nm/careerpath/internal/database/postgres"
	"github.com/26nm/careerpath/internal/domain/matching"
	"github.com/26nm/careerpath/internal/infrastructure/cache"
	"github.com/26nm/careerpath/internal/infrastructure/persistence/postgres"
	"github.com/26nm/careerpath/internal/pkg/jwt"
	"github.com/26nm/careerpath/internal/pkg/metrics"
	"github.com/26nm/careerpath/internal/scraper"
	"github.com/26nm/careerpath/internal/usecase"
	"github.com/26nm/careerpath/internal/ws"
)

var errMissingJWTSecrets = errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set")

// Container owns the long-lived dependencies of the server process.
type Container struct {
	Config  config.Config
	Logger  *log.Logger
	DB      database.DB
	Cache   *cache.Redis
	Metrics *metrics.Manager
	Hub     *ws.Hub
	JWT     *jwt.HMACService
	Engine  *matching.Engine
	Scraper *scraper.PostingScraper

	Auth         *usecase.Auth
	Users        *usecase.User
	Applications *usecase.Applications
	Interviews   *usecase.Interviews
	Resumes      *usecase.Resumes
	Analyses     *usecase.Analyses
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}
	if strings.TrimSpace(cfg.JWT.AccessSecret) == "" || strings.TrimSpace(cfg.JWT.RefreshSecret) == "" {
		return nil, errMissingJWTSecrets
	}

	weights, err := config.LoadScoring(cfg.ScoringConfigPath)
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := (migration.Runner{Logger: logger}).Run(connectCtx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Cache:   cache.NewRedis(cfg.Redis, logger),
		Metrics: metrics.NewManager(metrics.WithRuntimeMetrics()),
		Hub:     ws.NewHub(logger),
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
			jwt.WithIssuer(cfg.JWT.Issuer),
			jwt.WithAudience(cfg.JWT.Audience),
		),
		Engine: matching.NewEngine(weights),
	}
	c.Scraper = scraper.NewPostingScraper(cfg.Scraper, logger, c.Metrics)

	userRepo := postgres.NewUserRepository(db)
	appRepo := postgres.NewApplicationRepository(db)
	resumeRepo := postgres.NewResumeRepository(db)

	c.Auth = usecase.NewAuthUsecase(userRepo, c.JWT)
	c.Users = usecase.NewUserUsecase(userRepo)
	c.Applications = usecase.NewApplicationUsecase(appRepo, postingFetcher{s: c.Scraper}, c.Hub, logger)
	c.Interviews = usecase.NewInterviewUsecase(postgres.NewInterviewRepository(db), appRepo, c.Hub, logger)
	c.Resumes = usecase.NewResumeUsecase(resumeRepo, logger)
	c.Analyses = usecase.NewAnalysisUsecase(usecase.AnalysisDeps{
		Engine:       c.Engine,
		Analyses:     postgres.NewAnalysisRepository(db),
		Resumes:      resumeRepo,
		Applications: appRepo,
		Cache:        c.Cache,
		CacheTTL:     cfg.Redis.TTL,
		Notifier:     c.Hub,
		Metrics:      c.Metrics,
		Logger:       logger,
	})

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}

// postingFetcher adapts the scraper to the usecase port.
type postingFetcher struct {
	s *scraper.PostingScraper
}

func (f postingFetcher) FetchPosting(ctx context.Context, url string) (usecase.FetchedPosting, error) {
	p, err := f.s.Fetch(ctx, url)
	if err != nil {
		return usecase.FetchedPosting{}, err
	}
	return usecase.FetchedPosting{
		URL:         p.URL,
		Title:       p.Title,
		Company:     p.Company,
		Location:    p.Location,
		Description: p.Description,
	}, nil
}
