package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ClairKirsch/raichi/internal/core/port"
	"github.com/ClairKirsch/raichi/internal/infra/config"
	"github.com/ClairKirsch/raichi/internal/infra/database"
	kafkainfra "github.com/ClairKirsch/raichi/internal/infra/kafka"
	"github.com/ClairKirsch/raichi/internal/infra/logger"
	redisinfra "github.com/ClairKirsch/raichi/internal/infra/redis"
	"github.com/ClairKirsch/raichi/internal/infra/security"
	"github.com/ClairKirsch/raichi/internal/infra/telemetry"
	postgresrepo "github.com/ClairKirsch/raichi/internal/repository/postgres"
	redisrepo "github.com/ClairKirsch/raichi/internal/repository/redis"
	"github.com/ClairKirsch/raichi/internal/transport/http/middleware"
	"github.com/ClairKirsch/raichi/internal/transport/http/routes"
	"github.com/ClairKirsch/raichi/internal/usecase"
)

// Application bundles the configured HTTP engine and its backing resources.
type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	pool   *pgxpool.Pool
	redis  *redisinfra.Client
	tracer *telemetry.TracerProvider
}

// New wires configuration, infrastructure, repositories, services, and routes.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	var tracer *telemetry.TracerProvider
	if cfg.Telemetry.OTLPEndpoint != "" {
		tracer, err = telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
		if err != nil {
			return nil, fmt.Errorf("init tracer provider: %w", err)
		}
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	argonCfg := security.Argon2Config{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	}
	if err := security.ConfigureArgon2(argonCfg); err != nil {
		return nil, fmt.Errorf("configure argon2: %w", err)
	}

	tokenCodec, err := security.NewTokenCodec(cfg.JWT.Secret, cfg.TOTP.Issuer, cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("init token codec: %w", err)
	}

	redisClient, err := redisinfra.NewClient(cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}

	repos := postgresrepo.NewRepositories(pool)
	geoIndex := redisrepo.NewGeoIndex(redisClient.Client(), cfg.Redis.GeoKeyPrefix)

	var eventPublisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer, err := kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			eventPublisher = kafkainfra.NewEventPublisher(kafkaProducer, cfg.App, log)
			log.Info("kafka event publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	passwordPolicy := security.NewPasswordPolicy(cfg.Password.MinLength, cfg.Password.MinScore)

	authService := usecase.NewAuthService(repos.Users, repos.TOTPSecrets, tokenCodec, cfg.TOTP.LoginSkew)
	enrollmentService := usecase.NewEnrollmentService(repos.Users, repos.TOTPSecrets, eventPublisher, log, cfg.TOTP.Issuer)
	registrationService := usecase.NewRegistrationService(repos.Users, passwordPolicy, eventPublisher, log)
	userService := usecase.NewUserService(repos.Users)
	venueService := usecase.NewVenueService(repos.Venues, geoIndex, log)
	eventService := usecase.NewEventService(repos.Events, repos.Venues, eventPublisher, log)
	tagService := usecase.NewTagService(repos.Tags, repos.Events)
	searchService := usecase.NewSearchService(repos.Tags, repos.Events, repos.Venues, geoIndex)
	messageService := usecase.NewMessageService(repos.Messages, repos.Users, repos.Events)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	engine := routes.Register(routes.Dependencies{
		Config:   cfg,
		Logger:   log,
		Metrics:  metrics,
		Database: pool,
		Cache:    redisClient,
		Services: routes.ServiceSet{
			Auth:         authService,
			Registration: registrationService,
			Users:        userService,
			Enrollment:   enrollmentService,
			Venues:       venueService,
			Events:       eventService,
			Tags:         tagService,
			Search:       searchService,
			Messages:     messageService,
		},
	})

	return &Application{
		cfg:    cfg,
		engine: engine,
		logger: log,
		pool:   pool,
		redis:  redisClient,
		tracer: tracer,
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()
	defer func() {
		if a.tracer != nil {
			if err := a.tracer.Shutdown(context.Background()); err != nil {
				a.logger.Warn("tracer shutdown failed", zap.Error(err))
			}
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
