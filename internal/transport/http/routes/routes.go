package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/ClairKirsch/raichi/internal/infra/config"
	"github.com/ClairKirsch/raichi/internal/transport/http/handlers"
	"github.com/ClairKirsch/raichi/internal/transport/http/middleware"
	"github.com/ClairKirsch/raichi/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth         *usecase.AuthService
	Registration *usecase.RegistrationService
	Users        *usecase.UserService
	Enrollment   *usecase.EnrollmentService
	Venues       *usecase.VenueService
	Events       *usecase.EventService
	Tags         *usecase.TagService
	Search       *usecase.SearchService
	Messages     *usecase.MessageService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Metrics  *middleware.HTTPMetrics
	Services ServiceSet
	Database DatabaseChecker
	Cache    CacheChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(deps.Config.Telemetry.ServiceName))
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS([]string{"*"}))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	authMiddleware := middleware.RequireAuth(deps.Services.Auth)

	healthOptions := make([]handlers.HealthOption, 0, 2)
	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}
	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}

	healthHandler := handlers.NewHealthHandler(healthOptions...)
	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("")
	{
		tokenHandler := handlers.NewTokenHandler(deps.Services.Auth)
		tokenHandler.RegisterRoutes(public)

		userHandler := handlers.NewUserHandler(deps.Services.Registration, deps.Services.Users)
		userHandler.RegisterPublicRoutes(public)
	}

	protected := r.Group("", authMiddleware)
	{
		userHandler := handlers.NewUserHandler(deps.Services.Registration, deps.Services.Users)
		userHandler.RegisterProtectedRoutes(protected)

		otpHandler := handlers.NewOTPHandler(deps.Services.Enrollment)
		otpHandler.RegisterRoutes(protected)

		venueHandler := handlers.NewVenueHandler(deps.Services.Venues)
		venueHandler.RegisterRoutes(protected)

		eventHandler := handlers.NewEventHandler(deps.Services.Events)
		eventHandler.RegisterRoutes(protected)

		tagHandler := handlers.NewTagHandler(deps.Services.Tags)
		tagHandler.RegisterRoutes(protected)

		searchHandler := handlers.NewSearchHandler(deps.Services.Search)
		searchHandler.RegisterRoutes(protected)

		messageHandler := handlers.NewMessageHandler(deps.Services.Messages)
		messageHandler.RegisterRoutes(protected)
	}

	return r
}
