package main

import (
	"checklist-service/internal/handler"
	"checklist-service/internal/middleware"
	"checklist-service/internal/repository"
	"checklist-service/internal/service"
	"checklist-service/pkg/config"
	"checklist-service/pkg/database"
	"checklist-service/pkg/jwtutil"
	"checklist-service/pkg/logger"
	"checklist-service/pkg/validator"
	"checklist-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger.InitLogger(cfg)
	log := logger.GetLogger()
	defer log.Sync()
	log.Info("Starting checklist service...", cfg.LogConfig()...)

	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized", zap.String("prefix", cfg.Metrics.Prefix))

	db, err := database.InitDB(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	repos := repository.NewRepositories(db)
	validate := validator.New()
	svcs := service.NewServices(repos.Project, repos.ServiceProvider, repos.Checklist, validate)
	handlers := handler.NewHandlers(svcs)
	jwtUtil := jwtutil.NewJWTUtil(&cfg.JWT)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validate

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes
	e.GET("/", handler.Hello)
	e.GET("/health", handler.Hello)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API routes attribute writes to the resolved actor
	api := e.Group("", middleware.ActorMiddleware(jwtUtil, cfg.Auth))
	handlers.RegisterRoutes(api)

	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port), zap.Bool("auth_required", cfg.Auth.Required))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
