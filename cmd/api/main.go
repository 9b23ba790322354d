// Lunch management API server.
//
// Wires configuration, storage, the reminder scheduler and the HTTP
// surface together, then serves until interrupted.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/innovax/lunch-api/api/swagger"
	"github.com/innovax/lunch-api/internal/handler"
	"github.com/innovax/lunch-api/internal/middleware"
	"github.com/innovax/lunch-api/internal/models"
	"github.com/innovax/lunch-api/internal/repository"
	"github.com/innovax/lunch-api/internal/service"
	"github.com/innovax/lunch-api/pkg/cache"
	"github.com/innovax/lunch-api/pkg/config"
	"github.com/innovax/lunch-api/pkg/database"
	"github.com/innovax/lunch-api/pkg/export"
	"github.com/innovax/lunch-api/pkg/jobs"
	"github.com/innovax/lunch-api/pkg/logger"
	"github.com/innovax/lunch-api/pkg/mailer"
	corsmw "github.com/innovax/lunch-api/pkg/middleware/cors"
	"github.com/innovax/lunch-api/pkg/middleware/requestid"
)

// @title Lunch Management API
// @version 1.0
// @description Employee lunch records, confirmation windows, reminders, imports and reports.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		zapLogger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		zapLogger.Warn("redis unavailable, report caching disabled", zap.Error(err))
		redisClient = nil
	}

	clock, err := service.NewZoneClock(cfg.Scheduler.Timezone)
	if err != nil {
		zapLogger.Fatal("failed to resolve scheduler timezone", zap.Error(err))
	}

	validate := validator.New()

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	recordRepo := repository.NewLunchRecordRepository(db)
	typeRepo := repository.NewLunchTypeRepository(db)
	timingRepo := repository.NewLunchTimingRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, zapLogger)
	defer func() { _ = cacheRepo.Close() }()

	// Services.
	metricsService := service.NewMetricsService()
	menuRule := service.WeekdayMenuRule{}
	authService := service.NewAuthService(userRepo, cfg.JWT, validate, zapLogger)
	timingService := service.NewTimingService(timingRepo, userRepo, validate, zapLogger)
	typeService := service.NewTypeService(typeRepo, validate, zapLogger)
	recordService := service.NewRecordService(
		recordRepo, employeeRepo, typeRepo, timingRepo, userRepo, cacheRepo,
		metricsService, menuRule, clock, validate, zapLogger)
	reminderService := service.NewReminderService(
		reminderRepo, employeeRepo, mailer.NewSMTPSender(cfg.SMTP), userRepo,
		metricsService, clock, cfg.Scheduler.PortalURL, validate, zapLogger)
	importService := service.NewImportService(
		recordRepo, employeeRepo, typeRepo, menuRule, export.NewCSVExporter(), zapLogger)
	reportService := service.NewReportService(
		recordRepo, cacheRepo, export.NewCSVExporter(), export.NewPDFExporter(),
		cfg.Reports.CacheTTL, validate, zapLogger)

	// Handlers.
	authHandler := handler.NewAuthHandler(authService, zapLogger)
	recordHandler := handler.NewRecordHandler(recordService, zapLogger)
	timingHandler := handler.NewTimingHandler(timingService, zapLogger)
	typeHandler := handler.NewTypeHandler(typeService, zapLogger)
	reminderHandler := handler.NewReminderHandler(reminderService, zapLogger)
	importHandler := handler.NewImportHandler(importService, zapLogger)
	reportHandler := handler.NewReportHandler(reportService, zapLogger)

	router := buildRouter(cfg, zapLogger, metricsService, authService, userRepo,
		authHandler, recordHandler, timingHandler, typeHandler, reminderHandler, importHandler, reportHandler)

	var reminderRunner *jobs.Runner
	if cfg.Scheduler.Enabled {
		reminderRunner = jobs.NewRunner("lunch-reminder", func(ctx context.Context) error {
			result, err := reminderService.Run(ctx)
			if err != nil {
				return err
			}
			if result.Skipped {
				zapLogger.Debug("reminder pass skipped", zap.String("reason", result.Reason))
			}
			return nil
		}, jobs.RunnerConfig{
			Interval:   cfg.Scheduler.PollInterval,
			RunAtStart: true,
			Logger:     zapLogger,
		})
		reminderRunner.Start(context.Background())
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("server listening", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("shutting down")

	if reminderRunner != nil {
		reminderRunner.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func buildRouter(
	cfg *config.Config,
	zapLogger *zap.Logger,
	metricsService *service.MetricsService,
	authService *service.AuthService,
	userRepo *repository.UserRepository,
	authHandler *handler.AuthHandler,
	recordHandler *handler.RecordHandler,
	timingHandler *handler.TimingHandler,
	typeHandler *handler.TypeHandler,
	reminderHandler *handler.ReminderHandler,
	importHandler *handler.ImportHandler,
	reportHandler *handler.ReportHandler,
) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.Middleware())
	router.Use(corsmw.New(cfg.CORS.AllowedOrigins))
	router.Use(logger.GinMiddleware(zapLogger))
	router.Use(middleware.Metrics(metricsService))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	router.GET("/metrics", gin.WrapH(metricsService.Handler()))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWTAuth(authService))
	authed.Use(middleware.Audit(userRepo, zapLogger))

	lunch := authed.Group("/lunch")
	{
		lunch.GET("/records", recordHandler.List)
		lunch.POST("/records", recordHandler.Create)
		lunch.GET("/records/:id", recordHandler.Get)
		lunch.PATCH("/records/:id", recordHandler.Modify)
		lunch.POST("/records/:id/confirm", recordHandler.Confirm)
		lunch.POST("/records/:id/cancel", recordHandler.Cancel)
		lunch.POST("/records/:id/request-fill", recordHandler.RequestFill)

		lunch.GET("/types", typeHandler.List)
		lunch.GET("/types/:id", typeHandler.Get)
		lunch.GET("/timing", timingHandler.Get)
		lunch.GET("/reports", reportHandler.Get)
	}

	fillers := authed.Group("/lunch")
	fillers.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleLunchAdmin))
	{
		fillers.POST("/admin-fill", recordHandler.AdminFill)
	}

	admin := authed.Group("/lunch")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		admin.POST("/records/:id/reset", recordHandler.Reset)

		admin.POST("/types", typeHandler.Create)
		admin.PUT("/types/:id", typeHandler.Update)
		admin.PUT("/timing", timingHandler.Upsert)

		admin.GET("/reminder/config", reminderHandler.GetConfig)
		admin.PUT("/reminder/config", reminderHandler.UpdateConfig)
		admin.POST("/reminder/send-now", reminderHandler.SendNow)
		admin.POST("/reminder/test", reminderHandler.SendTest)

		admin.POST("/import", importHandler.Import)
		admin.GET("/import/template", importHandler.Template)
	}

	return router
}
