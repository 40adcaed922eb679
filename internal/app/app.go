package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gigwork_backend/database"
	"gigwork_backend/internal/auth"
	"gigwork_backend/internal/config"
	"gigwork_backend/internal/email"
	"gigwork_backend/internal/handlers"
	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/middleware"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/qualification"
	"gigwork_backend/internal/repositories"
	"gigwork_backend/internal/routes"
	"gigwork_backend/internal/services"
	"gigwork_backend/internal/validator"
	"gigwork_backend/internal/workers"
	"gigwork_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// App - собранное приложение: конфиг, база, сервисы и роутер
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Services *services.ServiceContainer
	Router   *gin.Engine
}

// Build собирает сервисы, хэндлеры и роутер поверх открытой базы
func Build(cfg *config.Config, gormDB *gorm.DB) (*App, error) {
	auth.Configure(cfg.JWT.Secret, cfg.TokenTTL())
	apperrors.Debug = cfg.Server.Env == "development"

	// 1. Сервисы
	serviceContainer, err := initializeServices(cfg)
	if err != nil {
		return nil, err
	}

	// 2. Хэндлеры
	appHandlers := initializeHandlers(cfg, serviceContainer)

	// 3. Gin + маршруты
	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return &App{
		Config:   cfg,
		DB:       gormDB,
		Services: serviceContainer,
		Router:   ginRouter,
	}, nil
}

// SetupRouter - то же, что Build, но возвращает только роутер (для httptest)
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	a, err := Build(cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to build application", "error", err)
	}
	return a.Router
}

// Run поднимает базу, фоновые воркеры и HTTP сервер. Возвращается после отмены ctx.
func Run(ctx context.Context, cfg *config.Config) error {
	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg)
	if err != nil {
		return err
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		return err
	}
	if err := SeedFirstAdmin(gormDB, cfg); err != nil {
		// Если не удалось создать админа - не запускаем сервер
		return fmt.Errorf("failed to seed first admin user: %w", err)
	}

	a, err := Build(cfg, gormDB)
	if err != nil {
		return err
	}

	workers.NewLedgerWorker(gormDB, a.Services.LedgerService,
		time.Duration(cfg.Workers.LedgerReconcileInterval)*time.Minute).Start(ctx)
	workers.NewSessionWorker(gormDB, repositories.NewSessionRepository(),
		time.Duration(cfg.Workers.SessionSweepInterval)*time.Minute).Start(ctx)

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      a.Router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", srv.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server startup error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := a.Services.EmailProvider.Close(); err != nil {
		logger.Warn("Failed to close email provider", "error", err)
	}
	logger.Info("Server stopped")
	return nil
}

func initializeServices(cfg *config.Config) (*services.ServiceContainer, error) {
	emailProvider, err := newEmailProvider(cfg)
	if err != nil {
		return nil, err
	}
	notifier := services.NewEmailNotifier(emailProvider)

	// --- Репозитории ---
	userRepo := repositories.NewUserRepository()
	sessionRepo := repositories.NewSessionRepository()
	taskRepo := repositories.NewTaskRepository()
	paymentRepo := repositories.NewPaymentRepository()
	submissionRepo := repositories.NewDailySubmissionRepository()

	// --- Сервисы ---
	ledgerService := services.NewLedgerService(paymentRepo, userRepo, notifier)

	return &services.ServiceContainer{
		AuthService:       services.NewAuthService(userRepo, sessionRepo),
		TaskService:       services.NewTaskService(taskRepo, userRepo, ledgerService, notifier),
		LedgerService:     ledgerService,
		OnboardingService: services.NewOnboardingService(userRepo, qualification.RandomScorer{}),
		WorkerService:     services.NewWorkerService(userRepo, taskRepo, paymentRepo, sessionRepo, notifier),
		SubmissionService: services.NewSubmissionService(submissionRepo),
		Notifier:          notifier,
		EmailProvider:     emailProvider,
	}, nil
}

// newEmailProvider - gomail при включенном SMTP, иначе mock
func newEmailProvider(cfg *config.Config) (email.Provider, error) {
	if !cfg.Email.Enabled {
		logger.Warn("Email is disabled, using MOCK provider")
		return &MockEmailProvider{}, nil
	}

	templates, err := email.NewDefaultTemplateManager(cfg.Email.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	provider := email.NewGomailProvider(email.FromAppConfig(cfg), templates)
	if err := provider.Validate(); err != nil {
		return nil, fmt.Errorf("invalid smtp config: %w", err)
	}
	logger.Info("Email provider initialized", "host", cfg.Email.SMTPHost)
	return provider, nil
}

func initializeHandlers(cfg *config.Config, svc *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New(), svc.AuthService)
	authLimiter := middleware.NewRateLimiter(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.Burst)

	return &handlers.AppHandlers{
		HealthHandler:     handlers.NewHealthHandler(baseHandler),
		AuthHandler:       handlers.NewAuthHandler(baseHandler, svc.AuthService, authLimiter),
		OnboardingHandler: handlers.NewOnboardingHandler(baseHandler, svc.OnboardingService),
		TaskHandler:       handlers.NewTaskHandler(baseHandler, svc.TaskService),
		PaymentHandler:    handlers.NewPaymentHandler(baseHandler, svc.LedgerService),
		WorkerHandler:     handlers.NewWorkerHandler(baseHandler, svc.WorkerService),
		SubmissionHandler: handlers.NewSubmissionHandler(baseHandler, svc.SubmissionService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigin))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// SeedFirstAdmin создает первого админа из конфига, если его еще нет
func SeedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := strings.ToLower(strings.TrimSpace(cfg.FirstAdminEmail))
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	userRepo := repositories.NewUserRepository()
	_, err := userRepo.FindByEmail(db, adminEmail)
	if err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:             adminEmail,
		PasswordHash:      hashedPassword,
		AuthProvider:      models.AuthProviderEmail,
		FullName:          cfg.FirstAdminName,
		Skills:            models.StringList(nil),
		PreferredCurrency: "USD",
		Role:              models.UserRoleAdmin,
		AccountStatus:     models.AccountStatusActive,
	}
	if err := userRepo.Create(db, admin); err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Successfully created first admin user", "email", adminEmail)
	return nil
}
