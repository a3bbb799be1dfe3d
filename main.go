package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/techbridge-dev/techbridge/pkg/auth"
	"github.com/techbridge-dev/techbridge/pkg/config"
	"github.com/techbridge-dev/techbridge/pkg/database"
	"github.com/techbridge-dev/techbridge/pkg/handlers"
	"github.com/techbridge-dev/techbridge/pkg/logging"
	"github.com/techbridge-dev/techbridge/pkg/middleware"
	"github.com/techbridge-dev/techbridge/pkg/repositories"
	"github.com/techbridge-dev/techbridge/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("bind_addr", cfg.BindAddr),
		zap.String("port", cfg.Port),
		zap.String("database_url", logging.SanitizeConnectionString(cfg.Database.URL())))

	ctx := context.Background()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.URL(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.Database.URL(), cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories.
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewStudentProfileRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	teamRepo := repositories.NewTeamRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	// Services.
	tokenService := auth.NewTokenService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
		cfg.Auth.Issuer,
		logger)
	authService := services.NewAuthService(userRepo, tokenService, logger)
	profileService := services.NewStudentProfileService(profileRepo, logger)
	projectService := services.NewProjectService(db, projectRepo, roleRepo, logger)
	applicationService := services.NewApplicationService(db, applicationRepo, roleRepo, profileRepo, teamRepo, logger)
	teamService := services.NewTeamService(db, teamRepo, projectRepo, roleRepo, logger)
	taskService := services.NewTaskService(db, taskRepo, projectRepo, teamRepo, logger)
	paymentService := services.NewPaymentService(db, projectRepo, roleRepo, teamRepo, logger)

	if err := authService.SeedAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, cfg.Seed.AdminName); err != nil {
		logger.Fatal("Failed to seed admin account", zap.Error(err))
	}

	authMiddleware := auth.NewMiddleware(tokenService, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg).RegisterRoutes(mux)
	handlers.NewAuthHandler(authService, logger).RegisterRoutes(mux)
	handlers.NewProfileHandler(profileService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewProjectHandler(projectService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewApplicationHandler(applicationService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewTeamHandler(teamService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewTaskHandler(taskService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewPaymentHandler(paymentService, logger).RegisterRoutes(mux, authMiddleware)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting techbridge", zap.String("addr", addr), zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds the application logger. Local environments get the
// human-readable development encoder.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" || env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
