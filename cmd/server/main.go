package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"nafs-registration.backend/internal/config"
	"nafs-registration.backend/internal/domain/repositories"
	"nafs-registration.backend/internal/infrastructure/filestore"
	"nafs-registration.backend/internal/infrastructure/models"
	"nafs-registration.backend/internal/infrastructure/paystack"
	gormrepos "nafs-registration.backend/internal/infrastructure/repositories"
	"nafs-registration.backend/internal/interfaces/http/handlers"
	"nafs-registration.backend/internal/interfaces/http/middleware"
	"nafs-registration.backend/internal/pricing"
	"nafs-registration.backend/internal/usecases"
	"nafs-registration.backend/pkg/jwt"
	"nafs-registration.backend/pkg/logger"
	"nafs-registration.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt:    false,
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis (optional, backs the idempotency middleware)
	if cfg.Redis.URL != "" {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		logger.Info(context.Background(), "Redis initialized")
	} else {
		logger.Info(context.Background(), "Redis not configured, idempotency replay disabled")
	}

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Select persistence backend
	regRepo, userRepo, cleanup, err := buildStores(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Payment gateway and pricing
	gateway := paystack.NewClient(cfg.Paystack.SecretKey, cfg.Paystack.BaseURL, cfg.Paystack.Timeout)
	engine := pricing.MustNewEngine(pricing.DefaultConfig())

	// Initialize usecases
	provisioningUsecase := usecases.NewProvisioningUsecase(userRepo, regRepo)
	registrationUsecase := usecases.NewRegistrationUsecase(regRepo, gateway, engine, provisioningUsecase)
	authUsecase := usecases.NewAuthUsecase(userRepo, regRepo, jwtService, cfg.Admin.SetupKey)

	// Initialize handlers
	registrationHandler := handlers.NewRegistrationHandler(registrationUsecase, engine)
	paymentHandler := handlers.NewPaymentHandler(registrationUsecase)
	authHandler := handlers.NewAuthHandler(authUsecase)
	adminHandler := handlers.NewAdminHandler(registrationUsecase)
	schoolHandler := handlers.NewSchoolHandler(registrationUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerAPIV1Routes(r, routeDeps{
		registrationHandler: registrationHandler,
		paymentHandler:      paymentHandler,
		authHandler:         authHandler,
		adminHandler:        adminHandler,
		schoolHandler:       schoolHandler,
		authMiddleware:      authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
	}()

	// Start server
	log.Printf("NAFS Registration Backend starting on port %s", cfg.Server.Port)
	log.Printf("API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// buildStores wires the configured persistence backend. "postgres" uses
// GORM; "file" keeps everything in JSON files under the data dir, which
// is enough for a single-instance deployment without a database.
func buildStores(cfg *config.Config) (repositories.RegistrationRepository, repositories.UserRepository, func(), error) {
	switch cfg.Store.Backend {
	case "file":
		regStore, err := filestore.NewRegistrationStore(cfg.Store.DataDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open registration store: %w", err)
		}
		userStore, err := filestore.NewUserStore(cfg.Store.DataDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open user store: %w", err)
		}
		log.Printf("Using file store at %s", cfg.Store.DataDir)
		return regStore, userStore, func() {}, nil

	case "postgres":
		db, err := openDB(cfg.Database.URL())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		sqlDB, err := getStdDB(db)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to get generic database object: %w", err)
		}

		if err := sqlDB.Ping(); err != nil {
			log.Printf("Database not available: %v (endpoints will return errors)", err)
		} else {
			log.Println("Connected to PostgreSQL via GORM")
		}

		if err := db.AutoMigrate(&models.Registration{}, &models.User{}); err != nil {
			log.Printf("Auto-migration failed: %v", err)
		}

		return gormrepos.NewRegistrationRepository(db), gormrepos.NewUserRepository(db), func() { sqlDB.Close() }, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
