package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/config"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/handler"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/handler/middleware"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/repository/postgres"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/service"
	"github.com/Raj-Shinde-045/office-do-or-due/pkg/blacklist"
	"github.com/Raj-Shinde-045/office-do-or-due/pkg/email"
	"github.com/Raj-Shinde-045/office-do-or-due/pkg/jwt"
	"github.com/Raj-Shinde-045/office-do-or-due/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}()
	log.Println("✓ Database connection established")

	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}()
	log.Println("✓ Redis connection established")

	validate := validator.NewValidator()

	// Repositories
	companyRepo := postgres.NewCompanyRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	credentialRepo := postgres.NewCredentialRepository(db)
	joinRequestRepo := postgres.NewJoinRequestRepository(db)

	tokenService, err := jwt.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	tokenBlacklist := blacklist.NewTokenBlacklist(redisClient)
	log.Println("✓ Token blacklist service initialized")

	var mailer email.EmailService
	if cfg.Email.Enabled {
		mailer, err = email.NewResendEmailService(&email.EmailConfig{
			APIKey:    cfg.Email.APIKey,
			FromName:  cfg.Email.FromName,
			FromEmail: cfg.Email.FromEmail,
			ResetURL:  cfg.Email.ResetURL,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize email service: %v", err)
			log.Println("Email functionality will be disabled")
			mailer = nil
		} else {
			log.Println("✓ Email service initialized (Resend)")
		}
	} else {
		log.Println("ℹ Email service disabled (set EMAIL_ENABLED=true to enable)")
	}

	// Services
	registryService := service.NewRegistryService(companyRepo, profileRepo)
	profileService := service.NewProfileService(profileRepo)
	authService := service.NewAuthService(credentialRepo, profileService, tokenService, tokenBlacklist, mailer)
	identityService := service.NewIdentityService(registryService, profileRepo, credentialRepo, authService)
	joinRequestService := service.NewJoinRequestService(companyRepo, joinRequestRepo, profileRepo, authService, mailer)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validate)
	signupHandler := handler.NewSignupHandler(identityService, registryService, validate)
	companyHandler := handler.NewCompanyHandler(registryService, profileService, validate)
	profileHandler := handler.NewProfileHandler(profileService)
	joinRequestHandler := handler.NewJoinRequestHandler(joinRequestService, validate)
	healthHandler := handler.NewHealthHandler()

	app := fiber.New(fiber.Config{
		AppName:      "Office Do-or-Due Access Service v1.0",
		ErrorHandler: customErrorHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	app.Use(middleware.RecoveryMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CORSMiddleware())

	authMiddleware := middleware.AuthMiddleware(tokenService, tokenBlacklist)
	optionalAuth := middleware.OptionalAuthMiddleware(tokenService, tokenBlacklist)
	requireManager := middleware.RequireRoles(profileService, domain.RoleManager, domain.RoleAdmin)
	requireSuperAdmin := middleware.RequireSuperAdmin(profileService)

	handler.SetupRoutes(
		app,
		authHandler,
		signupHandler,
		companyHandler,
		profileHandler,
		joinRequestHandler,
		healthHandler,
		authMiddleware,
		optionalAuth,
		requireManager,
		requireSuperAdmin,
	)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.Printf("🚀 Server starting on http://localhost%s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		if err := app.Listen(addr); err != nil {
			log.Printf("❌ Server failed to start: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("⏳ Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✓ Server stopped")
}

// initDB initializes PostgreSQL database connection with retry logic
func initDB(cfg *config.Config) (*sqlx.DB, error) {
	dsn := cfg.Database.DSN()

	var db *sqlx.DB
	var err error

	maxRetries := 5
	retryInterval := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			break
		}

		log.Printf("Failed to connect to database (attempt %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("Error closing database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// initRedis initializes Redis client and verifies connection
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			log.Printf("Error closing Redis after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

// customErrorHandler handles Fiber errors
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	log.Printf("Error handling request [%s %s]: %v", c.Method(), c.Path(), err)

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
