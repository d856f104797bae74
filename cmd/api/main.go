package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"likebot-api/internal/api"
	"likebot-api/internal/api/handlers"
	"likebot-api/internal/bot"
	"likebot-api/internal/config"
	"likebot-api/internal/models"
	"likebot-api/internal/repository"
	"likebot-api/internal/services"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := config.NewAppConfig()

	// Durable stores: Postgres when configured, JSON files otherwise.
	var policyRepo repository.PolicyRepository
	var usageRepo repository.UsageRepository
	if cfg.DatabaseURL != "" {
		db, err := initDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		policyRepo = repository.NewPolicyRepository(db)
		usageRepo = repository.NewUsageRepository(db)
	} else {
		policyRepo = repository.NewFilePolicyRepository(cfg.DataDir)
		usageRepo = repository.NewFileUsageRepository(cfg.DataDir)
	}

	// Initialize services
	policyService := services.NewPolicyService(policyRepo, config.DefaultDailyLimit)
	usageService := services.NewUsageService(usageRepo)
	gateService := services.NewGateService(policyService, usageService)
	likeService := services.NewLikeService(cfg.LikeAPIBaseURL, cfg.LikeAPIKey, cfg.LikeAPITimeout)

	secret := cfg.AdminJWTSecret
	if secret == "" {
		secret = generateSecureSecret(32)
		log.Print("Warning: ADMIN_JWT_SECRET not set, admin tokens will not survive a restart")
	}
	tokenService := services.NewTokenService(secret)

	var cacheService services.CacheService
	cacheCfg := config.NewCacheConfig()
	if cacheCfg.Enabled() {
		redisCache, err := services.NewRedisCacheService(cacheCfg)
		if err != nil {
			log.Printf("Warning: redis unavailable, stats caching disabled: %v", err)
		} else {
			cacheService = redisCache
		}
	}

	// Initialize handlers and router
	healthHandler := handlers.NewHealthHandler(usageService)
	adminHandler := handlers.NewAdminHandler(policyService, usageService, cacheService, cacheCfg.StatsTTL)
	router := api.SetupRoutes(healthHandler, adminHandler, tokenService, policyService)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		MaxAge: 300,
	})

	srv := &http.Server{
		Handler:      corsMiddleware.Handler(router),
		Addr:         ":" + cfg.HTTPPort,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// Start the Discord bot
	if cfg.DiscordToken == "" {
		log.Fatal("DISCORD_BOT_TOKEN environment variable is required")
	}
	likeBot, err := bot.New(cfg, gateService, policyService, usageService, likeService, tokenService)
	if err != nil {
		log.Fatal("Failed to create bot:", err)
	}
	if err := likeBot.Start(); err != nil {
		log.Fatal("Failed to connect to Discord:", err)
	}

	go func() {
		log.Printf("Server starting on port %s...", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Print("Shutting down...")
	if err := likeBot.Stop(); err != nil {
		log.Printf("Error closing Discord session: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
}

func initDB(dbURL string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.PolicyConfig{}, &models.UserUsage{}); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func generateSecureSecret(length int) string {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		log.Fatal("Failed to generate admin secret:", err)
	}
	return hex.EncodeToString(b)
}
