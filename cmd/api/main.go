package main

import (
	"context"
	"log"

	"cartalk/config"
	"cartalk/internal/genai"
	"cartalk/internal/handler"
	"cartalk/internal/redis"
	"cartalk/internal/repository"
	"cartalk/internal/server"
	"cartalk/internal/services"
	"cartalk/pkg/database"
	"cartalk/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l := logger.New(cfg.AppMode)
	defer l.Logger.Sync()

	ctx := context.Background()

	client, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.DBName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, cfg)

	// Model client is built once here and injected; handlers never touch
	// package-level state.
	model := genai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	assistantService := services.NewAssistantService(model, l)

	var limiter *redis.RateLimiter
	if cfg.RateLimitEnabled() {
		rdb := redis.NewClient(redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		limitCfg := redis.DefaultRateLimitConfig()
		limitCfg.AuthLimit = cfg.AuthRateLimit
		limitCfg.AskLimit = cfg.AskRateLimit
		limiter = redis.NewRateLimiter(rdb, limitCfg)
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Assistant: handler.NewAssistantHandler(assistantService),
		Health:    handler.NewHealthHandler(client),
	}, authService, limiter)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}
