package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	lineupapi "github.com/futbolformaciones/lineup-service/lineup/api"
	"github.com/futbolformaciones/lineup-service/lineup/cache"
	"github.com/futbolformaciones/lineup-service/lineup/service"
	"github.com/futbolformaciones/lineup-service/lineup/store"
	"github.com/futbolformaciones/lineup-service/lineup/upload"
	"github.com/futbolformaciones/lineup-service/shared/api"
	"github.com/futbolformaciones/lineup-service/shared/config"
	"github.com/futbolformaciones/lineup-service/shared/logging"
	"github.com/futbolformaciones/lineup-service/shared/mongodb"
	"github.com/futbolformaciones/lineup-service/shared/redis"
)

func main() {
	// 1. Configuration
	_ = godotenv.Load() // .env is optional
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel, "lineup-service")
	if err != nil {
		os.Stderr.WriteString("failed to set up logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// 2. MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoURI, cfg.MongoDatabase, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect MongoDB client")
		}
	}()

	// 3. Redis (optional; the service degrades to uncached reads)
	var playerCache *cache.PlayerCache
	if cfg.RedisAddr != "" {
		redisClient, err := redis.NewClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, running without player cache")
		} else {
			defer redisClient.Close()
			playerCache = cache.New(redisClient, cfg.CacheTTL, logger)
		}
	}

	// 4. Photo storage
	photoStorage := upload.NewLocalStorage(cfg.UploadDir, cfg.PublicBaseURL)
	if err := photoStorage.Init(); err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare upload directory")
	}

	// 5. Stores and services
	playerStore := store.NewPlayerStore(mongoClient.Collection(cfg.PlayersCollection))
	formationStore := store.NewFormationStore(mongoClient.Collection(cfg.FormationsCollection))
	matchStore := store.NewMatchStore(mongoClient.Collection(cfg.MatchesCollection))

	playerService := service.NewPlayerService(playerStore, playerCache, logger)
	formationService := service.NewFormationService(formationStore, playerStore, logger)
	matchService := service.NewMatchService(matchStore, playerStore, logger)

	// 6. HTTP server
	server := api.NewBaseServer(cfg.ListenAddr, logger)
	handlers := lineupapi.NewHandlers(playerService, formationService, matchService, photoStorage, logger)
	handlers.RegisterRoutes(server.Router)
	server.Router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(photoStorage.Dir()))),
	).Methods(http.MethodGet)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	logger.Info().Msg("lineup service stopped")
}
