package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"video-catalog-service/internal/adapters/youtube"
	"video-catalog-service/internal/api"
	"video-catalog-service/internal/auth"
	"video-catalog-service/internal/config"
	"video-catalog-service/internal/messaging"
	"video-catalog-service/internal/services"
	"video-catalog-service/internal/storage"
	"video-catalog-service/pkg/logger"
)

func main() {
	log := logger.NewLogger(logger.Config{
		Level:       os.Getenv("LOG_LEVEL"),
		ServiceName: "video-catalog",
		JSONFormat:  true,
	})

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal("failed to load configuration: %v", err)
	}

	db, err := storage.NewDBConnection(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to the database: %v", err)
	}
	defer db.Close()

	if err := storage.EnsureSchema(db); err != nil {
		log.Fatal("failed to ensure database schema: %v", err)
	}

	repos := storage.NewRepositories(db)
	authService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryMinutes)

	youtubeClient, err := youtube.NewClient(cfg.YouTube)
	if err != nil {
		log.Fatal("failed to initialize the video platform client: %v", err)
	}

	var producer *messaging.KafkaProducer
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = messaging.NewKafkaProducer(cfg.Kafka)
		if err != nil {
			log.Warn("event publishing disabled, kafka unavailable: %v", err)
			producer = nil
		} else {
			defer producer.Close()
		}
	}

	videoService := services.NewVideoService(repos.VideoRepository, youtubeClient, producer, log)

	router, err := api.NewRouter(cfg, videoService, authService, log)
	if err != nil {
		log.Fatal("failed to build the router: %v", err)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("video catalog service listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down video catalog service")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown error: %v", err)
	}

	log.Info("video catalog service stopped")
}
