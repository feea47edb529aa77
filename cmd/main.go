package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"devconnect/internal/config"
	mongodb "devconnect/internal/database/mongo"
	redisdb "devconnect/internal/database/redis"
	"devconnect/internal/events"
	"devconnect/internal/handlers"
	"devconnect/internal/middleware"
	"devconnect/internal/repository"
	"devconnect/internal/service"
	"devconnect/pkg/discovery"

	"github.com/gofiber/fiber/v3"
)

func setupLogging(logDir string) (*os.File, error) {
	err := os.MkdirAll(logDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	logFileName := fmt.Sprintf("log_%s.log", time.Now().Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	cfg := config.ServiceConfig

	logFile, err := setupLogging(cfg.LogDir)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	eventPublisher, err := events.NewEventPublisher(cfg.RabbitMQURI())
	if err != nil {
		log.Printf("Warning: event publisher unavailable: %v", err)
		eventPublisher, _ = events.NewEventPublisher("")
	}
	defer eventPublisher.Close()

	userRepo := repository.NewUserRepository(mongodb.Mongo_Database)
	profileRepo := repository.NewProfileRepository(mongodb.Mongo_Database)
	postRepo := repository.NewPostRepository(mongodb.Mongo_Database)
	redisRepo := repository.NewRedisRepo(redisdb.Redis_Client)

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 30*time.Second)
	for _, indexed := range []interface {
		CreateIndexes(ctx context.Context) error
	}{userRepo, profileRepo, postRepo} {
		if err := indexed.CreateIndexes(indexCtx); err != nil {
			log.Printf("Warning: failed to create indexes: %v", err)
		}
	}
	indexCancel()

	jwtService := service.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)
	userService := service.NewUserService(userRepo, redisRepo, eventPublisher, cfg.LoginLockMinutes)
	profileService := service.NewProfileService(profileRepo, userRepo, eventPublisher)
	postService := service.NewPostService(postRepo, eventPublisher)

	auth := middleware.NewAuthMiddleware(jwtService, userRepo)

	app := fiber.New(fiber.Config{})

	app.Get("/", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("devconnect API")
	})

	handlers.NewUserHandler(userService, jwtService).RegisterRoutes(app, auth)
	handlers.NewProfileHandler(profileService).RegisterRoutes(app, auth)
	handlers.NewPostHandler(postService).RegisterRoutes(app, auth)

	if err := discovery.ServiceDiscovery.Register(); err != nil {
		log.Printf("Warning: consul registration failed: %v", err)
	}

	shutdownChan := make(chan os.Signal, 1)
	doneChan := make(chan bool, 1)

	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
		doneChan <- true
	}()

	<-shutdownChan
	log.Println("Shutting down server...")

	if err := discovery.ServiceDiscovery.Deregister(); err != nil {
		log.Printf("Error deregistering from Consul: %v", err)
	}

	if err := app.Shutdown(); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	mongodb.DisconnectMongo()

	<-doneChan
	log.Println("Server exited, goodbye!")
}
