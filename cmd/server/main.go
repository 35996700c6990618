package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"paircode/config"
	_ "paircode/docs"
	"paircode/internal/cache"
	"paircode/internal/repository"
	"paircode/internal/service"
	"paircode/internal/transport/rest"
	"paircode/internal/transport/ws"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// @title PairCode Session API
// @version 1.0
// @description Collaborative code session service: shareable 6-char codes, live sync over WebSocket
// @host localhost:8080
// @BasePath /
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Repositories and caches
	sessionRepo := repository.NewSessionRepo(db)
	sessionCache := cache.NewSessionCache(rdb)

	// Services
	sessionSvc := service.NewSessionService(sessionRepo, sessionCache)
	presence := service.NewPresenceTracker()

	// WebSocket hub and gateway (wsHub implements service.Broadcaster)
	wsHub := ws.NewHub()
	gateway := service.NewSyncGateway(sessionSvc, presence, wsHub)

	container := &rest.Container{
		SessionService: sessionSvc,
		Presence:       presence,
		WSHub:          wsHub,
		Gateway:        gateway,
	}
	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST   /sessions")
		log.Println("  GET    /sessions")
		log.Println("  GET    /sessions/{code}")
		log.Println("  POST   /sessions/{code}/join")
		log.Println("  PATCH  /sessions/{code}/content")
		log.Println("  PATCH  /sessions/{code}/language")
		log.Println("  PATCH  /sessions/{code}/title")
		log.Println("  DELETE /sessions/{code}")
		log.Println("  WS     /ws")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
