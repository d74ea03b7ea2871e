package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/eleclys/Chatroom/internal/api"
	"github.com/eleclys/Chatroom/internal/config"
	"github.com/eleclys/Chatroom/internal/database"
	"github.com/eleclys/Chatroom/internal/gateway"
	redisclient "github.com/eleclys/Chatroom/internal/redis"
	"github.com/eleclys/Chatroom/internal/service"
	"github.com/eleclys/Chatroom/internal/storage"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))
	ctx := context.Background()

	// --- Infrastructure ---

	pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("schema: %v", err)
	}

	rdb, err := redisclient.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	store, err := storage.NewBlobStore(cfg)
	if err != nil {
		log.Fatalf("minio: %v", err)
	}

	// --- Repositories ---

	messages := database.NewMessageRepository(pool)
	files := database.NewFileRepository(pool)

	// --- Core ---

	hub := gateway.NewHub(messages, files, rdb)
	room := service.NewRoomService(messages, files, store, hub)
	hub.BindRouter(room)
	admin := service.NewAdminService(messages, files, store, hub)

	// --- Handlers ---

	deps := &api.Dependencies{
		Admin:  api.NewAdminHandler(admin),
		Upload: api.NewUploadHandler(room),
		Hub:    hub,
		Redis:  rdb,
	}

	// --- Echo ---

	e := echo.New()
	e.HidePort = true
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	api.SetupRouter(e, deps)

	// --- Start ---

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("chatroom starting on %s", cfg.ServerAddr)
		if err := e.Start(cfg.ServerAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-sigCtx.Done()
	log.Println("shutting down...")
	if err := e.Shutdown(context.Background()); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
