package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"chatbot-service/internal/chat"
	"chatbot-service/internal/handler"
	"chatbot-service/internal/middleware"
	"chatbot-service/internal/repository"
	"chatbot-service/pkg/config"
	"chatbot-service/pkg/database"
	"chatbot-service/pkg/logger"
	"chatbot-service/pkg/metrics"
	"chatbot-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger.InitLogger(cfg)
	log := logger.GetLogger()
	defer log.Sync()
	log.Info("Starting chatbot service...", cfg.LogConfig()...)

	prometheus.InitMetrics(cfg)
	httpMetrics := metrics.NewHTTPMetrics("chatbot-service")
	log.Info("Prometheus metrics initialized", zap.String("metrics_prefix", cfg.Metrics.Prefix))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := buildRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize dataset", zap.Error(err))
	}
	defer database.Close()

	loc, err := cfg.Chat.Location()
	if err != nil {
		log.Fatal("Invalid chat time zone", zap.Error(err))
	}
	responder := chat.NewResponder(repo, chat.WithSettings(chat.Settings{
		LowStockThreshold:   cfg.Chat.LowStockThreshold,
		ExpiryWindowDays:    cfg.Chat.ExpiryWindowDays,
		ArrivalLookbackDays: cfg.Chat.ArrivalLookbackDays,
		Currency:            cfg.Chat.Currency,
		Location:            loc,
	}))

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSMiddleware(cfg.CORS.AllowOrigins))
	e.Use(middleware.RequestIDMiddleware)
	e.Use(httpMetrics.Middleware())
	e.Use(logger.Middleware())

	handler.RegisterRoutes(e, handler.NewChatHandler(responder))

	go func() {
		port := cfg.Server.Port
		log.Info("Starting server", zap.String("port", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}

// buildRepository returns the in-memory dataset or the postgres-backed one,
// depending on STORE_DRIVER
func buildRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Repository, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := database.InitDB(cfg)
		if err != nil {
			return nil, err
		}
		log.Info("Database connection established and migrations completed",
			zap.String("db_host", cfg.DB.Host),
			zap.String("db_name", cfg.DB.DBName))

		if cfg.Store.SeedOnStart {
			seed, err := repository.LoadSeed(cfg.Store.SeedFile, cfg.Store.ProductsCSV)
			if err != nil {
				return nil, err
			}
			if err := repository.SeedStore(ctx, db, seed); err != nil {
				return nil, err
			}
			log.Info("Database seeded",
				zap.Int("products", len(seed.Products)),
				zap.Int("invoices", len(seed.Invoices)))
		}
		return repository.NewGormRepository(db), nil

	default:
		seed, err := repository.LoadSeed(cfg.Store.SeedFile, cfg.Store.ProductsCSV)
		if err != nil {
			return nil, err
		}
		prometheus.SetDatasetRecords("products", len(seed.Products))
		prometheus.SetDatasetRecords("invoices", len(seed.Invoices))
		log.Info("In-memory dataset loaded",
			zap.String("seed_file", cfg.Store.SeedFile),
			zap.Int("products", len(seed.Products)),
			zap.Int("invoices", len(seed.Invoices)))
		return repository.NewMemoryRepository(seed), nil
	}
}
