package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/acme/invoicehub/internal/adapter/handler"
	"github.com/acme/invoicehub/internal/adapter/storage"
	"github.com/acme/invoicehub/internal/adapter/token"
	"github.com/acme/invoicehub/internal/config"
	"github.com/acme/invoicehub/internal/core/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MySQL
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("open mysql", zap.Error(err))
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("ping mysql", zap.Error(err))
	}
	logger.Info("connected to mysql")

	// Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("ping redis", zap.Error(err))
	}
	logger.Info("connected to redis")

	// Adapters
	store := storage.NewMySQLAdapter(db)
	cache := storage.NewRedisAdapter(rdb, cfg.ListingCacheTTL)
	tokens := token.NewJWTCodec([]byte(cfg.JWTSecret), cfg.SessionTTL)

	// Services
	invoiceService := service.NewInvoiceService(store, store, cache, logger)
	authService := service.NewAuthService(store, tokens, cfg.BcryptCost)

	// HTTP
	h := handler.NewHTTPHandler(invoiceService, authService, logger)
	guard := handler.NewSessionGuard(tokens)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.NewRouter(h, guard),
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("http server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}

	rdb.Close()
	db.Close()
	logger.Info("connections closed")
}
