package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pizzeria-app/internal/auth"
	"pizzeria-app/internal/config"
	"pizzeria-app/internal/db"
	"pizzeria-app/internal/logger"
	"pizzeria-app/internal/server"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	dbConn, err := db.ConnectAndMigrate(cfg, zl)
	if err != nil {
		zl.Fatal("database connection failed", zap.Error(err))
	}
	if *migrateOnlyFlag {
		zl.Info("migrations completed; exiting as requested")
		return
	}

	auth.Configure(cfg.SessionSecret, cfg.SessionTimeout)

	zl.Info("starting server",
		zap.String("app", cfg.AppName),
		zap.String("env", cfg.Env),
		zap.String("port", cfg.Port),
	)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: server.New(dbConn, zl)}

	go func() {
		zl.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("error during shutdown", zap.Error(err))
	}
	zl.Info("server gracefully stopped")
}
