package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"career-compass-be/internal/bootstrap"
	"career-compass-be/internal/config"
	"career-compass-be/internal/pkg/logger"
	"career-compass-be/internal/server"
	"career-compass-be/internal/tracer"
	"career-compass-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	defer sysLogger.Sync()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Telemetry, sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.Debug)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg, sysLogger)
	if err != nil {
		log.Panicf("Unable to build container: %v", err)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start Background Services
	go func() {
		if err := container.InsightService.Consume(ctx); err != nil {
			sysLogger.Error("MAIN", "Insight consumer stopped", map[string]interface{}{"error": err.Error()})
		}
	}()
	container.InsightService.StartRefresher(ctx, time.Hour)
	if container.NotificationService != nil {
		if err := container.NotificationService.Start(ctx); err != nil {
			sysLogger.Error("MAIN", "Notification consumer failed to start", map[string]interface{}{"error": err.Error()})
		}
	}

	// 6. Initialize Server
	srv, err := server.New(cfg, container)
	if err != nil {
		log.Panicf("Unable to initialize server: %v", err)
	}

	go func() {
		if err := srv.Run(); err != nil {
			sysLogger.Error("MAIN", "Server stopped", map[string]interface{}{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	sysLogger.Info("MAIN", "Shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sysLogger.Error("MAIN", "Graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
