package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"fire_tracker/internal/config"
	"fire_tracker/internal/logger"
	"fire_tracker/internal/middleware"
	"fire_tracker/internal/observability"
	"fire_tracker/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	// Initialize structured logging to file
	log, accessLog := logger.Setup(cfg.Log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to the database
	db, err := config.OpenDB(cfg.DB, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	r := routes.SetupRouter(routes.Deps{
		Config:    cfg,
		DB:        db,
		Clock:     clockwork.NewRealClock(),
		Metrics:   observability.NewMetrics(prometheus.DefaultRegisterer),
		Gatherer:  prometheus.DefaultGatherer,
		AccessLog: accessLog,
	})

	// Wrap with CORS
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: middleware.EnableCORS(r, cfg.CORSOrigins),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http server shutdown error")
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.WithError(err).Error("database close error")
		}
	}

	log.Info("shutdown complete")
}
