package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"TickerBrief/internal/api"
	"TickerBrief/internal/config"
	"TickerBrief/internal/db"
	"TickerBrief/internal/digest"
	"TickerBrief/internal/email"
	"TickerBrief/internal/events"
	"TickerBrief/internal/metrics"
	"TickerBrief/internal/news"
	"TickerBrief/internal/worker"
	"TickerBrief/internal/workflow"
)

func main() {

	// ------------------------------------------------
	// Logger
	// ------------------------------------------------
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// ------------------------------------------------
	// Config
	// ------------------------------------------------
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// ------------------------------------------------
	// Root Context + Shutdown
	// ------------------------------------------------
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	}()

	// ------------------------------------------------
	// Run Store
	// ------------------------------------------------
	store, err := db.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer store.Close()

	// ------------------------------------------------
	// Event Bus
	// ------------------------------------------------
	bus, err := events.NewBus(cfg.RedisURL)
	if err != nil {
		logger.Fatal("redis connection failed", zap.Error(err))
	}
	defer bus.Close()

	// ------------------------------------------------
	// Metrics
	// ------------------------------------------------
	metrics.Init()

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	metricsServer := &http.Server{
		Addr:    ":" + cfg.MetricsPort,
		Handler: metricsMux,
	}

	go func() {
		logger.Info("metrics server started", zap.String("port", cfg.MetricsPort))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("metrics server error", zap.Error(err))
		}
	}()

	// ------------------------------------------------
	// Pipeline Collaborators (constructed once, reused)
	// ------------------------------------------------
	limiter := rate.NewLimiter(rate.Limit(cfg.NewsRateLimit), cfg.NewsRateLimit)
	fetcher := news.NewFetcher(cfg.NewsAPIKey, cfg.NewsAPIBaseURL, limiter, logger)

	synthesizer := digest.NewSynthesizer(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	sender, err := email.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	if err != nil {
		logger.Fatal("email sender init failed", zap.Error(err))
	}

	pipeline := workflow.NewPipeline(fetcher, synthesizer, sender, store, cfg.RetryAttempts, logger)

	// ------------------------------------------------
	// Run Channel (shared by intake loop + workers)
	// ------------------------------------------------
	runs := make(chan events.Event, 100)

	// ------------------------------------------------
	// Worker Pool
	// ------------------------------------------------
	var wg sync.WaitGroup

	worker.StartPool(
		ctx,
		&wg,
		cfg.WorkerCount,
		runs,
		pipeline,
		logger,
	)

	// ------------------------------------------------
	// Event Intake Loop
	// ------------------------------------------------
	go func() {
		for {
			ev, err := bus.Next(ctx, 5*time.Second)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				logger.Error("event intake error", zap.Error(err))
				continue
			}
			if ev == nil {
				continue
			}

			select {
			case runs <- *ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	// ------------------------------------------------
	// Scheduler (optional standing newsletter)
	// ------------------------------------------------
	if cfg.ScheduleEnabled && cfg.ScheduleEmail != "" {
		scheduler := events.NewScheduler(bus, cfg.ScheduleEmail, cfg.ScheduleFrequency, logger)
		go scheduler.Run(ctx)
	}

	// ------------------------------------------------
	// HTTP API Server
	// ------------------------------------------------
	apiHandler := &api.Handler{
		Bus:        bus,
		SigningKey: cfg.EventSigningKey,
		Log:        logger,
	}

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/events/newsletter-schedule", apiHandler.ScheduleNewsletter)
	apiMux.HandleFunc("/healthz", apiHandler.Healthz)

	apiServer := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: apiMux,
	}

	go func() {
		logger.Info("api server started", zap.String("port", cfg.APIPort))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("api server error", zap.Error(err))
		}
	}()

	// ------------------------------------------------
	// Wait for shutdown
	// ------------------------------------------------
	<-ctx.Done()

	logger.Info("shutting down services...")

	// Stop accepting new runs
	close(runs)

	// Wait workers to finish
	wg.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("api shutdown failed", zap.Error(err))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics shutdown failed", zap.Error(err))
	}

	logger.Info("application shutdown complete")
}
