package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/trip-assistant-poc/server/internal/agent/assistant"
	"github.com/trip-assistant-poc/server/internal/agent/documents"
	"github.com/trip-assistant-poc/server/internal/agent/graph"
	"github.com/trip-assistant-poc/server/internal/agent/metrics"
	"github.com/trip-assistant-poc/server/internal/agent/repo"
	"github.com/trip-assistant-poc/server/internal/api"
	"github.com/trip-assistant-poc/server/internal/config"
	logx "github.com/trip-assistant-poc/server/pkg/logger"
	"github.com/trip-assistant-poc/server/pkg/mailer"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: cfg.Environment()})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewPrometheusRecorder(reg)

	runner, err := graph.BuildResponseGraph(ctx, graph.Config{
		APIKey:          cfg.APIKey,
		BaseURL:         cfg.BaseURL,
		ClassifierModel: cfg.Classifier,
		AnswerModel:     cfg.Answer,
		LLMTimeout:      cfg.Agent.LLMTimeout,
		Recorder:        recorder,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build graph")
	}

	rdb, err := cfg.Redis.Connect(ctx)
	if err != nil {
		logx.Fatal().Err(err).Str("url", cfg.Redis.URL).Msg("Failed to initialise Redis client")
	}
	defer rdb.Close()
	logx.Info().Msg("Connected to Redis successfully")

	opts := []assistant.Option{
		assistant.WithMessageRepository(repo.NewRedisMessageRepository(rdb, cfg.Redis.RecordTTL)),
		assistant.WithFeedbackRepository(repo.NewRedisFeedbackRepository(rdb, cfg.Redis.RecordTTL)),
		assistant.WithRecorder(recorder),
		assistant.WithAnswerCache(cfg.Agent.AnswerCacheTTL),
	}
	if cfg.Mail.Enabled() {
		opts = append(opts, assistant.WithNotifier(mailer.NewFeedbackNotifier(
			cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.FeedbackEmail,
		)))
	} else {
		logx.Info().Msg("Feedback email disabled: SMTP_HOST or FEEDBACK_EMAIL not set")
	}

	svc, err := assistant.New(runner, documents.Load(cfg.Agent.DocumentsDir), opts...)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to create assistant")
	}

	server := api.New(api.Config{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Gatherer:       reg,
		RateLimitRPS:   cfg.HTTP.RateLimitRPS,
		RateLimitBurst: cfg.HTTP.RateLimitBurst,
	}, svc)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(":" + cfg.HTTP.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("HTTP server stopped")
		}
	case <-ctx.Done():
		logx.Info().Msg("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
