package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"goldpredict/internal/alert"
	"goldpredict/internal/config"
	"goldpredict/internal/feed"
	"goldpredict/internal/predictor"
	"goldpredict/internal/recorder"
	"goldpredict/internal/scheduler"
	"goldpredict/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		errLogger := zerolog.New(os.Stderr)
		errLogger.Fatal().Err(err).Msg("load config")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	if os.Getenv("LOG_PRETTY") == "true" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("config validation")
	}
	logger.Info().Str("symbol", cfg.DataSource.Symbol).Msg("goldpredict starting")

	// Data feed: Yahoo history, tiered quote chain ending in synthetic.
	yahoo := feed.NewYahooFetcher(cfg.Proxy)
	sources := []feed.QuoteSource{yahoo}
	if cfg.DataSource.MetalsBaseURL != "" {
		sources = append(sources, feed.NewMetalsFetcher(cfg.DataSource.MetalsBaseURL, cfg.DataSource.MetalsAPIKey, cfg.Proxy))
	}
	dataFeed := feed.New(yahoo, sources, feed.NewSynthetic(time.Now().UnixNano()), 15*time.Second, logger)

	engine := predictor.NewEngine(dataFeed, logger)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	notifier := alert.NewTelegramNotifier(cfg.Alert.BotToken, cfg.Alert.ChatID, cfg.Proxy, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(ctx, engine, rec, notifier, cfg.DataSource.Symbol,
		cfg.Schedule.Timeframes, cfg.Alert.MinConfidence, logger)
	if err := sched.Register(cfg.Schedule.SnapshotCron); err != nil {
		logger.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		logger.Info().Msg("RUN_ON_START enabled, executing snapshot now")
		go sched.RunSnapshotNow()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(engine, rec, cfg.DataSource.Symbol, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info().Msg("shutdown signal received, stopping")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	logger.Info().Msg("goldpredict stopped")
}
