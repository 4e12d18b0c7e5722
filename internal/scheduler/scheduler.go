package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"goldpredict/internal/alert"
	"goldpredict/internal/model"
	"goldpredict/internal/predictor"
	"goldpredict/internal/recorder"
)

// Scheduler runs periodic prediction snapshots, persisting each one
// and alerting on strong non-HOLD signals.
type Scheduler struct {
	cron          *cron.Cron
	engine        *predictor.Engine
	recorder      recorder.Recorder
	notifier      *alert.TelegramNotifier
	symbol        string
	timeframes    []string
	minConfidence float64
	logger        zerolog.Logger
	ctx           context.Context
}

// New creates a Scheduler. The notifier may be nil or disabled; alerts
// are then skipped.
func New(ctx context.Context, engine *predictor.Engine, rec recorder.Recorder, notifier *alert.TelegramNotifier, symbol string, timeframes []string, minConfidence float64, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:          cron.New(cron.WithSeconds()),
		engine:        engine,
		recorder:      rec,
		notifier:      notifier,
		symbol:        symbol,
		timeframes:    timeframes,
		minConfidence: minConfidence,
		logger:        logger.With().Str("component", "scheduler").Logger(),
		ctx:           ctx,
	}
}

// Register adds the snapshot task under the given cron spec.
func (s *Scheduler) Register(snapshotCron string) error {
	if _, err := s.cron.AddFunc(snapshotCron, s.snapshotTask); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info().Msg("scheduler stopped")
}

// RunSnapshotNow executes the snapshot task immediately (manual
// trigger / run-on-start).
func (s *Scheduler) RunSnapshotNow() {
	s.snapshotTask()
}

func (s *Scheduler) snapshotTask() {
	for _, tf := range s.timeframes {
		resp, err := s.engine.Predict(s.ctx, s.symbol, tf)
		if err != nil {
			s.logger.Error().Err(err).Str("timeframe", tf).Msg("snapshot prediction failed")
			continue
		}

		if err := s.recorder.Record(resp); err != nil {
			s.logger.Error().Err(err).Str("timeframe", tf).Msg("record snapshot failed")
		}

		s.logger.Info().
			Str("timeframe", tf).
			Str("signal", string(resp.Signal)).
			Float64("confidence", resp.Confidence).
			Msg("snapshot recorded")

		if resp.Signal == model.SignalHold || resp.Confidence < s.minConfidence {
			continue
		}
		if s.notifier == nil || !s.notifier.Enabled() {
			continue
		}
		if err := s.notifier.SendWithRetry(s.ctx, alert.FormatSignalAlert(resp), 3); err != nil {
			s.logger.Error().Err(err).Msg("send signal alert failed")
		}
	}
}
