package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"goldpredict/internal/feed"
	"goldpredict/internal/model"
	"goldpredict/internal/predictor"
	"goldpredict/internal/recorder"
)

type failingFetcher struct{}

func (failingFetcher) FetchCandles(ctx context.Context, symbol, timeframe string) ([]model.Candle, error) {
	return nil, context.DeadlineExceeded
}

func (failingFetcher) Name() string { return "failing" }

type memRecorder struct {
	rows []recorder.PredictionRow
}

func (m *memRecorder) Record(resp *model.PredictionResponse) error {
	m.rows = append(m.rows, recorder.PredictionRow{
		Symbol:    resp.Symbol,
		Timeframe: resp.Timeframe,
		Signal:    resp.Signal,
	})
	return nil
}

func (m *memRecorder) Recent(limit int) ([]recorder.PredictionRow, error) { return m.rows, nil }
func (m *memRecorder) Close() error                                      { return nil }

func TestSnapshotRecordsEveryTimeframe(t *testing.T) {
	// The synthetic fallback keeps snapshots working even with a dead
	// provider.
	f := feed.New(failingFetcher{}, nil, feed.NewSynthetic(1), time.Minute, zerolog.Nop())
	engine := predictor.NewEngine(f, zerolog.Nop())
	rec := &memRecorder{}

	s := New(context.Background(), engine, rec, nil, "XAUUSD", []string{"1h", "1d"}, 70, zerolog.Nop())
	s.RunSnapshotNow()

	if len(rec.rows) != 2 {
		t.Fatalf("recorded %d snapshots, want 2", len(rec.rows))
	}
	seen := map[string]bool{}
	for _, row := range rec.rows {
		if row.Symbol != "XAUUSD" {
			t.Errorf("symbol %q, want XAUUSD", row.Symbol)
		}
		seen[row.Timeframe] = true
	}
	if !seen["1h"] || !seen["1d"] {
		t.Errorf("timeframes recorded %v, want both 1h and 1d", seen)
	}
}

func TestRegisterRejectsBadCron(t *testing.T) {
	f := feed.New(failingFetcher{}, nil, feed.NewSynthetic(1), time.Minute, zerolog.Nop())
	engine := predictor.NewEngine(f, zerolog.Nop())

	s := New(context.Background(), engine, &memRecorder{}, nil, "XAUUSD", []string{"1h"}, 70, zerolog.Nop())
	if err := s.Register("not a cron spec"); err == nil {
		t.Error("expected error for invalid cron expression")
	}
	if err := s.Register("0 0 * * * *"); err != nil {
		t.Errorf("valid six-field spec rejected: %v", err)
	}
}
