package recorder

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"goldpredict/internal/model"
)

func testResponse(symbol, timeframe string, signal model.SignalType) *model.PredictionResponse {
	return &model.PredictionResponse{
		Symbol:         symbol,
		Timeframe:      timeframe,
		CurrentPrice:   2650.25,
		PredictedPrice: 2655.75,
		ChangePercent:  0.2,
		Direction:      model.DirectionUp,
		Confidence:     82.5,
		Signal:         signal,
		RMSE:           1.234,
		MAE:            0.987,
	}
}

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSQLiteRecorder_RecordAndRecent(t *testing.T) {
	r := openTestRecorder(t)

	if err := r.Record(testResponse("XAUUSD", "1h", model.SignalBuy)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := r.Record(testResponse("XAUUSD", "1d", model.SignalHold)); err != nil {
		t.Fatalf("record: %v", err)
	}

	rows, err := r.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	row := rows[0]
	if row.ID == "" {
		t.Error("row missing generated id")
	}
	if row.Symbol != "XAUUSD" {
		t.Errorf("symbol %q, want XAUUSD", row.Symbol)
	}
	if row.CurrentPrice != 2650.25 || row.PredictedPrice != 2655.75 {
		t.Errorf("prices %.2f/%.2f not preserved", row.CurrentPrice, row.PredictedPrice)
	}
	if row.Direction != model.DirectionUp {
		t.Errorf("direction %q, want UP", row.Direction)
	}
	if row.Timestamp.IsZero() {
		t.Error("row missing timestamp")
	}
}

func TestSQLiteRecorder_RecentLimit(t *testing.T) {
	r := openTestRecorder(t)
	for i := 0; i < 5; i++ {
		if err := r.Record(testResponse("XAUUSD", "1h", model.SignalBuy)); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	rows, err := r.Recent(3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("got %d rows, want limit 3", len(rows))
	}

	// Non-positive limit falls back to the default.
	rows, err = r.Recent(0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rows) != 5 {
		t.Errorf("got %d rows, want all 5 under default limit", len(rows))
	}
}

func TestSQLiteRecorder_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	r, err := NewSQLiteRecorder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := r.Record(testResponse("XAUUSD", "1h", model.SignalSell)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Migration on reopen must be a no-op that keeps existing rows.
	r, err = NewSQLiteRecorder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r.Close()

	rows, err := r.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows after reopen, want 1", len(rows))
	}
	if rows[0].Signal != model.SignalSell {
		t.Errorf("signal %q, want SELL", rows[0].Signal)
	}
}
