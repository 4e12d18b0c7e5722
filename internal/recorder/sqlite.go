package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"goldpredict/internal/model"
)

// SQLiteRecorder persists prediction snapshots to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the database and runs
// migrations.
func NewSQLiteRecorder(dbPath string, logger zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads don't block snapshot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{
		db:     db,
		logger: logger.With().Str("component", "recorder").Logger(),
	}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.logger.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS predictions (
			id              TEXT PRIMARY KEY,
			timestamp       INTEGER NOT NULL,
			symbol          TEXT NOT NULL,
			timeframe       TEXT NOT NULL,
			current_price   REAL,
			predicted_price REAL,
			change_percent  REAL,
			direction       TEXT,
			confidence      REAL,
			signal          TEXT,
			rmse            REAL,
			mae             REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_ts ON predictions(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_symbol ON predictions(symbol, timeframe)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// Record inserts one prediction snapshot.
func (r *SQLiteRecorder) Record(resp *model.PredictionResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO predictions
		(id, timestamp, symbol, timeframe, current_price, predicted_price,
		 change_percent, direction, confidence, signal, rmse, mae)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		uuid.NewString(), time.Now().Unix(), resp.Symbol, resp.Timeframe,
		resp.CurrentPrice, resp.PredictedPrice, resp.ChangePercent,
		string(resp.Direction), resp.Confidence, string(resp.Signal),
		resp.RMSE, resp.MAE,
	)
	return err
}

// Recent returns the newest limit snapshots, newest first.
func (r *SQLiteRecorder) Recent(limit int) ([]PredictionRow, error) {
	if limit <= 0 {
		limit = 50
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, timestamp, symbol, timeframe,
		current_price, predicted_price, change_percent, direction,
		confidence, signal, rmse, mae
		FROM predictions ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PredictionRow
	for rows.Next() {
		var row PredictionRow
		var ts int64
		var direction, sig string
		if err := rows.Scan(&row.ID, &ts, &row.Symbol, &row.Timeframe,
			&row.CurrentPrice, &row.PredictedPrice, &row.ChangePercent,
			&direction, &row.Confidence, &sig, &row.RMSE, &row.MAE); err != nil {
			return nil, err
		}
		row.Timestamp = time.Unix(ts, 0).UTC()
		row.Direction = model.Direction(direction)
		row.Signal = model.SignalType(sig)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
