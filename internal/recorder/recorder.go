package recorder

import (
	"time"

	"goldpredict/internal/model"
)

// PredictionRow is one persisted prediction snapshot.
type PredictionRow struct {
	ID             string           `json:"id"`
	Timestamp      time.Time        `json:"timestamp"`
	Symbol         string           `json:"symbol"`
	Timeframe      string           `json:"timeframe"`
	CurrentPrice   float64          `json:"currentPrice"`
	PredictedPrice float64          `json:"predictedPrice"`
	ChangePercent  float64          `json:"changePercent"`
	Direction      model.Direction  `json:"direction"`
	Confidence     float64          `json:"confidence"`
	Signal         model.SignalType `json:"signal"`
	RMSE           float64          `json:"rmse"`
	MAE            float64          `json:"mae"`
}

// Recorder persists prediction history for later review. Persistence
// failures are logged by callers and never affect the response.
type Recorder interface {
	Record(resp *model.PredictionResponse) error
	Recent(limit int) ([]PredictionRow, error)
	Close() error
}
