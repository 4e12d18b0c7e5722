package model

import (
	"math"
	"time"
)

// PivotLevels are classic floor-trader pivot levels from the previous
// completed candle.
type PivotLevels struct {
	Pivot float64 `json:"pivot"`
	R1    float64 `json:"r1"`
	R2    float64 `json:"r2"`
	S1    float64 `json:"s1"`
	S2    float64 `json:"s2"`
}

// IndicatorSnapshot holds the raw indicator values behind one
// prediction, rounded per the response policy.
type IndicatorSnapshot struct {
	RSI        float64     `json:"rsi"`
	MACD       float64     `json:"macd"`
	MACDSignal float64     `json:"macdSignal"`
	MACDHist   float64     `json:"macdHist"`
	SMA20      float64     `json:"sma20"`
	EMA20      float64     `json:"ema20"`
	BollUpper  float64     `json:"bollUpper"`
	BollMiddle float64     `json:"bollMiddle"`
	BollLower  float64     `json:"bollLower"`
	StochK     float64     `json:"stochK"`
	StochD     float64     `json:"stochD"`
	WilliamsR  float64     `json:"williamsR"`
	CCI        float64     `json:"cci"`
	Pivots     PivotLevels `json:"pivots"`
}

// ForecastPoint is one point of the two-point forecast line.
type ForecastPoint struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// PredictionResponse is the full output of one analysis run. It is a
// value object: computed fresh per request and never mutated.
type PredictionResponse struct {
	Symbol         string            `json:"symbol"`
	Timeframe      string            `json:"timeframe"`
	CurrentPrice   float64           `json:"currentPrice"`
	PredictedPrice float64           `json:"predictedPrice"`
	Change         float64           `json:"change"`
	ChangePercent  float64           `json:"changePercent"`
	Direction      Direction         `json:"direction"`
	Confidence     float64           `json:"confidence"`
	Signal         SignalType        `json:"signal"`
	RMSE           float64           `json:"rmse"`
	MAE            float64           `json:"mae"`
	Signals        []IndicatorSignal `json:"signals"`
	Indicators     IndicatorSnapshot `json:"indicators"`
	Candles        []Candle          `json:"candles"`
	Forecast       []ForecastPoint   `json:"forecast"`
	GeneratedAt    time.Time         `json:"generatedAt"`
}

// Rounding policy: prices 2 decimals, oscillator/MACD values 3,
// RSI/percent-like fields 1. Applied once when the response is built
// so re-serializing is drift-free.

// Round1 rounds to 1 decimal place.
func Round1(v float64) float64 { return math.Round(v*10) / 10 }

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// Round3 rounds to 3 decimal places.
func Round3(v float64) float64 { return math.Round(v*1000) / 1000 }

// Round4 rounds to 4 decimal places.
func Round4(v float64) float64 { return math.Round(v*10000) / 10000 }
