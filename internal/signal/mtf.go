package signal

import (
	"math"

	"goldpredict/internal/indicator"
	"goldpredict/internal/model"
)

// TimeframeTrend derives a lightweight trend read for a related
// timeframe from an SMA(10) vs SMA(20) cross over its own candle
// series. Strength scales with the percent gap between the averages;
// short or flat series read NEUTRAL.
func TimeframeTrend(timeframe string, candles []model.Candle) model.MultiTimeframeResult {
	result := model.MultiTimeframeResult{
		Timeframe: timeframe,
		Direction: model.DirectionNeutral,
		Strength:  0,
	}
	closes := model.Closes(candles)

	fast, err := indicator.SMA(closes, 10)
	if err != nil {
		return result
	}
	slow, err := indicator.SMA(closes, 20)
	if err != nil {
		return result
	}

	// Percent gap between the averages, scaled so a 1% separation
	// reads 10 points above the 70 base.
	gap := math.Abs(fast-slow) / slow * 100
	switch {
	case fast > slow:
		result.Direction = model.DirectionUp
		result.Strength = math.Min(95, 70+gap*10)
	case fast < slow:
		result.Direction = model.DirectionDown
		result.Strength = math.Min(95, 70+gap*10)
	default:
		result.Strength = 50
	}
	return result
}
