package signal

import (
	"math"

	"goldpredict/internal/model"
)

// trendWindow is the number of candles the directional-movement trend
// read is computed over.
const trendWindow = 20

// Trend computes a simplified directional-movement trend over the last
// 20 candles. Direction is only assigned when the dominant DI side
// leads and DX clears 20; short series degrade to NEUTRAL/0.
func Trend(candles []model.Candle) model.TrendResult {
	if len(candles) < trendWindow {
		return model.TrendResult{Direction: model.DirectionNeutral, Strength: 0}
	}

	window := candles[len(candles)-trendWindow:]
	var plusDM, minusDM, trueRange float64
	for i := 1; i < len(window); i++ {
		cur, prev := window[i], window[i-1]

		upMove := cur.High - prev.High
		downMove := prev.Low - cur.Low
		if upMove > downMove && upMove > 0 {
			plusDM += upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM += downMove
		}

		tr := cur.High - cur.Low
		if hc := math.Abs(cur.High - prev.Close); hc > tr {
			tr = hc
		}
		if lc := math.Abs(cur.Low - prev.Close); lc > tr {
			tr = lc
		}
		trueRange += tr
	}

	if trueRange == 0 {
		return model.TrendResult{Direction: model.DirectionNeutral, Strength: 0}
	}
	plusDI := plusDM / trueRange * 100
	minusDI := minusDM / trueRange * 100
	if plusDI+minusDI == 0 {
		return model.TrendResult{Direction: model.DirectionNeutral, Strength: 0}
	}
	dx := math.Abs(plusDI-minusDI) / (plusDI + minusDI) * 100

	result := model.TrendResult{
		Direction: model.DirectionNeutral,
		Strength:  math.Min(100, dx*1.5),
	}
	switch {
	case plusDI > minusDI && dx > 20:
		result.Direction = model.DirectionUp
	case minusDI > plusDI && dx > 20:
		result.Direction = model.DirectionDown
	}
	return result
}
