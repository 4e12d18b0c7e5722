package indicator

import "goldpredict/internal/model"

// Pivots computes classic floor-trader pivot levels from the previous
// completed candle's high, low, and close.
func Pivots(prev model.Candle) model.PivotLevels {
	p := (prev.High + prev.Low + prev.Close) / 3.0
	return model.PivotLevels{
		Pivot: p,
		R1:    2*p - prev.Low,
		S1:    2*p - prev.High,
		R2:    p + (prev.High - prev.Low),
		S2:    p - (prev.High - prev.Low),
	}
}
