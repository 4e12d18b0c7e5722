package indicator

import "math"

// RegressionFit is an ordinary least-squares line fit over a recent
// close window, with error metrics of actual vs fitted values. RMSE
// and MAE describe recent trend-fit quality, not prediction accuracy.
type RegressionFit struct {
	Slope     float64
	Intercept float64
	RMSE      float64
	MAE       float64
}

// LinearFit fits y = slope*x + intercept over the last min(20, N)
// prices with x = 1..n.
func LinearFit(prices []float64) (RegressionFit, error) {
	window := prices
	if len(window) > 20 {
		window = window[len(window)-20:]
	}
	n := len(window)
	if n < 2 {
		return RegressionFit{}, ErrInsufficientData
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range window {
		x := float64(i + 1)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return RegressionFit{}, ErrInsufficientData
	}
	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn

	var sqErr, absErr float64
	for i, y := range window {
		fitted := slope*float64(i+1) + intercept
		d := y - fitted
		sqErr += d * d
		absErr += math.Abs(d)
	}

	return RegressionFit{
		Slope:     slope,
		Intercept: intercept,
		RMSE:      math.Sqrt(sqErr / fn),
		MAE:       absErr / fn,
	}, nil
}
