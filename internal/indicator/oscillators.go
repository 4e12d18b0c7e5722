package indicator

import (
	"math"

	"goldpredict/internal/model"
)

// StochasticResult holds the %K and %D lines.
type StochasticResult struct {
	K float64
	D float64
}

// Stochastic computes the stochastic oscillator: %K compares the last
// close to the high-low range of the last kPeriod candles, %D is the
// SMA of the last dPeriod %K values.
func Stochastic(candles []model.Candle, kPeriod, dPeriod int) (StochasticResult, error) {
	if len(candles) < kPeriod+dPeriod-1 {
		return StochasticResult{}, ErrInsufficientData
	}

	kValues := make([]float64, dPeriod)
	for j := 0; j < dPeriod; j++ {
		end := len(candles) - (dPeriod - 1 - j)
		kValues[j] = stochasticK(candles[:end], kPeriod)
	}

	d := 0.0
	for _, k := range kValues {
		d += k
	}
	d /= float64(dPeriod)

	return StochasticResult{K: kValues[dPeriod-1], D: d}, nil
}

func stochasticK(candles []model.Candle, period int) float64 {
	high := math.Inf(-1)
	low := math.Inf(1)
	for i := len(candles) - period; i < len(candles); i++ {
		if candles[i].High > high {
			high = candles[i].High
		}
		if candles[i].Low < low {
			low = candles[i].Low
		}
	}
	if high == low {
		return 50.0
	}
	return (candles[len(candles)-1].Close - low) / (high - low) * 100.0
}

// WilliamsR computes Williams %R over the given period, in -100..0.
func WilliamsR(candles []model.Candle, period int) (float64, error) {
	if len(candles) < period {
		return 0, ErrInsufficientData
	}
	high := math.Inf(-1)
	low := math.Inf(1)
	for i := len(candles) - period; i < len(candles); i++ {
		if candles[i].High > high {
			high = candles[i].High
		}
		if candles[i].Low < low {
			low = candles[i].Low
		}
	}
	if high == low {
		return -50.0, nil
	}
	return (high - candles[len(candles)-1].Close) / (high - low) * -100.0, nil
}

// CCI computes the Commodity Channel Index over the given period from
// the typical price and its mean deviation.
func CCI(candles []model.Candle, period int) (float64, error) {
	if len(candles) < period {
		return 0, ErrInsufficientData
	}

	window := candles[len(candles)-period:]
	typical := make([]float64, period)
	sum := 0.0
	for i, c := range window {
		typical[i] = (c.High + c.Low + c.Close) / 3.0
		sum += typical[i]
	}
	mean := sum / float64(period)

	meanDev := 0.0
	for _, tp := range typical {
		meanDev += math.Abs(tp - mean)
	}
	meanDev /= float64(period)
	if meanDev == 0 {
		return 0, nil
	}
	return (typical[period-1] - mean) / (0.015 * meanDev), nil
}
