package indicator

import "errors"

// ErrInsufficientData is returned when a series is shorter than the
// indicator's warm-up window. Callers substitute a neutral default
// and mark the signal unavailable instead of failing the analysis.
var ErrInsufficientData = errors.New("not enough data for indicator calculation")

// SMA computes the simple moving average of the last period prices.
func SMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, ErrInsufficientData
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// EMA computes the exponential moving average of the prices, seeded
// with the SMA of the first period values.
func EMA(prices []float64, period int) (float64, error) {
	series, err := EMASeries(prices, period)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}

// EMASeries returns the EMA value at every bar from the warm-up point
// onward. The first value is the SMA seed over the initial period.
func EMASeries(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(prices) < period {
		return nil, ErrInsufficientData
	}
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += prices[i]
	}
	seed /= float64(period)

	k := 2.0 / float64(period+1)
	series := make([]float64, 0, len(prices)-period+1)
	series = append(series, seed)
	ema := seed
	for i := period; i < len(prices); i++ {
		ema = (prices[i]-ema)*k + ema
		series = append(series, ema)
	}
	return series, nil
}
