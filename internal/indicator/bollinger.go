package indicator

import "math"

// BollingerResult holds the three Bollinger band levels.
type BollingerResult struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// Bollinger computes SMA-centered bands at stdDev standard deviations
// over the given period.
func Bollinger(prices []float64, period int, stdDev float64) (BollingerResult, error) {
	middle, err := SMA(prices, period)
	if err != nil {
		return BollingerResult{}, err
	}

	variance := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		d := prices[i] - middle
		variance += d * d
	}
	sigma := math.Sqrt(variance / float64(period))

	return BollingerResult{
		Upper:  middle + stdDev*sigma,
		Middle: middle,
		Lower:  middle - stdDev*sigma,
	}, nil
}
