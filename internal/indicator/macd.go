package indicator

// MACDResult holds the MACD line, its signal line, and the histogram.
type MACDResult struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// MACD computes the Moving Average Convergence Divergence from the
// fast and slow EMAs, with the signal line as an EMA of the MACD line.
func MACD(prices []float64, fast, slow, signalPeriod int) (MACDResult, error) {
	fastSeries, err := EMASeries(prices, fast)
	if err != nil {
		return MACDResult{}, err
	}
	slowSeries, err := EMASeries(prices, slow)
	if err != nil {
		return MACDResult{}, err
	}

	// Align the two EMA series on their common tail.
	n := len(slowSeries)
	if len(fastSeries) < n {
		n = len(fastSeries)
	}
	macdLine := make([]float64, n)
	for i := 0; i < n; i++ {
		macdLine[i] = fastSeries[len(fastSeries)-n+i] - slowSeries[len(slowSeries)-n+i]
	}

	signalSeries, err := EMASeries(macdLine, signalPeriod)
	if err != nil {
		return MACDResult{}, err
	}

	macd := macdLine[len(macdLine)-1]
	signal := signalSeries[len(signalSeries)-1]
	return MACDResult{
		MACD:      macd,
		Signal:    signal,
		Histogram: macd - signal,
	}, nil
}
