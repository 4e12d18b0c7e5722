package feed

import (
	"math/rand"
	"sync"
	"time"

	"goldpredict/internal/model"
)

// Per-bar volatility buckets for the synthetic random walk, as a
// fraction of price. Shorter timeframes move tighter per bar.
var syntheticVolatility = map[string]float64{
	model.Timeframe1m:  0.0005,
	model.Timeframe5m:  0.001,
	model.Timeframe15m: 0.0015,
	model.Timeframe30m: 0.002,
	model.Timeframe1h:  0.003,
	model.Timeframe4h:  0.006,
	model.Timeframe1d:  0.01,
	model.Timeframe1wk: 0.02,
	model.Timeframe1mo: 0.04,
}

// Synthetic generates plausible random-walk candle series anchored to
// a live price, used when the external history fetch fails or comes
// back empty. It cannot fail.
type Synthetic struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewSynthetic creates a generator. A fixed seed makes output
// reproducible for tests.
func NewSynthetic(seed int64) *Synthetic {
	return &Synthetic{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Series generates count candles for the timeframe whose final close
// equals anchor, walking backwards from the anchor with bounded
// per-bar volatility.
func (s *Synthetic) Series(anchor float64, timeframe string, count int) []model.Candle {
	if count <= 0 {
		count = 120
	}
	if anchor <= 0 {
		anchor = defaultBasePrice
	}
	vol, ok := syntheticVolatility[timeframe]
	if !ok {
		vol = 0.003
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	interval := model.IntervalDuration(timeframe)
	end := s.now().UTC().Truncate(interval)

	// Walk closes backwards from the anchor so the series always lands
	// exactly on the live price.
	closes := make([]float64, count)
	closes[count-1] = anchor
	for i := count - 2; i >= 0; i-- {
		step := 1 + (s.rng.Float64()*2-1)*vol
		closes[i] = closes[i+1] / step
	}

	candles := make([]model.Candle, count)
	for i := 0; i < count; i++ {
		open := closes[i]
		if i > 0 {
			open = closes[i-1]
		}
		hi := closes[i]
		lo := closes[i]
		if open > hi {
			hi = open
		}
		if open < lo {
			lo = open
		}
		wick := closes[i] * vol * s.rng.Float64() * 0.5
		candles[i] = model.Candle{
			Time:  end.Add(-time.Duration(count-1-i) * interval),
			Open:  open,
			High:  hi + wick,
			Low:   lo - wick,
			Close: closes[i],
		}
	}
	return candles
}

// Quote builds a synthetic quote around the last known price. This is
// the terminal tier of the quote chain.
func (s *Synthetic) Quote(lastKnown float64) model.Quote {
	if lastKnown <= 0 {
		lastKnown = defaultBasePrice
	}
	s.mu.Lock()
	jitter := 1 + (s.rng.Float64()*2-1)*0.001
	s.mu.Unlock()

	price := lastKnown * jitter
	spread := price * 0.0001
	return model.Quote{
		Price:     price,
		Bid:       price - spread,
		Ask:       price + spread,
		High:      price * 1.002,
		Low:       price * 0.998,
		Timestamp: s.now().UTC(),
		Source:    "synthetic",
	}
}
