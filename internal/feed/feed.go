package feed

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"goldpredict/internal/model"
)

// defaultBasePrice anchors synthetic data when no real price has been
// seen yet.
const defaultBasePrice = 2650.0

// quoteTimeout bounds each live-price source attempt.
const quoteTimeout = 5 * time.Second

// Feed supplies candle series and live quotes to the engine, degrading
// to synthetic data instead of propagating provider failures.
type Feed struct {
	fetcher Fetcher
	sources []QuoteSource
	gen     *Synthetic
	logger  zerolog.Logger

	quoteTTL time.Duration

	mu        sync.Mutex
	cached    model.Quote
	cachedAt  time.Time
	lastPrice float64
}

// New creates a Feed over a history fetcher and an ordered live-quote
// fallback chain.
func New(fetcher Fetcher, sources []QuoteSource, gen *Synthetic, quoteTTL time.Duration, logger zerolog.Logger) *Feed {
	if gen == nil {
		gen = NewSynthetic(time.Now().UnixNano())
	}
	if quoteTTL <= 0 {
		quoteTTL = 15 * time.Second
	}
	return &Feed{
		fetcher:  fetcher,
		sources:  sources,
		gen:      gen,
		quoteTTL: quoteTTL,
		logger:   logger.With().Str("component", "feed").Logger(),
	}
}

// History returns the candle series for a timeframe. Fetch failures
// and empty results fall back to a synthetic series anchored at the
// last known price; the caller always receives a usable series.
func (f *Feed) History(ctx context.Context, symbol, timeframe string) []model.Candle {
	candles, err := f.fetcher.FetchCandles(ctx, symbol, timeframe)
	if err != nil || len(candles) == 0 {
		f.logger.Warn().
			Err(err).
			Str("source", f.fetcher.Name()).
			Str("timeframe", timeframe).
			Msg("history fetch failed, using synthetic series")
		return f.gen.Series(f.lastKnownPrice(), timeframe, 120)
	}

	f.mu.Lock()
	f.lastPrice = candles[len(candles)-1].Close
	f.mu.Unlock()
	return candles
}

// Quote returns a live quote, trying each source in order with a 5s
// timeout and ending at the synthetic tier, which cannot fail. Results
// are cached briefly.
func (f *Feed) Quote(ctx context.Context, symbol string) model.Quote {
	f.mu.Lock()
	if !f.cachedAt.IsZero() && time.Since(f.cachedAt) < f.quoteTTL {
		q := f.cached
		f.mu.Unlock()
		return q
	}
	f.mu.Unlock()

	for _, src := range f.sources {
		srcCtx, cancel := context.WithTimeout(ctx, quoteTimeout)
		q, err := src.FetchQuote(srcCtx, symbol)
		cancel()
		if err != nil || q.Price <= 0 {
			f.logger.Warn().
				Err(err).
				Str("source", src.Name()).
				Msg("quote source failed, trying next")
			continue
		}
		f.store(q)
		return q
	}

	q := f.gen.Quote(f.lastKnownPrice())
	f.store(q)
	return q
}

func (f *Feed) store(q model.Quote) {
	f.mu.Lock()
	f.cached = q
	f.cachedAt = time.Now()
	f.lastPrice = q.Price
	f.mu.Unlock()
}

func (f *Feed) lastKnownPrice() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastPrice > 0 {
		return f.lastPrice
	}
	return defaultBasePrice
}
