package feed

import (
	"context"

	"goldpredict/internal/model"
)

// Fetcher fetches OHLC history from an external quote provider.
type Fetcher interface {
	FetchCandles(ctx context.Context, symbol, timeframe string) ([]model.Candle, error)
	Name() string
}

// QuoteSource fetches a live spot price. Sources are tried in order;
// the terminal synthetic source cannot fail.
type QuoteSource interface {
	FetchQuote(ctx context.Context, symbol string) (model.Quote, error)
	Name() string
}
