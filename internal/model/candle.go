package model

import "time"

// Candle is a single OHLC bar. Series are ordered by strictly
// increasing time and treated as immutable once produced.
type Candle struct {
	Time  time.Time `json:"time"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// Bullish reports whether the candle closed above its open.
func (c Candle) Bullish() bool { return c.Close > c.Open }

// Bearish reports whether the candle closed below its open.
func (c Candle) Bearish() bool { return c.Close < c.Open }

// Body returns the absolute size of the candle body.
func (c Candle) Body() float64 {
	if c.Close > c.Open {
		return c.Close - c.Open
	}
	return c.Open - c.Close
}

// Range returns the high-low span of the candle.
func (c Candle) Range() float64 { return c.High - c.Low }

// Quote is a live spot price reading from one of the tiered sources.
type Quote struct {
	Price         float64   `json:"price"`
	Bid           float64   `json:"bid"`
	Ask           float64   `json:"ask"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Timestamp     time.Time `json:"timestamp"`
	Source        string    `json:"source"`
}

// Supported chart timeframes.
const (
	Timeframe1m  = "1m"
	Timeframe5m  = "5m"
	Timeframe15m = "15m"
	Timeframe30m = "30m"
	Timeframe1h  = "1h"
	Timeframe4h  = "4h"
	Timeframe1d  = "1d"
	Timeframe1wk = "1wk"
	Timeframe1mo = "1mo"
)

// Timeframes lists every supported timeframe in ascending order.
var Timeframes = []string{
	Timeframe1m, Timeframe5m, Timeframe15m, Timeframe30m,
	Timeframe1h, Timeframe4h, Timeframe1d, Timeframe1wk, Timeframe1mo,
}

// ValidTimeframe reports whether tf is a supported timeframe.
func ValidTimeframe(tf string) bool {
	for _, t := range Timeframes {
		if t == tf {
			return true
		}
	}
	return false
}

// RelatedTimeframes maps each timeframe to the higher timeframes
// checked for trend confluence.
var RelatedTimeframes = map[string][]string{
	Timeframe1m:  {Timeframe5m, Timeframe15m},
	Timeframe5m:  {Timeframe15m, Timeframe30m},
	Timeframe15m: {Timeframe1h, Timeframe4h},
	Timeframe30m: {Timeframe1h, Timeframe4h},
	Timeframe1h:  {Timeframe4h, Timeframe1d},
	Timeframe4h:  {Timeframe1d, Timeframe1wk},
	Timeframe1d:  {Timeframe1wk, Timeframe1mo},
	Timeframe1wk: {Timeframe1mo},
	Timeframe1mo: {},
}

// IntervalDuration returns the nominal bar duration for a timeframe.
// Weekly and monthly bars use calendar approximations.
func IntervalDuration(tf string) time.Duration {
	switch tf {
	case Timeframe1m:
		return time.Minute
	case Timeframe5m:
		return 5 * time.Minute
	case Timeframe15m:
		return 15 * time.Minute
	case Timeframe30m:
		return 30 * time.Minute
	case Timeframe1h:
		return time.Hour
	case Timeframe4h:
		return 4 * time.Hour
	case Timeframe1d:
		return 24 * time.Hour
	case Timeframe1wk:
		return 7 * 24 * time.Hour
	case Timeframe1mo:
		return 30 * 24 * time.Hour
	default:
		return time.Hour
	}
}

// Closes extracts the close series from candles.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
