package predictor

import (
	"context"
	"math"
	"sync"

	"github.com/rs/zerolog"

	"goldpredict/internal/feed"
	"goldpredict/internal/indicator"
	"goldpredict/internal/model"
	"goldpredict/internal/signal"
)

// Standard indicator periods.
const (
	rsiPeriod        = 14
	maPeriod         = 20
	bollingerStdDev  = 2.0
	stochasticK      = 14
	stochasticD      = 3
	williamsPeriod   = 14
	cciPeriod        = 20
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9
)

// divergenceLimit is the live-price deviation from the last close
// above which a synthetic current candle is appended to the series.
const divergenceLimit = 0.05

// Engine runs the full analysis pipeline: fetch, indicators,
// interpretation, consensus. Stateless across calls; safe for
// concurrent use.
type Engine struct {
	feed   *feed.Feed
	logger zerolog.Logger
}

// NewEngine creates an Engine over the given data feed.
func NewEngine(f *feed.Feed, logger zerolog.Logger) *Engine {
	return &Engine{
		feed:   f,
		logger: logger.With().Str("component", "predictor").Logger(),
	}
}

// Predict fetches candles and a live quote for the symbol and
// timeframe, gathers related-timeframe trend reads concurrently, and
// computes the prediction.
func (e *Engine) Predict(ctx context.Context, symbolName, timeframe string) (*model.PredictionResponse, error) {
	candles := e.feed.History(ctx, symbolName, timeframe)
	quote := e.feed.Quote(ctx, symbolName)
	candles = withCurrentCandle(candles, quote)

	related := model.RelatedTimeframes[timeframe]
	mtf := make([]model.MultiTimeframeResult, len(related))
	var wg sync.WaitGroup
	for i, tf := range related {
		wg.Add(1)
		go func(i int, tf string) {
			defer wg.Done()
			series := e.feed.History(ctx, symbolName, tf)
			mtf[i] = signal.TimeframeTrend(tf, series)
		}(i, tf)
	}
	wg.Wait()

	resp := Calculate(symbolName, timeframe, candles, quote, mtf)
	e.logger.Debug().
		Str("symbol", symbolName).
		Str("timeframe", timeframe).
		Str("signal", string(resp.Signal)).
		Float64("confidence", resp.Confidence).
		Float64("predicted", resp.PredictedPrice).
		Msg("prediction computed")
	return resp, nil
}

// withCurrentCandle returns the series with a synthetic current candle
// appended when the live price has diverged more than 5% from the last
// close. The input slice is never mutated.
func withCurrentCandle(candles []model.Candle, quote model.Quote) []model.Candle {
	if len(candles) == 0 || quote.Price <= 0 {
		return candles
	}
	lastClose := candles[len(candles)-1].Close
	if lastClose <= 0 || math.Abs(quote.Price-lastClose)/lastClose <= divergenceLimit {
		return candles
	}
	out := make([]model.Candle, len(candles), len(candles)+1)
	copy(out, candles)
	return append(out, model.Candle{
		Time:  quote.Timestamp,
		Open:  lastClose,
		High:  math.Max(lastClose, quote.Price),
		Low:   math.Min(lastClose, quote.Price),
		Close: quote.Price,
	})
}

// Calculate is the pure analysis core: identical candle series, quote,
// and related-timeframe inputs always yield an identical response.
func Calculate(symbolName, timeframe string, candles []model.Candle, quote model.Quote, mtf []model.MultiTimeframeResult) *model.PredictionResponse {
	price := quote.Price
	if price <= 0 && len(candles) > 0 {
		price = candles[len(candles)-1].Close
	}
	if len(candles) == 0 {
		candles = []model.Candle{{
			Time: quote.Timestamp,
			Open: price, High: price, Low: price, Close: price,
		}}
	}
	closes := model.Closes(candles)

	// Neutral defaults stand in for any indicator without enough
	// history; the matching signal carries strength 0.
	snap := model.IndicatorSnapshot{
		RSI:       50,
		SMA20:     price,
		EMA20:     price,
		StochK:    50,
		StochD:    50,
		WilliamsR: -50,
	}
	signals := make([]model.IndicatorSignal, 0, 9)

	if rsi, err := indicator.RSI(closes, rsiPeriod); err == nil {
		snap.RSI = rsi
		signals = append(signals, signal.InterpretRSI(rsi))
	} else {
		signals = append(signals, signal.Unavailable("RSI", signal.WeightRSI, snap.RSI))
	}

	if m, err := indicator.MACD(closes, macdFastPeriod, macdSlowPeriod, macdSignalPeriod); err == nil {
		snap.MACD, snap.MACDSignal, snap.MACDHist = m.MACD, m.Signal, m.Histogram
		signals = append(signals, signal.InterpretMACD(m))
	} else {
		signals = append(signals, signal.Unavailable("MACD", signal.WeightMACD, 0))
	}

	sma, smaErr := indicator.SMA(closes, maPeriod)
	ema, emaErr := indicator.EMA(closes, maPeriod)
	if smaErr == nil && emaErr == nil {
		snap.SMA20, snap.EMA20 = sma, ema
		signals = append(signals, signal.InterpretMA(price, sma, ema))
	} else {
		signals = append(signals, signal.Unavailable("MA", signal.WeightMA, price))
	}

	if b, err := indicator.Bollinger(closes, maPeriod, bollingerStdDev); err == nil {
		snap.BollUpper, snap.BollMiddle, snap.BollLower = b.Upper, b.Middle, b.Lower
		signals = append(signals, signal.InterpretBollinger(price, b))
	} else {
		snap.BollUpper, snap.BollMiddle, snap.BollLower = price, price, price
		signals = append(signals, signal.Unavailable("Bollinger", signal.WeightBollinger, price))
	}

	if st, err := indicator.Stochastic(candles, stochasticK, stochasticD); err == nil {
		snap.StochK, snap.StochD = st.K, st.D
		signals = append(signals, signal.InterpretStochastic(st))
	} else {
		signals = append(signals, signal.Unavailable("Stochastic", signal.WeightStochastic, snap.StochK))
	}

	if wr, err := indicator.WilliamsR(candles, williamsPeriod); err == nil {
		snap.WilliamsR = wr
		signals = append(signals, signal.InterpretWilliams(wr))
	} else {
		signals = append(signals, signal.Unavailable("Williams %R", signal.WeightWilliams, snap.WilliamsR))
	}

	if cci, err := indicator.CCI(candles, cciPeriod); err == nil {
		snap.CCI = cci
		signals = append(signals, signal.InterpretCCI(cci))
	} else {
		signals = append(signals, signal.Unavailable("CCI", signal.WeightCCI, 0))
	}

	if len(candles) >= 2 {
		snap.Pivots = indicator.Pivots(candles[len(candles)-2])
		signals = append(signals, signal.InterpretPivot(price, snap.Pivots))
	} else {
		signals = append(signals, signal.Unavailable("Pivot", signal.WeightPivot, price))
	}

	signals = append(signals, signal.DetectPattern(candles))

	trend := signal.Trend(candles)
	v := consensus(signals, trend, mtf, snap.RSI, snap.StochK)

	predicted := price * (1 + v.NormalizedScore*priceScale)
	// Mean-reversion nudge at RSI extremes, applied unconditionally.
	if snap.RSI > 80 {
		predicted *= 0.997
	} else if snap.RSI < 20 {
		predicted *= 1.003
	}

	var rmse, mae float64
	if fit, err := indicator.LinearFit(closes); err == nil {
		rmse, mae = fit.RMSE, fit.MAE
	}

	lastTime := candles[len(candles)-1].Time
	forecastStart := quote.Timestamp
	if forecastStart.IsZero() {
		forecastStart = lastTime
	}

	resp := &model.PredictionResponse{
		Symbol:         symbolName,
		Timeframe:      timeframe,
		CurrentPrice:   model.Round2(price),
		PredictedPrice: model.Round2(predicted),
		Change:         model.Round2(predicted - price),
		ChangePercent:  model.Round1(safePercent(predicted-price, price)),
		Direction:      v.Direction,
		Confidence:     model.Round1(v.Confidence),
		Signal:         v.Signal,
		RMSE:           model.Round3(rmse),
		MAE:            model.Round3(mae),
		Signals:        roundSignals(signals),
		Indicators:     roundSnapshot(snap),
		Candles:        candles,
		Forecast: []model.ForecastPoint{
			{Time: forecastStart, Price: model.Round2(price)},
			{Time: forecastStart.Add(model.IntervalDuration(timeframe)), Price: model.Round2(predicted)},
		},
		GeneratedAt: forecastStart,
	}
	return resp
}

func safePercent(delta, base float64) float64 {
	if base == 0 {
		return 0
	}
	return delta / base * 100
}

func roundSignals(signals []model.IndicatorSignal) []model.IndicatorSignal {
	out := make([]model.IndicatorSignal, len(signals))
	for i, s := range signals {
		s.Strength = model.Round1(s.Strength)
		s.Value = model.Round3(s.Value)
		out[i] = s
	}
	return out
}

func roundSnapshot(snap model.IndicatorSnapshot) model.IndicatorSnapshot {
	snap.RSI = model.Round1(snap.RSI)
	snap.MACD = model.Round4(snap.MACD)
	snap.MACDSignal = model.Round4(snap.MACDSignal)
	snap.MACDHist = model.Round4(snap.MACDHist)
	snap.SMA20 = model.Round2(snap.SMA20)
	snap.EMA20 = model.Round2(snap.EMA20)
	snap.BollUpper = model.Round2(snap.BollUpper)
	snap.BollMiddle = model.Round2(snap.BollMiddle)
	snap.BollLower = model.Round2(snap.BollLower)
	snap.StochK = model.Round1(snap.StochK)
	snap.StochD = model.Round1(snap.StochD)
	snap.WilliamsR = model.Round1(snap.WilliamsR)
	snap.CCI = model.Round3(snap.CCI)
	snap.Pivots.Pivot = model.Round2(snap.Pivots.Pivot)
	snap.Pivots.R1 = model.Round2(snap.Pivots.R1)
	snap.Pivots.R2 = model.Round2(snap.Pivots.R2)
	snap.Pivots.S1 = model.Round2(snap.Pivots.S1)
	snap.Pivots.S2 = model.Round2(snap.Pivots.S2)
	return snap
}
