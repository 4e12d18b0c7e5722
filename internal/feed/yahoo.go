package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"goldpredict/internal/model"
)

// YahooFetcher implements Fetcher and QuoteSource using the Yahoo
// Finance public chart API.
type YahooFetcher struct {
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"XAUUSD":  "GC=F",
			"XAU/USD": "GC=F",
			"GOLD":    "GC=F",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// chartParams maps a timeframe to the Yahoo interval and range. Yahoo
// has no native 4h interval, so 4h is resampled from hourly bars.
func chartParams(timeframe string) (interval, rng string, resample int) {
	switch timeframe {
	case model.Timeframe1m:
		return "1m", "1d", 0
	case model.Timeframe5m:
		return "5m", "5d", 0
	case model.Timeframe15m:
		return "15m", "5d", 0
	case model.Timeframe30m:
		return "30m", "1mo", 0
	case model.Timeframe1h:
		return "1h", "1mo", 0
	case model.Timeframe4h:
		return "1h", "3mo", 4
	case model.Timeframe1d:
		return "1d", "1y", 0
	case model.Timeframe1wk:
		return "1wk", "2y", 0
	case model.Timeframe1mo:
		return "1mo", "10y", 0
	default:
		return "1h", "1mo", 0
	}
}

// yahooChart is the response structure from the Yahoo chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []interface{} `json:"open"`
					High  []interface{} `json:"high"`
					Low   []interface{} `json:"low"`
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// FetchCandles fetches the candle series for a timeframe, ordered and
// deduplicated by bar time.
func (f *YahooFetcher) FetchCandles(ctx context.Context, symbol, timeframe string) ([]model.Candle, error) {
	interval, rng, resample := chartParams(timeframe)
	bars, err := f.fetchChart(ctx, symbol, interval, rng)
	if err != nil {
		return nil, err
	}
	if resample > 1 {
		bars = resampleCandles(bars, resample)
	}
	return bars, nil
}

// FetchQuote derives a live quote from the most recent daily bars.
func (f *YahooFetcher) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	bars, err := f.fetchChart(ctx, symbol, "1d", "5d")
	if err != nil {
		return model.Quote{}, err
	}
	if len(bars) == 0 {
		return model.Quote{}, fmt.Errorf("yahoo: no price data")
	}
	last := bars[len(bars)-1]
	prevClose := last.Open
	if len(bars) >= 2 {
		prevClose = bars[len(bars)-2].Close
	}
	change := last.Close - prevClose
	changePct := 0.0
	if prevClose != 0 {
		changePct = change / prevClose * 100
	}
	spread := last.Close * 0.0001
	return model.Quote{
		Price:         last.Close,
		Bid:           last.Close - spread,
		Ask:           last.Close + spread,
		High:          last.High,
		Low:           last.Low,
		Change:        change,
		ChangePercent: changePct,
		Timestamp:     time.Now().UTC(),
		Source:        f.Name(),
	}, nil
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, interval, rng string) ([]model.Candle, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=%s&range=%s",
		url.PathEscape(f.yahooSymbol(symbol)), interval, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data")
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.Candle, 0, len(result.Timestamp))
	seen := make(map[int64]bool, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || seen[ts] {
			continue
		}
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays, session gaps)
		}
		seen[ts] = true
		bars = append(bars, model.Candle{
			Time: time.Unix(ts, 0).UTC(),
			Open: o, High: h, Low: l, Close: c,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// resampleCandles merges each group of n consecutive bars into one,
// anchored at the group's first bar time.
func resampleCandles(bars []model.Candle, n int) []model.Candle {
	if n <= 1 || len(bars) == 0 {
		return bars
	}
	out := make([]model.Candle, 0, len(bars)/n+1)
	for i := 0; i < len(bars); i += n {
		end := i + n
		if end > len(bars) {
			end = len(bars)
		}
		group := bars[i:end]
		merged := model.Candle{
			Time: group[0].Time,
			Open: group[0].Open,
			High: group[0].High,
			Low:  group[0].Low,
		}
		for _, b := range group {
			if b.High > merged.High {
				merged.High = b.High
			}
			if b.Low < merged.Low {
				merged.Low = b.Low
			}
		}
		merged.Close = group[len(group)-1].Close
		out = append(out, merged)
	}
	return out
}
