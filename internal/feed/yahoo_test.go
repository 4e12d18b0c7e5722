package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"goldpredict/internal/model"
)

// cannedTransport serves a fixed JSON body for every request.
type cannedTransport struct {
	status  int
	body    string
	lastURL string
}

func (c *cannedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.lastURL = req.URL.String()
	return &http.Response{
		StatusCode: c.status,
		Body:       io.NopCloser(bytes.NewBufferString(c.body)),
		Header:     make(http.Header),
	}, nil
}

func chartBody(timestamps []int64, closes []float64) string {
	ts := ""
	opens, highs, lows, cls := "", "", "", ""
	for i, t := range timestamps {
		if i > 0 {
			ts += ","
			opens += ","
			highs += ","
			lows += ","
			cls += ","
		}
		ts += fmt.Sprintf("%d", t)
		c := closes[i]
		opens += fmt.Sprintf("%g", c-1)
		highs += fmt.Sprintf("%g", c+2)
		lows += fmt.Sprintf("%g", c-2)
		cls += fmt.Sprintf("%g", c)
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],"indicators":{"quote":[{"open":[%s],"high":[%s],"low":[%s],"close":[%s]}]}}],"error":null}}`,
		ts, opens, highs, lows, cls)
}

func yahooWithBody(body string) (*YahooFetcher, *cannedTransport) {
	f := NewYahooFetcher("")
	rt := &cannedTransport{status: http.StatusOK, body: body}
	f.Client = &http.Client{Transport: rt}
	return f, rt
}

func TestYahooFetchCandles(t *testing.T) {
	base := int64(1735689600)
	f, rt := yahooWithBody(chartBody(
		[]int64{base, base + 3600, base + 7200},
		[]float64{2650, 2652, 2655},
	))

	got, err := f.FetchCandles(context.Background(), "XAUUSD", "1h")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d candles, want 3", len(got))
	}
	if got[2].Close != 2655 {
		t.Errorf("last close %.2f, want 2655", got[2].Close)
	}
	if !got[0].Time.Before(got[1].Time) {
		t.Error("candles out of order")
	}
	if rt.lastURL == "" || !bytes.Contains([]byte(rt.lastURL), []byte("GC=F")) {
		t.Errorf("symbol not mapped to Yahoo ticker: %s", rt.lastURL)
	}
}

func TestYahooFetchCandles_SkipsNullAndDuplicateBars(t *testing.T) {
	base := int64(1735689600)
	body := fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%d,%d,%d],"indicators":{"quote":[{"open":[2649,null,2649],"high":[2652,null,2652],"low":[2648,null,2648],"close":[2650,null,2650]}]}}],"error":null}}`,
		base, base+3600, base)
	f, _ := yahooWithBody(body)

	got, err := f.FetchCandles(context.Background(), "XAUUSD", "1h")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d candles, want 1 after null and duplicate filtering", len(got))
	}
}

func TestYahooFetchCandles_Resamples4h(t *testing.T) {
	base := int64(1735689600)
	timestamps := make([]int64, 8)
	closes := make([]float64, 8)
	for i := range timestamps {
		timestamps[i] = base + int64(i)*3600
		closes[i] = 2650 + float64(i)
	}
	f, _ := yahooWithBody(chartBody(timestamps, closes))

	got, err := f.FetchCandles(context.Background(), "XAUUSD", "4h")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d candles, want 2 merged 4h bars", len(got))
	}
	first := got[0]
	if first.Open != 2649 { // open of the first hourly bar
		t.Errorf("merged open %.2f, want 2649", first.Open)
	}
	if first.Close != 2653 { // close of the fourth hourly bar
		t.Errorf("merged close %.2f, want 2653", first.Close)
	}
	if first.High != 2655 { // highest high within the group
		t.Errorf("merged high %.2f, want 2655", first.High)
	}
	if first.Time != time.Unix(base, 0).UTC() {
		t.Errorf("merged time %v, want group start", first.Time)
	}
}

func TestYahooFetchCandles_APIError(t *testing.T) {
	f, _ := yahooWithBody(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	if _, err := f.FetchCandles(context.Background(), "XAUUSD", "1h"); err == nil {
		t.Error("expected API error")
	}
}

func TestYahooFetchCandles_HTTPError(t *testing.T) {
	f := NewYahooFetcher("")
	f.Client = &http.Client{Transport: &cannedTransport{status: http.StatusTooManyRequests, body: "rate limited"}}
	if _, err := f.FetchCandles(context.Background(), "XAUUSD", "1h"); err == nil {
		t.Error("expected status error")
	}
}

func TestYahooFetchQuote(t *testing.T) {
	base := int64(1735689600)
	f, _ := yahooWithBody(chartBody(
		[]int64{base, base + 86400},
		[]float64{2640, 2660},
	))

	q, err := f.FetchQuote(context.Background(), "XAUUSD")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.Price != 2660 {
		t.Errorf("price %.2f, want 2660", q.Price)
	}
	if q.Change != 20 {
		t.Errorf("change %.2f, want 20 over previous close", q.Change)
	}
	if q.Bid >= q.Price || q.Ask <= q.Price {
		t.Errorf("spread inverted: bid %.4f ask %.4f around %.2f", q.Bid, q.Ask, q.Price)
	}
	if q.Source != "yahoo" {
		t.Errorf("source %q, want yahoo", q.Source)
	}
}

func TestResampleCandles_PartialTail(t *testing.T) {
	bars := make([]model.Candle, 5)
	for i := range bars {
		bars[i] = model.Candle{
			Time: time.Unix(int64(i)*3600, 0),
			Open: float64(100 + i), High: float64(102 + i), Low: float64(98 + i), Close: float64(101 + i),
		}
	}
	out := resampleCandles(bars, 4)
	if len(out) != 2 {
		t.Fatalf("got %d bars, want 2", len(out))
	}
	// The tail group holds the single leftover bar unchanged.
	if out[1].Open != 104 || out[1].Close != 105 {
		t.Errorf("tail bar %+v, want the leftover hourly bar", out[1])
	}
}

func TestChartParams(t *testing.T) {
	interval, rng, resample := chartParams(model.Timeframe4h)
	if interval != "1h" || resample != 4 {
		t.Errorf("4h should resample hourly bars: got %s/%d", interval, resample)
	}
	if rng == "" {
		t.Error("missing range")
	}

	interval, _, resample = chartParams("bogus")
	if interval != "1h" || resample != 0 {
		t.Errorf("unknown timeframe should default to hourly: got %s/%d", interval, resample)
	}
}
