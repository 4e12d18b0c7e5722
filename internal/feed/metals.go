package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"goldpredict/internal/model"
)

// MetalsFetcher implements QuoteSource against a metals spot REST API,
// used as the second tier of the live-quote fallback chain.
type MetalsFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewMetalsFetcher creates a fetcher with optional proxy support.
func NewMetalsFetcher(baseURL, apiKey, proxyURL string) *MetalsFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &MetalsFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

func (f *MetalsFetcher) Name() string { return "metals-api" }

// metalsQuote is the expected JSON shape from the spot endpoint.
type metalsQuote struct {
	Price         float64 `json:"price"`
	Bid           float64 `json:"bid"`
	Ask           float64 `json:"ask"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Timestamp     int64   `json:"timestamp"`
}

// FetchQuote fetches the current spot quote for the symbol.
func (f *MetalsFetcher) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	endpoint := fmt.Sprintf("%s/api/v1/spot?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.Quote{}, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.Quote{}, fmt.Errorf("metals fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Quote{}, fmt.Errorf("metals read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.Quote{}, fmt.Errorf("metals: status %d, body: %s", resp.StatusCode, string(body))
	}

	var q metalsQuote
	if err := json.Unmarshal(body, &q); err != nil {
		return model.Quote{}, fmt.Errorf("metals decode: %w", err)
	}
	if q.Price <= 0 {
		return model.Quote{}, fmt.Errorf("metals: empty quote")
	}

	ts := time.Now().UTC()
	if q.Timestamp > 0 {
		ts = time.Unix(q.Timestamp, 0).UTC()
	}
	return model.Quote{
		Price:         q.Price,
		Bid:           q.Bid,
		Ask:           q.Ask,
		High:          q.High,
		Low:           q.Low,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
		Timestamp:     ts,
		Source:        f.Name(),
	}, nil
}
