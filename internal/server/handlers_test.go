package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"goldpredict/internal/feed"
	"goldpredict/internal/model"
	"goldpredict/internal/predictor"
	"goldpredict/internal/recorder"
)

type stubFetcher struct{}

func (stubFetcher) FetchCandles(ctx context.Context, symbol, timeframe string) ([]model.Candle, error) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]model.Candle, 60)
	for i := range candles {
		base := 2600 + float64(i)
		candles[i] = model.Candle{
			Time: start.Add(time.Duration(i) * time.Hour),
			Open: base, High: base + 2, Low: base - 2, Close: base + 1,
		}
	}
	return candles, nil
}

func (stubFetcher) Name() string { return "stub" }

type stubQuote struct{}

func (stubQuote) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	return model.Quote{Price: 2660, Timestamp: time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC), Source: "stub"}, nil
}

func (stubQuote) Name() string { return "stub" }

type memRecorder struct {
	rows    []recorder.PredictionRow
	recErr  error
	listErr error
}

func (m *memRecorder) Record(resp *model.PredictionResponse) error {
	if m.recErr != nil {
		return m.recErr
	}
	m.rows = append(m.rows, recorder.PredictionRow{
		Symbol:    resp.Symbol,
		Timeframe: resp.Timeframe,
		Signal:    resp.Signal,
	})
	return nil
}

func (m *memRecorder) Recent(limit int) ([]recorder.PredictionRow, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if limit > len(m.rows) {
		limit = len(m.rows)
	}
	return m.rows[:limit], nil
}

func (m *memRecorder) Close() error { return nil }

func newTestServer(rec recorder.Recorder) *Server {
	f := feed.New(stubFetcher{}, []feed.QuoteSource{stubQuote{}}, feed.NewSynthetic(1), time.Minute, zerolog.Nop())
	engine := predictor.NewEngine(f, zerolog.Nop())
	return New(engine, rec, "XAUUSD", zerolog.Nop())
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(recorder.NewNoopRecorder())
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status %q, want ok", body["status"])
	}
}

func TestPredict_DefaultsApplied(t *testing.T) {
	rec := &memRecorder{}
	srv := newTestServer(rec)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/predict", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var resp model.PredictionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Symbol != "XAUUSD" {
		t.Errorf("symbol %q, want default XAUUSD", resp.Symbol)
	}
	if resp.Timeframe != "1h" {
		t.Errorf("timeframe %q, want default 1h", resp.Timeframe)
	}
	if resp.Signal == "" {
		t.Error("response missing signal")
	}
	if len(rec.rows) != 1 {
		t.Errorf("recorded %d rows, want 1", len(rec.rows))
	}
}

func TestPredict_PostBody(t *testing.T) {
	srv := newTestServer(recorder.NewNoopRecorder())
	body := strings.NewReader(`{"symbol":"XAUUSD","timeframe":"4h"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", body)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var resp model.PredictionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Timeframe != "4h" {
		t.Errorf("timeframe %q, want 4h", resp.Timeframe)
	}
}

func TestPredict_BadTimeframe(t *testing.T) {
	srv := newTestServer(recorder.NewNoopRecorder())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/predict?timeframe=2h", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rr.Code)
	}
}

func TestPredict_BadBody(t *testing.T) {
	srv := newTestServer(recorder.NewNoopRecorder())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rr.Code)
	}
}

func TestPredict_RecorderFailureDoesNotFailResponse(t *testing.T) {
	rec := &memRecorder{recErr: errors.New("disk full")}
	srv := newTestServer(rec)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/predict", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d, want 200 despite recorder failure", rr.Code)
	}
}

func TestHistory(t *testing.T) {
	rec := &memRecorder{rows: []recorder.PredictionRow{
		{Symbol: "XAUUSD", Timeframe: "1h", Signal: model.SignalBuy},
		{Symbol: "XAUUSD", Timeframe: "1d", Signal: model.SignalHold},
	}}
	srv := newTestServer(rec)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=1", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rr.Code)
	}
	var rows []recorder.PredictionRow
	if err := json.NewDecoder(rr.Body).Decode(&rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want 1", len(rows))
	}
}

func TestHistory_LimitValidation(t *testing.T) {
	srv := newTestServer(recorder.NewNoopRecorder())
	for _, limit := range []string{"0", "-5", "501", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit="+limit, nil)
		rr := httptest.NewRecorder()
		srv.Router().ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("limit %q: status %d, want 400", limit, rr.Code)
		}
	}
}

func TestHistory_NilRowsEncodeAsEmptyArray(t *testing.T) {
	srv := newTestServer(recorder.NewNoopRecorder())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Errorf("body %q, want empty array", got)
	}
}
