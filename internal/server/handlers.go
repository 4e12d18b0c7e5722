package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"goldpredict/internal/model"
	"goldpredict/internal/recorder"
)

// PredictRequest is the request body for POST /api/v1/predict. GET
// requests pass the same fields as query parameters.
type PredictRequest struct {
	Symbol    string `json:"symbol"`
	Timeframe string `json:"timeframe"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
	} else {
		req.Symbol = r.URL.Query().Get("symbol")
		req.Timeframe = r.URL.Query().Get("timeframe")
	}

	if req.Symbol == "" {
		req.Symbol = s.defaultSymbol
	}
	if req.Timeframe == "" {
		req.Timeframe = model.Timeframe1h
	}
	if !model.ValidTimeframe(req.Timeframe) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unsupported timeframe: " + req.Timeframe})
		return
	}

	resp, err := s.engine.Predict(r.Context(), req.Symbol, req.Timeframe)
	if err != nil {
		s.logger.Error().Err(err).Msg("prediction failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "prediction failed"})
		return
	}

	if err := s.recorder.Record(resp); err != nil {
		// Persistence problems never fail the response.
		s.logger.Error().Err(err).Msg("record prediction failed")
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 500 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be within 1..500"})
			return
		}
		limit = n
	}

	rows, err := s.recorder.Recent(limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("history query failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "history query failed"})
		return
	}
	if rows == nil {
		rows = []recorder.PredictionRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
