package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"goldpredict/internal/predictor"
	"goldpredict/internal/recorder"
)

// Server exposes the prediction engine over HTTP.
type Server struct {
	engine        *predictor.Engine
	recorder      recorder.Recorder
	defaultSymbol string
	logger        zerolog.Logger
}

// New creates a Server.
func New(engine *predictor.Engine, rec recorder.Recorder, defaultSymbol string, logger zerolog.Logger) *Server {
	return &Server{
		engine:        engine,
		recorder:      rec,
		defaultSymbol: defaultSymbol,
		logger:        logger.With().Str("component", "server").Logger(),
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/predict", s.handlePredict)
		r.Post("/predict", s.handlePredict)
		r.Get("/history", s.handleHistory)
	})
	return r
}

// requestLogger logs each request with method, path, status, and
// duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
