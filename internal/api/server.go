// Package api is the HTTP gateway: thin plumbing that accepts transcripts,
// calls the extraction pipeline, and serves the static schema and samples.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/openchs/intake/internal/config"
	"github.com/openchs/intake/internal/model"
	"github.com/openchs/intake/internal/pipeline"
	"github.com/openchs/intake/internal/samples"
)

const serviceVersion = "1.0.0"

// Server routes HTTP traffic to the extraction pipeline.
type Server struct {
	router  *chi.Mux
	pipe    *pipeline.Pipeline
	schema  *model.FormSchema
	library *samples.Library
	port    int
}

// NewServer creates the gateway over an assembled pipeline.
func NewServer(cfg config.ServerConfig, pipe *pipeline.Pipeline, schema *model.FormSchema, library *samples.Library) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(requestLogger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	s := &Server{
		router:  router,
		pipe:    pipe,
		schema:  schema,
		library: library,
		port:    cfg.Port,
	}

	router.Get("/health", s.health)
	router.Get("/schema", s.getSchema)
	router.Post("/extract", s.extract)
	router.Get("/samples", s.listSamples)
	router.Get("/samples/{call_id}", s.getSample)

	return s
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server", zap.Int("port", s.port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "api: server listen")
	}

	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service":  "case-intake extraction api",
		"status":   "running",
		"version":  serviceVersion,
		"api_mode": string(s.pipe.Mode()),
	})
}

func (s *Server) getSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.schema)
}

func (s *Server) extract(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req model.ExtractionRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.pipe.Run(r.Context(), req)
	if err != nil {
		zap.L().Error("api: extraction failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("extraction failed: %s", eris.Cause(err)))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listSamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"samples": s.library.Previews(),
	})
}

func (s *Server) getSample(w http.ResponseWriter, r *http.Request) {
	callID := chi.URLParam(r, "call_id")

	sample, err := s.library.ByCallID(callID)
	if err != nil {
		if eris.Is(err, samples.ErrNotFound) {
			writeError(w, http.StatusNotFound, "sample not found")
			return
		}
		zap.L().Error("api: sample lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "sample lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, sample)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
