// Package server exposes the movie index over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"filmseek/internal/domain"
	"filmseek/internal/store"
)

// Server serves GET /search?q= against a movie store.
type Server struct {
	store      store.MovieStore
	logger     zerolog.Logger
	maxResults int
	httpServer *http.Server
}

type errorResponse struct {
	Error string `json:"error"`
}

// New creates a search server over the given store.
func New(st store.MovieStore, logger zerolog.Logger, maxResults int) *Server {
	if maxResults <= 0 {
		maxResults = 20
	}
	return &Server{
		store:      st,
		logger:     logger,
		maxResults: maxResults,
	}
}

// Router builds the HTTP handler, wrapped with CORS so a browser-hosted
// widget can call it from another origin.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Use(s.logRequests)

	return cors.Default().Handler(router)
}

// Start runs the server until the context is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info().Str("addr", addr).Msg("search server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errChan:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := s.store.Search(query, s.maxResults)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("index query failed")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "index query failed"})
		return
	}

	// results must never marshal as null; the widget expects an array
	if results == nil {
		results = []domain.Movie{}
	}

	s.logger.Debug().Str("query", query).Int("results", len(results)).Msg("search")
	s.writeJSON(w, http.StatusOK, domain.SearchResponse{Results: results})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.Count()
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "store unavailable"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "movies": count})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("failed to write response")
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
