// Package api serves saved rounds and history statistics as JSON.
//
// Routes:
//   - GET /health
//   - GET /rounds          summaries, newest first (?limit=N, 0 for all)
//   - GET /rounds/{id}     one full round
//   - DELETE /rounds/{id}  remove a round and its summary
//   - GET /stats           aggregate statistics
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"jacktrack.app/internal/scoring"
	"jacktrack.app/internal/stats"
	"jacktrack.app/internal/storage"
)

// RoundStore is the part of the round repository the API serves.
type RoundStore interface {
	List(ctx context.Context) ([]scoring.Summary, error)
	LoadRound(ctx context.Context, id string) (*scoring.Round, error)
	DeleteRound(ctx context.Context, id string) error
}

// Server bundles the router and the round store.
type Server struct {
	r      *chi.Mux
	rounds RoundStore
}

// New constructs a Server, installs middleware, and registers routes.
func New(rounds RoundStore) *Server {
	s := &Server{r: chi.NewRouter(), rounds: rounds}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Route("/rounds", func(r chi.Router) {
		r.Get("/", s.handleListRounds)
		r.Get("/{id}", s.handleGetRound)
		r.Delete("/{id}", s.handleDeleteRound)
	})
	s.r.Get("/stats", s.handleStats)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Info().Str("addr", addr).Msg("api listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("api stopped")
	return nil
}

func (s *Server) handleListRounds(w http.ResponseWriter, r *http.Request) {
	list, err := s.rounds.List(r.Context())
	if err != nil {
		s.storageError(w, r, err)
		return
	}

	limit := len(list)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, stats.Recent(list, limit))
}

func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	round, err := s.rounds.LoadRound(r.Context(), id)
	if err != nil {
		s.storageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roundResponse{
		Round:   round,
		ToPar:   round.ToPar(),
		Summary: scoring.Summarize(round),
	})
}

func (s *Server) handleDeleteRound(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.rounds.DeleteRound(r.Context(), id); err != nil {
		s.storageError(w, r, err)
		return
	}
	log.Info().Str("round", id).Msg("round deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	list, err := s.rounds.List(r.Context())
	if err != nil {
		s.storageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats.Compute(list))
}

type roundResponse struct {
	*scoring.Round
	ToPar   int             `json:"toPar"`
	Summary scoring.Summary `json:"summary"`
}

func (s *Server) storageError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "round_not_found")
	case errors.Is(err, storage.ErrMalformed):
		log.Error().Err(err).Str("path", r.URL.Path).Msg("malformed stored data")
		writeError(w, http.StatusInternalServerError, "malformed_data")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("storage error")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
