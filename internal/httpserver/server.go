package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/blackmichael/reshare-bot/internal/domain"
	"github.com/blackmichael/reshare-bot/internal/engage"
)

// StatusSource reports the most recent engagement pass.
type StatusSource interface {
	LastRun() engage.RunStatus
}

// Server is the HTTP server exposing the bot's health, last run, and
// engagement ledger.
type Server struct {
	status     StatusSource
	ledger     domain.EngagementRepository
	logger     *slog.Logger
	httpServer *http.Server
}

// NewServer creates a new HTTP server listening on port. ledger may be nil,
// in which case the engagements endpoint reports that no ledger is
// configured.
func NewServer(port int, status StatusSource, ledger domain.EngagementRepository, logger *slog.Logger) *Server {
	s := &Server{
		status: status,
		ledger: ledger,
		logger: logger,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      withLogging(logger, s.routes()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /engagements", s.handleEngagements)
	return mux
}

// Start begins listening for HTTP requests. It blocks until the server is
// shut down or an error occurs.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	last := s.status.LastRun()
	resp := map[string]any{
		"runs":        last.Runs,
		"duration_ms": last.Duration.Milliseconds(),
	}
	if !last.StartedAt.IsZero() {
		resp["started_at"] = last.StartedAt.Format(time.RFC3339)
	}
	if last.Error != "" {
		resp["error"] = last.Error
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEngagements(w http.ResponseWriter, r *http.Request) {
	if s.ledger == nil {
		writeError(w, http.StatusNotFound, "NoLedger", "no engagement ledger is configured")
		return
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 || parsed > 100 {
			s.logger.Warn("invalid limit parameter", "limit", l, "error", err)
			writeError(w, http.StatusBadRequest, "InvalidRequest", "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	cursor := r.URL.Query().Get("cursor")
	if cursor != "" {
		if _, _, err := domain.ParseCursor(cursor); err != nil {
			writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
			return
		}
	}

	engagements, next, err := s.ledger.ListEngagements(r.Context(), limit, cursor)
	if err != nil {
		s.logger.Error("failed to list engagements", "limit", limit, "cursor", cursor, "error", err)
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to list engagements")
		return
	}

	if engagements == nil {
		engagements = []domain.Engagement{}
	}
	resp := map[string]any{"engagements": engagements}
	if next != "" {
		resp["cursor"] = next
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, map[string]string{
		"error":   errType,
		"message": message,
	})
}

func withLogging(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration", time.Since(start),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
