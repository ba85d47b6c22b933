// Package http exposes the summary views and the label edit operation as a
// local JSON API for the presentation shell.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mjzilver/BankOverview/internal/services"
)

// Server serves the overview API. It embeds http.Server so callers can tune
// timeouts and drive shutdown directly.
type Server struct {
	http.Server

	overview *services.Overview
}

func NewServer(addr string, overview *services.Overview) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		overview: overview,
	}

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/overview", s.withRequestLog(s.handleOverview))
	mux.HandleFunc("/api/months", s.withRequestLog(s.handleMonths))
	mux.HandleFunc("/api/totals", s.withRequestLog(s.handleMonthlyTotals))
	mux.HandleFunc("/api/labels", s.withRequestLog(s.handleLabels))
	mux.HandleFunc("/api/labels/summary", s.withRequestLog(s.handleLabelSummary))
	mux.HandleFunc("/api/refresh", s.withRequestLog(s.handleRefresh))

	return s
}

// withRequestLog wraps a handler with structured request logging.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next(sw, r)

		slog.InfoContext(r.Context(), "Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", sw.status,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
