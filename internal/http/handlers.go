package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mjzilver/BankOverview/internal/core"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleOverview returns the month/counterparty summary rows, optionally
// restricted to a single month via ?month=2006-01.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	snap := s.overview.Snapshot()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "no data loaded yet")
		return
	}

	rows := snap.Summary
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		month, err := core.ParseMonth(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
			return
		}
		filtered := make([]core.SummaryRow, 0, len(rows))
		for _, row := range rows {
			if row.Month == month {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"rows":      rows,
		"loaded_at": snap.LoadedAt.Format(time.RFC3339),
		"files":     snap.Files,
	})
}

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	snap := s.overview.Snapshot()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "no data loaded yet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"months": snap.Months})
}

func (s *Server) handleMonthlyTotals(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	totals, err := s.overview.MonthlyTotals()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"totals": totals})
}

// handleLabels lists label records on GET and upserts one on POST.
func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		records, err := s.overview.Labels(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out := make([]labelPayload, 0, len(records))
		for _, rec := range records {
			out = append(out, labelPayload{
				Counterparty: rec.Counterparty,
				Label:        rec.Label,
				IsBusiness:   rec.IsBusiness,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"labels": out})

	case http.MethodPost:
		var payload labelPayload
		if err := readJSON(r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		payload.Counterparty = strings.TrimSpace(payload.Counterparty)
		if payload.Counterparty == "" {
			writeError(w, http.StatusBadRequest, "counterparty is required")
			return
		}
		if err := s.overview.SetLabel(r.Context(), payload.Counterparty, payload.Label, payload.IsBusiness); err != nil {
			slog.ErrorContext(r.Context(), "Label upsert failed",
				"counterparty", payload.Counterparty,
				"error", err)
			writeError(w, http.StatusInternalServerError, "could not save label")
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleLabelSummary returns the label×month view, filtered by
// ?filter=all|business|personal.
func (s *Server) handleLabelSummary(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	f, err := core.ParseBusinessFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter, expected all, business or personal")
		return
	}

	rows, err := s.overview.LabelSummary(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

// handleRefresh re-runs the pipeline from the data directory.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	snap, err := s.overview.Refresh(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Pipeline refresh failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": len(snap.Transactions),
		"months":       len(snap.Months),
		"files":        snap.Files,
	})
}

type labelPayload struct {
	Counterparty string `json:"counterparty"`
	Label        string `json:"label"`
	IsBusiness   bool   `json:"is_business"`
}
