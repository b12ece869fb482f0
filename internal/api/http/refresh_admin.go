package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/civics-quiz/internal/audit"
	"github.com/mind-engage/civics-quiz/internal/llm"
	"github.com/mind-engage/civics-quiz/internal/refresh"
)

// RefreshTrigger is satisfied by *refresh.Scheduler.
type RefreshTrigger interface {
	Trigger() bool
	LastReport() (refresh.Report, bool)
}

// AuditLog is satisfied by *audit.EventRepo.
type AuditLog interface {
	ListRefresh(ctx context.Context, limit int) ([]audit.RefreshEvent, error)
	UsageTotals(ctx context.Context) (map[string]llm.Usage, error)
}

type RefreshDeps struct {
	Scheduler RefreshTrigger // nil when background refresh is disabled
	Audit     AuditLog       // optional
}

func MountRefresh(r chi.Router, d RefreshDeps) {
	r.Post("/refresh", func(w http.ResponseWriter, r *http.Request) {
		if d.Scheduler == nil {
			writeError(w, http.StatusServiceUnavailable, "dynamic refresh is disabled")
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]bool{"queued": d.Scheduler.Trigger()})
	})

	r.Get("/refresh/status", func(w http.ResponseWriter, r *http.Request) {
		if d.Scheduler == nil {
			writeError(w, http.StatusServiceUnavailable, "dynamic refresh is disabled")
			return
		}
		rep, ok := d.Scheduler.LastReport()
		if !ok {
			writeJSON(w, http.StatusOK, map[string]any{"last_sweep": nil})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"last_sweep": rep})
	})

	r.Get("/refresh/events", func(w http.ResponseWriter, r *http.Request) {
		if d.Audit == nil {
			writeJSON(w, http.StatusOK, []audit.RefreshEvent{})
			return
		}
		limit := parseIntDefault(r.URL.Query().Get("limit"), 100)
		evs, err := d.Audit.ListRefresh(r.Context(), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "list events: "+err.Error())
			return
		}
		writeJSON(w, http.StatusOK, evs)
	})

	r.Get("/usage", func(w http.ResponseWriter, r *http.Request) {
		if d.Audit == nil {
			writeJSON(w, http.StatusOK, map[string]llm.Usage{})
			return
		}
		totals, err := d.Audit.UsageTotals(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "usage: "+err.Error())
			return
		}
		writeJSON(w, http.StatusOK, totals)
	})
}
