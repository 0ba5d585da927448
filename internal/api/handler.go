package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sprintlens/sprintlens/internal/config"
	"github.com/sprintlens/sprintlens/internal/report"
	"github.com/sprintlens/sprintlens/internal/store"
	"github.com/sprintlens/sprintlens/pkg/types"
)

// Handler is the HTTP handler for all /api/v1/* endpoints plus /metrics.
// It reads the current report bundle from the store and returns JSON.
type Handler struct {
	store *store.Store
	auth  config.AuthConfig
	mux   *http.ServeMux
}

// New creates a Handler wired to the given store and registers all routes.
// When auth mode is "apikey", every /api/v1/* request must carry the
// configured header; /metrics stays open for scrapers.
func New(st *store.Store, auth config.AuthConfig) http.Handler {
	h := &Handler{store: st, auth: auth, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/summary", h.summary)
	h.mux.HandleFunc("/api/v1/reports/cleaned", h.report(func(b *report.Bundle) any { return b.Cleaned }))
	h.mux.HandleFunc("/api/v1/reports/velocity", h.report(func(b *report.Bundle) any { return b.Velocity }))
	h.mux.HandleFunc("/api/v1/reports/bug-ratio", h.report(func(b *report.Bundle) any { return b.BugRatio }))
	h.mux.HandleFunc("/api/v1/reports/workload", h.report(func(b *report.Bundle) any { return b.Workload }))
	h.mux.HandleFunc("/api/v1/reports/trend", h.report(func(b *report.Bundle) any { return b.Trend }))
	h.mux.HandleFunc("/api/v1/reports/urgent", h.report(func(b *report.Bundle) any { return b.Urgent }))
	h.mux.HandleFunc("/api/v1/reports/ranking", h.report(func(b *report.Bundle) any { return b.Ranking }))
	h.mux.HandleFunc("/api/v1/snapshot", h.snapshot)
	h.mux.HandleFunc("/metrics", h.metrics)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") && !h.authorized(r) {
		jsonErr(w, http.StatusUnauthorized, "invalid or missing api key")
		return
	}
	h.mux.ServeHTTP(w, r)
}

// authorized checks the API key header when apikey auth is enabled.
func (h *Handler) authorized(r *http.Request) bool {
	if h.auth.Mode != "apikey" {
		return true
	}
	got := r.Header.Get(h.auth.EffectiveHeader())
	want := h.auth.Key()
	return want != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// --- route handlers ---------------------------------------------------------

// summary returns GET /api/v1/summary — dataset counts and total velocity.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap, ok := h.store.Snapshot()
	bundle, _ := h.store.Bundle()
	if !ok {
		jsonErr(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}

	resp := SummaryResponse{
		SprintCount:    len(snap.Sprints),
		TaskCount:      len(snap.Tasks),
		DatasetVersion: h.store.Version(),
		UpdatedAt:      h.store.UpdatedAt().UTC().Format(time.RFC3339),
	}
	for _, t := range snap.Tasks {
		if t.Status == types.StatusDone {
			resp.DoneTaskCount++
		}
	}
	for _, m := range bundle.Velocity {
		resp.TotalVelocity += m.Velocity
	}
	jsonResp(w, http.StatusOK, resp)
}

// report builds a GET handler serving one report slice from the bundle.
func (h *Handler) report(pick func(*report.Bundle) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		bundle, ok := h.store.Bundle()
		if !ok {
			jsonErr(w, http.StatusServiceUnavailable, "dataset not loaded")
			return
		}
		jsonResp(w, http.StatusOK, pick(bundle))
	}
}

// snapshot returns GET /api/v1/snapshot — all seven reports in one payload.
func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	resp, ok := BuildSnapshot(h.store)
	if !ok {
		jsonErr(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	jsonResp(w, http.StatusOK, resp)
}

// BuildSnapshot assembles the full report payload. Shared with the
// WebSocket hub so broadcasts and GET /api/v1/snapshot stay identical.
func BuildSnapshot(st *store.Store) (SnapshotResponse, bool) {
	bundle, ok := st.Bundle()
	if !ok {
		return SnapshotResponse{}, false
	}
	return SnapshotResponse{
		Reports:     bundle,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}, true
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
