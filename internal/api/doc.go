// Package api implements the HTTP surface for sprintlens.
//
// New(store, auth) returns an http.Handler that serves:
//
//	GET /api/v1/summary            — dataset counts, total velocity, version
//	GET /api/v1/reports/cleaned    — per-task normalized listing
//	GET /api/v1/reports/velocity   — summed Done points per sprint
//	GET /api/v1/reports/bug-ratio  — bug/story breakdown per sprint
//	GET /api/v1/reports/workload   — completed workload per assignee
//	GET /api/v1/reports/trend      — sprint-over-sprint velocity deltas
//	GET /api/v1/reports/urgent     — unassigned tasks and open bugs
//	GET /api/v1/reports/ranking    — competition-ranked developers
//	GET /api/v1/snapshot           — all seven reports + generated_at
//	GET /metrics                   — Prometheus text exposition
//
// All /api/v1 endpoints respond with application/json, return 405 for
// non-GET methods and 503 until a dataset has been loaded. With apikey auth
// enabled they additionally require the configured header; /metrics stays
// open. No external HTTP framework is used.
package api
