package api

import "github.com/sprintlens/sprintlens/internal/report"

// SummaryResponse is the payload for GET /api/v1/summary.
type SummaryResponse struct {
	SprintCount    int    `json:"sprint_count"`
	TaskCount      int    `json:"task_count"`
	DoneTaskCount  int    `json:"done_task_count"`
	TotalVelocity  int    `json:"total_velocity"`
	DatasetVersion int    `json:"dataset_version"`
	UpdatedAt      string `json:"updated_at"` // RFC3339
}

// SnapshotResponse is the payload for GET /api/v1/snapshot and the body of
// every WebSocket broadcast: all seven reports plus a generation timestamp.
type SnapshotResponse struct {
	Reports     *report.Bundle `json:"reports"`
	GeneratedAt string         `json:"generated_at"` // RFC3339
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
