package report

import (
	"strings"

	"github.com/sprintlens/sprintlens/pkg/types"
)

// Canonical task types produced by the normalizer.
const (
	TypeStory = "STORY"
	TypeBug   = "BUG"
	TypeOther = "OTHER"
)

// NormalizedTask is a Task with a canonical type and points coalesced to 0.
// It carries everything the aggregations need so the raw snapshot is only
// walked once.
type NormalizedTask struct {
	ID          int
	Title       string
	CleanType   string // TypeStory | TypeBug | TypeOther
	Status      string
	CleanPoints int

	// RawPoints preserves the original optional estimate. The developer
	// ranking sums points without coalescing, so nil must stay observable.
	RawPoints *int

	Assignee string
	SprintID int
}

// Normalize maps a raw task to its normalized form. It is a pure function
// and idempotent: normalizing an already-canonical type yields the same
// result. Unrecognized type strings degrade to TypeOther — there is no
// failure mode.
func Normalize(t types.Task) NormalizedTask {
	points := 0
	if t.Points != nil {
		points = *t.Points
	}
	return NormalizedTask{
		ID:          t.ID,
		Title:       t.Title,
		CleanType:   canonicalType(t.RawType),
		Status:      t.Status,
		CleanPoints: points,
		RawPoints:   t.Points,
		Assignee:    t.Assignee,
		SprintID:    t.SprintID,
	}
}

// NormalizeAll normalizes every task in order.
func NormalizeAll(tasks []types.Task) []NormalizedTask {
	out := make([]NormalizedTask, len(tasks))
	for i, t := range tasks {
		out[i] = Normalize(t)
	}
	return out
}

// canonicalType uppercases and trims the raw label, then maps it by
// substring match: anything containing STORY is a story, anything
// containing BUG is a bug, everything else (including empty) is OTHER.
func canonicalType(raw string) string {
	clean := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(clean, TypeStory):
		return TypeStory
	case strings.Contains(clean, TypeBug):
		return TypeBug
	default:
		return TypeOther
	}
}
