package types

import "time"

// Task status values as they appear in the dataset.
const (
	StatusToDo       = "ToDo"
	StatusInProgress = "InProgress"
	StatusDone       = "Done"
)

// Sprint is one time-boxed iteration. Sprints are immutable once loaded;
// Start is always before End and IDs are unique within a snapshot.
type Sprint struct {
	ID    int
	Name  string
	Start time.Time
	End   time.Time
	Goal  string
}

// Task is one unit of work belonging to exactly one sprint.
type Task struct {
	ID    int
	Title string

	// RawType is the free-text task type as entered by the team. Casing and
	// whitespace are inconsistent ("Bug", " Bug", "BUG", "story ") — the
	// report normalizer maps it to a canonical type.
	RawType string

	// Status is one of StatusToDo, StatusInProgress, StatusDone.
	Status string

	// Points is the story point estimate. nil means no estimate was given
	// (common for bugs). When present, the value is >= 0.
	Points *int

	// Assignee is the developer name. Empty means unassigned.
	Assignee string

	// SprintID references an existing Sprint in the same snapshot. The
	// loader rejects datasets where this does not resolve.
	SprintID int
}

// Snapshot is a fully-loaded, validated dataset. It is shared read-only
// between the report engine, the HTTP API and the WebSocket hub — nothing
// mutates a Snapshot after the loader returns it.
type Snapshot struct {
	Sprints []Sprint
	Tasks   []Task
}

// SprintByID returns the sprint with the given ID, or false if absent.
func (s *Snapshot) SprintByID(id int) (Sprint, bool) {
	for _, sp := range s.Sprints {
		if sp.ID == id {
			return sp, true
		}
	}
	return Sprint{}, false
}

// Assigned reports whether the task has an assignee.
func (t Task) Assigned() bool { return t.Assignee != "" }
