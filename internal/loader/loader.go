package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sprintlens/sprintlens/pkg/types"
)

// dateLayout is the format for sprint start/end dates in the dataset file.
const dateLayout = "2006-01-02"

// Sentinel errors for the load-boundary invariants. All of them are fatal:
// the report engine assumes a snapshot that already satisfies them.
var (
	// ErrUnknownSprint means a task references a sprint ID that does not
	// exist in the same dataset.
	ErrUnknownSprint = errors.New("loader: task references unknown sprint")

	// ErrDuplicateID means two sprints or two tasks share an ID.
	ErrDuplicateID = errors.New("loader: duplicate record id")

	// ErrBadDates means a sprint's start date is not before its end date.
	ErrBadDates = errors.New("loader: sprint start must be before end")

	// ErrNegativePoints means a task carries a negative story point value.
	ErrNegativePoints = errors.New("loader: story points must be >= 0")

	// ErrBadStatus means a task status is outside ToDo/InProgress/Done.
	ErrBadStatus = errors.New("loader: unknown task status")
)

// rawSprint mirrors one sprint object in the dataset file.
type rawSprint struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Start string `json:"start_date"`
	End   string `json:"end_date"`
	Goal  string `json:"goal"`
}

// rawTask mirrors one task object in the dataset file. Points and assignee
// are optional; type labels are taken verbatim — cleaning them is the
// report engine's job, not the loader's.
type rawTask struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Points   *int   `json:"story_points"`
	Assignee string `json:"assignee"`
	SprintID int    `json:"sprint_id"`
}

// rawDataset is the top-level shape of the dataset file.
type rawDataset struct {
	Sprints []rawSprint `json:"sprints"`
	Tasks   []rawTask   `json:"tasks"`
}

// Load reads and validates the JSON dataset at path. The returned snapshot
// satisfies every load-boundary invariant: unique IDs, start < end,
// non-negative points, known statuses, and every task resolving to an
// existing sprint.
func Load(path string) (*types.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a raw dataset document.
func Parse(data []byte) (*types.Snapshot, error) {
	var raw rawDataset
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("loader: parse json: %w", err)
	}

	snap := &types.Snapshot{
		Sprints: make([]types.Sprint, 0, len(raw.Sprints)),
		Tasks:   make([]types.Task, 0, len(raw.Tasks)),
	}

	sprintIDs := make(map[int]struct{}, len(raw.Sprints))
	for i, rs := range raw.Sprints {
		if _, dup := sprintIDs[rs.ID]; dup {
			return nil, fmt.Errorf("sprints[%d] %q: id %d: %w", i, rs.Name, rs.ID, ErrDuplicateID)
		}
		sprintIDs[rs.ID] = struct{}{}

		start, err := time.Parse(dateLayout, rs.Start)
		if err != nil {
			return nil, fmt.Errorf("sprints[%d] %q: start_date: %w", i, rs.Name, err)
		}
		end, err := time.Parse(dateLayout, rs.End)
		if err != nil {
			return nil, fmt.Errorf("sprints[%d] %q: end_date: %w", i, rs.Name, err)
		}
		if !start.Before(end) {
			return nil, fmt.Errorf("sprints[%d] %q: %w", i, rs.Name, ErrBadDates)
		}

		snap.Sprints = append(snap.Sprints, types.Sprint{
			ID: rs.ID, Name: rs.Name, Start: start, End: end, Goal: rs.Goal,
		})
	}

	taskIDs := make(map[int]struct{}, len(raw.Tasks))
	for i, rt := range raw.Tasks {
		if _, dup := taskIDs[rt.ID]; dup {
			return nil, fmt.Errorf("tasks[%d] %q: id %d: %w", i, rt.Title, rt.ID, ErrDuplicateID)
		}
		taskIDs[rt.ID] = struct{}{}

		switch rt.Status {
		case types.StatusToDo, types.StatusInProgress, types.StatusDone:
		default:
			return nil, fmt.Errorf("tasks[%d] %q: status %q: %w", i, rt.Title, rt.Status, ErrBadStatus)
		}
		if rt.Points != nil && *rt.Points < 0 {
			return nil, fmt.Errorf("tasks[%d] %q: points %d: %w", i, rt.Title, *rt.Points, ErrNegativePoints)
		}
		if _, ok := sprintIDs[rt.SprintID]; !ok {
			return nil, fmt.Errorf("tasks[%d] %q: sprint_id %d: %w", i, rt.Title, rt.SprintID, ErrUnknownSprint)
		}

		snap.Tasks = append(snap.Tasks, types.Task{
			ID: rt.ID, Title: rt.Title, RawType: rt.Type, Status: rt.Status,
			Points: rt.Points, Assignee: rt.Assignee, SprintID: rt.SprintID,
		})
	}

	return snap, nil
}
