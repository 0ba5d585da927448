package report

import (
	"errors"
	"sort"
	"time"

	"github.com/sprintlens/sprintlens/pkg/types"
)

// NoAssignee is the group key used for tasks without an assignee.
const NoAssignee = "no assignee"

// ErrEmptyGroup is returned when a bug ratio is requested for a sprint with
// no tasks. Grouping only ever produces non-empty groups, so hitting this
// means a caller violated the precondition — fail fast instead of returning
// 0 or NaN.
var ErrEmptyGroup = errors.New("report: bug ratio over empty task group")

// SprintMetric is the velocity of one sprint.
type SprintMetric struct {
	SprintID int       `json:"sprint_id"`
	Sprint   string    `json:"sprint"`
	Start    time.Time `json:"start"`
	Velocity int       `json:"velocity"`
}

// BugRatioRow is the bug/story breakdown of one sprint's tasks.
type BugRatioRow struct {
	Sprint        string  `json:"sprint"`
	BugCount      int     `json:"bug_count"`
	StoryCount    int     `json:"story_count"`
	BugPercentage float64 `json:"bug_percentage"`
}

// WorkloadRow is one assignee's completed workload.
type WorkloadRow struct {
	Assignee    string `json:"assignee"`
	TaskCount   int    `json:"task_count"`
	TotalPoints int    `json:"total_points"`
}

// VelocityBySprint sums the coalesced points of Done tasks per sprint.
// Sprints with no Done tasks do not appear in the result — the grouping is
// over existing (sprint, done-task) pairs, not a projection over all
// sprints. Rows are ordered by sprint start date.
func VelocityBySprint(sprints []types.Sprint, tasks []NormalizedTask) []SprintMetric {
	sums := make(map[int]int)
	for _, t := range tasks {
		if t.Status != types.StatusDone {
			continue
		}
		sums[t.SprintID] += t.CleanPoints
	}

	out := make([]SprintMetric, 0, len(sums))
	for _, sp := range sortedByStart(sprints) {
		v, ok := sums[sp.ID]
		if !ok {
			continue
		}
		out = append(out, SprintMetric{
			SprintID: sp.ID,
			Sprint:   sp.Name,
			Start:    sp.Start,
			Velocity: v,
		})
	}
	return out
}

// BugRatioBySprint groups all tasks (any status) by sprint and computes the
// bug/story counts and the bug percentage per group. Rows are ordered by
// sprint start date. Sprints with no tasks are omitted, which is what keeps
// the percentage division safe.
func BugRatioBySprint(sprints []types.Sprint, tasks []NormalizedTask) ([]BugRatioRow, error) {
	groups := make(map[int][]NormalizedTask)
	for _, t := range tasks {
		groups[t.SprintID] = append(groups[t.SprintID], t)
	}

	out := make([]BugRatioRow, 0, len(groups))
	for _, sp := range sortedByStart(sprints) {
		group, ok := groups[sp.ID]
		if !ok {
			continue
		}
		row, err := bugRatioOf(sp.Name, group)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// bugRatioOf computes one sprint's bug ratio row. A single pass accumulates
// both predicate counters; the percentage divides as float64 so 2 bugs out
// of 4 tasks yields 50.0, not 0.
func bugRatioOf(sprint string, group []NormalizedTask) (BugRatioRow, error) {
	if len(group) == 0 {
		return BugRatioRow{}, ErrEmptyGroup
	}
	row := BugRatioRow{Sprint: sprint}
	for _, t := range group {
		switch t.CleanType {
		case TypeBug:
			row.BugCount++
		case TypeStory:
			row.StoryCount++
		}
	}
	row.BugPercentage = float64(row.BugCount) / float64(len(group)) * 100
	return row, nil
}

// WorkloadByAssignee groups Done tasks by assignee and returns task counts
// and summed coalesced points, sorted descending by points. Tasks without
// an assignee group under NoAssignee. Ties keep first-seen grouping order.
func WorkloadByAssignee(tasks []NormalizedTask) []WorkloadRow {
	index := make(map[string]int)
	var rows []WorkloadRow
	for _, t := range tasks {
		if t.Status != types.StatusDone {
			continue
		}
		key := t.Assignee
		if key == "" {
			key = NoAssignee
		}
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, WorkloadRow{Assignee: key})
		}
		rows[i].TaskCount++
		rows[i].TotalPoints += t.CleanPoints
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalPoints > rows[j].TotalPoints
	})
	return rows
}

// sortedByStart returns the sprints ordered by start date without mutating
// the input slice.
func sortedByStart(sprints []types.Sprint) []types.Sprint {
	out := make([]types.Sprint, len(sprints))
	copy(out, sprints)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}
