package report

import (
	"github.com/sprintlens/sprintlens/pkg/types"
)

// Urgent audit reasons.
const (
	ReasonUnassigned  = "Unassigned"
	ReasonCriticalBug = "Critical Bug"
)

// CleanedRow is one task in the cleaned listing — no aggregation, just the
// normalized view of each task.
type CleanedRow struct {
	Title       string `json:"title"`
	CleanType   string `json:"clean_type"`
	CleanPoints int    `json:"clean_points"`
	Status      string `json:"status"`
}

// UrgentRow is one entry in the urgent issues audit.
type UrgentRow struct {
	TaskID int    `json:"task_id"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// Bundle holds all seven reports computed from one snapshot.
type Bundle struct {
	Cleaned  []CleanedRow   `json:"cleaned_tasks"`
	Velocity []SprintMetric `json:"sprint_velocity"`
	BugRatio []BugRatioRow  `json:"bug_ratio"`
	Workload []WorkloadRow  `json:"workload_ranking"`
	Trend    []TrendRow     `json:"velocity_trend"`
	Urgent   []UrgentRow    `json:"urgent_issues"`
	Ranking  []Ranked       `json:"developer_ranking"`
}

// Engine derives reports from one immutable snapshot. It normalizes the
// task set once at construction; every report method is then an independent
// pure pass, so methods may be called in any order (or concurrently).
type Engine struct {
	sprints []types.Sprint
	tasks   []NormalizedTask
}

// NewEngine builds an Engine over the given snapshot. The snapshot must
// already satisfy the load-boundary invariants (referential integrity,
// valid dates) — the engine assumes them rather than re-checking.
func NewEngine(snap *types.Snapshot) *Engine {
	return &Engine{
		sprints: snap.Sprints,
		tasks:   NormalizeAll(snap.Tasks),
	}
}

// CleanedTasks returns report 1: the per-task normalized listing.
func (e *Engine) CleanedTasks() []CleanedRow {
	out := make([]CleanedRow, len(e.tasks))
	for i, t := range e.tasks {
		out[i] = CleanedRow{
			Title:       t.Title,
			CleanType:   t.CleanType,
			CleanPoints: t.CleanPoints,
			Status:      t.Status,
		}
	}
	return out
}

// SprintVelocity returns report 2: summed Done points per sprint.
func (e *Engine) SprintVelocity() []SprintMetric {
	return VelocityBySprint(e.sprints, e.tasks)
}

// BugRatio returns report 3: bug/story breakdown per sprint.
func (e *Engine) BugRatio() ([]BugRatioRow, error) {
	return BugRatioBySprint(e.sprints, e.tasks)
}

// Workload returns report 4: completed workload per assignee, descending.
func (e *Engine) Workload() []WorkloadRow {
	return WorkloadByAssignee(e.tasks)
}

// VelocityTrend returns report 5: sprint-over-sprint velocity deltas.
func (e *Engine) VelocityTrend() []TrendRow {
	return Trend(e.SprintVelocity())
}

// UrgentIssues returns report 6: the concatenation of all unassigned tasks
// and all open bugs. The two sub-lists are filtered independently and not
// de-duplicated — an unassigned open bug appears twice, once per reason.
func (e *Engine) UrgentIssues() []UrgentRow {
	var out []UrgentRow
	for _, t := range e.tasks {
		if t.Assignee == "" {
			out = append(out, UrgentRow{TaskID: t.ID, Title: t.Title, Reason: ReasonUnassigned})
		}
	}
	for _, t := range e.tasks {
		if t.CleanType == TypeBug && t.Status != types.StatusDone {
			out = append(out, UrgentRow{TaskID: t.ID, Title: t.Title, Reason: ReasonCriticalBug})
		}
	}
	return out
}

// DeveloperRanking returns report 7: competition-ranked assignees by the
// sum of their Done tasks' points.
//
// Unlike reports 2 and 4, points are summed raw here — tasks without an
// estimate contribute nothing, and an assignee whose Done tasks all lack
// estimates has no score at all and is dropped by the ranker.
func (e *Engine) DeveloperRanking() []Ranked {
	index := make(map[string]int)
	var keys []string
	var sums []*int
	for _, t := range e.tasks {
		if t.Status != types.StatusDone || t.Assignee == "" {
			continue
		}
		i, ok := index[t.Assignee]
		if !ok {
			i = len(keys)
			index[t.Assignee] = i
			keys = append(keys, t.Assignee)
			sums = append(sums, nil)
		}
		if t.RawPoints != nil {
			if sums[i] == nil {
				v := 0
				sums[i] = &v
			}
			*sums[i] += *t.RawPoints
		}
	}

	candidates := make([]Candidate, len(keys))
	for i, k := range keys {
		candidates[i] = Candidate{Key: k, Score: sums[i]}
	}
	return Rank(candidates)
}

// Build computes all seven reports. The only possible failure is the bug
// ratio precondition, which cannot trigger on a snapshot produced by the
// loader; it is surfaced rather than swallowed regardless.
func (e *Engine) Build() (*Bundle, error) {
	ratio, err := e.BugRatio()
	if err != nil {
		return nil, err
	}
	return &Bundle{
		Cleaned:  e.CleanedTasks(),
		Velocity: e.SprintVelocity(),
		BugRatio: ratio,
		Workload: e.Workload(),
		Trend:    e.VelocityTrend(),
		Urgent:   e.UrgentIssues(),
		Ranking:  e.DeveloperRanking(),
	}, nil
}
