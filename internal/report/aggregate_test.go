package report

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/sprintlens/sprintlens/pkg/types"
)

// baseTime anchors sprint dates so ordering is deterministic.
var baseTime = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

// sprint builds a two-week sprint starting n*14 days after baseTime.
func sprint(id int, name string, n int) types.Sprint {
	start := baseTime.Add(time.Duration(n*14) * 24 * time.Hour)
	return types.Sprint{ID: id, Name: name, Start: start, End: start.Add(14 * 24 * time.Hour)}
}

// task builds a normalized task via the real normalizer.
func task(id int, raw, status string, points *int, assignee string, sprintID int) NormalizedTask {
	return Normalize(types.Task{
		ID: id, Title: "t", RawType: raw, Status: status,
		Points: points, Assignee: assignee, SprintID: sprintID,
	})
}

// almostEqual returns true if a and b are within epsilon of each other.
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// --- velocity ---------------------------------------------------------------

func TestVelocityBySprint_SumsCoalescedDonePoints(t *testing.T) {
	sprints := []types.Sprint{sprint(1, "Alpha", 0)}
	tasks := []NormalizedTask{
		task(1, "Story", types.StatusDone, ip(8), "Janusz", 1),
		task(2, "Bug", types.StatusDone, nil, "Janusz", 1),
		task(3, " Bug", types.StatusDone, nil, "Ewa", 1),
		task(4, "Story", types.StatusDone, ip(5), "Ewa", 1),
		task(5, "Story", types.StatusInProgress, ip(13), "Ewa", 1), // not Done — excluded
	}

	got := VelocityBySprint(sprints, tasks)
	if len(got) != 1 {
		t.Fatalf("rows = %d, want 1", len(got))
	}
	if got[0].Velocity != 13 {
		t.Errorf("Alpha velocity = %d, want 13 (8 + 0 + 0 + 5)", got[0].Velocity)
	}
	if got[0].Sprint != "Alpha" {
		t.Errorf("sprint name = %q, want Alpha", got[0].Sprint)
	}
}

func TestVelocityBySprint_OmitsSprintsWithoutDoneTasks(t *testing.T) {
	sprints := []types.Sprint{sprint(1, "Alpha", 0), sprint(2, "Beta", 1), sprint(3, "Gamma", 2)}
	tasks := []NormalizedTask{
		task(1, "Story", types.StatusDone, ip(3), "", 1),
		task(2, "Story", types.StatusToDo, ip(5), "", 2), // Beta has only open work
		// Gamma has no tasks at all.
	}

	got := VelocityBySprint(sprints, tasks)
	if len(got) != 1 {
		t.Fatalf("rows = %d, want 1 (Beta and Gamma omitted, not reported as 0)", len(got))
	}
	if got[0].Sprint != "Alpha" {
		t.Errorf("surviving sprint = %q, want Alpha", got[0].Sprint)
	}
}

func TestVelocityBySprint_OrderedByStartDate(t *testing.T) {
	// Declared out of chronological order on purpose.
	sprints := []types.Sprint{sprint(2, "Beta", 1), sprint(1, "Alpha", 0)}
	tasks := []NormalizedTask{
		task(1, "Story", types.StatusDone, ip(5), "", 2),
		task(2, "Story", types.StatusDone, ip(8), "", 1),
	}

	got := VelocityBySprint(sprints, tasks)
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	if got[0].Sprint != "Alpha" || got[1].Sprint != "Beta" {
		t.Errorf("order = [%s, %s], want [Alpha, Beta]", got[0].Sprint, got[1].Sprint)
	}
}

// --- bug ratio --------------------------------------------------------------

func TestBugRatioBySprint_FloatingPointPercentage(t *testing.T) {
	sprints := []types.Sprint{sprint(1, "Alpha", 0)}
	tasks := []NormalizedTask{
		task(1, "Bug", types.StatusToDo, nil, "", 1),
		task(2, " Bug", types.StatusDone, nil, "", 1),
		task(3, "Story", types.StatusDone, ip(8), "", 1),
		task(4, "Story", types.StatusDone, ip(5), "", 1),
	}

	got, err := BugRatioBySprint(sprints, tasks)
	if err != nil {
		t.Fatalf("BugRatioBySprint: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("rows = %d, want 1", len(got))
	}
	row := got[0]
	if row.BugCount != 2 || row.StoryCount != 2 {
		t.Errorf("counts = (%d bugs, %d stories), want (2, 2)", row.BugCount, row.StoryCount)
	}
	// 2 of 4 — must be 50.0 exactly, not 0 via integer truncation.
	if !almostEqual(row.BugPercentage, 50.0, 1e-9) {
		t.Errorf("BugPercentage = %v, want 50.0", row.BugPercentage)
	}
}

func TestBugRatioBySprint_CountsAllStatuses(t *testing.T) {
	sprints := []types.Sprint{sprint(1, "Alpha", 0)}
	tasks := []NormalizedTask{
		task(1, "Bug", types.StatusToDo, nil, "", 1),
		task(2, "Story", types.StatusInProgress, ip(3), "", 1),
		task(3, "Chore", types.StatusDone, nil, "", 1), // OTHER — in total, in neither count
	}

	got, err := BugRatioBySprint(sprints, tasks)
	if err != nil {
		t.Fatalf("BugRatioBySprint: %v", err)
	}
	row := got[0]
	if row.BugCount != 1 || row.StoryCount != 1 {
		t.Errorf("counts = (%d, %d), want (1, 1)", row.BugCount, row.StoryCount)
	}
	want := 1.0 / 3.0 * 100
	if !almostEqual(row.BugPercentage, want, 1e-9) {
		t.Errorf("BugPercentage = %v, want %v (OTHER tasks count toward the total)", row.BugPercentage, want)
	}
}

func TestBugRatioOf_EmptyGroupFailsFast(t *testing.T) {
	_, err := bugRatioOf("Ghost", nil)
	if !errors.Is(err, ErrEmptyGroup) {
		t.Fatalf("empty group err = %v, want ErrEmptyGroup", err)
	}
}

// --- workload ---------------------------------------------------------------

func TestWorkloadByAssignee_SortedDescending(t *testing.T) {
	tasks := []NormalizedTask{
		task(1, "Story", types.StatusDone, ip(3), "Ewa", 1),
		task(2, "Story", types.StatusDone, ip(13), "Janusz", 1),
		task(3, "Bug", types.StatusDone, nil, "Ewa", 1),
		task(4, "Story", types.StatusDone, ip(5), "Janusz", 2),
		task(5, "Story", types.StatusToDo, ip(8), "Ewa", 2), // open — excluded
	}

	got := WorkloadByAssignee(tasks)
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	if got[0].Assignee != "Janusz" || got[0].TotalPoints != 18 || got[0].TaskCount != 2 {
		t.Errorf("top row = %+v, want Janusz with 18 points over 2 tasks", got[0])
	}
	if got[1].Assignee != "Ewa" || got[1].TotalPoints != 3 || got[1].TaskCount != 2 {
		t.Errorf("second row = %+v, want Ewa with 3 points over 2 tasks", got[1])
	}
}

func TestWorkloadByAssignee_UnassignedGroup(t *testing.T) {
	tasks := []NormalizedTask{
		task(1, "Bug", types.StatusDone, ip(2), "", 1),
		task(2, "Bug", types.StatusDone, nil, "", 1),
	}

	got := WorkloadByAssignee(tasks)
	if len(got) != 1 {
		t.Fatalf("rows = %d, want 1", len(got))
	}
	if got[0].Assignee != NoAssignee {
		t.Errorf("group key = %q, want %q", got[0].Assignee, NoAssignee)
	}
	if got[0].TotalPoints != 2 || got[0].TaskCount != 2 {
		t.Errorf("row = %+v, want 2 points over 2 tasks", got[0])
	}
}

func TestWorkloadByAssignee_TiesKeepFirstSeenOrder(t *testing.T) {
	tasks := []NormalizedTask{
		task(1, "Story", types.StatusDone, ip(5), "Janusz", 1),
		task(2, "Story", types.StatusDone, ip(5), "Ewa", 1),
	}

	got := WorkloadByAssignee(tasks)
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	if got[0].Assignee != "Janusz" || got[1].Assignee != "Ewa" {
		t.Errorf("tie order = [%s, %s], want first-seen [Janusz, Ewa]", got[0].Assignee, got[1].Assignee)
	}
}
