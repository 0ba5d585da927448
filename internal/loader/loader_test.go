package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "team.json")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return p
}

const validDataset = `{
  "sprints": [
    {"id": 1, "name": "Alpha", "start_date": "2026-01-05", "end_date": "2026-01-19", "goal": "Ship login"},
    {"id": 2, "name": "Beta", "start_date": "2026-01-19", "end_date": "2026-02-02"}
  ],
  "tasks": [
    {"id": 1, "title": "Login page", "type": "Story", "status": "Done", "story_points": 8, "assignee": "Janusz", "sprint_id": 1},
    {"id": 2, "title": "Fix crash", "type": " Bug", "status": "Done", "assignee": "Janusz", "sprint_id": 1},
    {"id": 3, "title": "Dark mode", "type": "story ", "status": "ToDo", "story_points": 5, "sprint_id": 2}
  ]
}`

func TestLoad_ValidDataset(t *testing.T) {
	p := writeDataset(t, validDataset)
	snap, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(snap.Sprints) != 2 || len(snap.Tasks) != 3 {
		t.Fatalf("loaded %d sprints / %d tasks, want 2 / 3", len(snap.Sprints), len(snap.Tasks))
	}

	alpha := snap.Sprints[0]
	if alpha.Name != "Alpha" || !alpha.Start.Before(alpha.End) || alpha.Goal != "Ship login" {
		t.Errorf("Alpha = %+v", alpha)
	}

	// Optional fields: missing story_points stays nil, missing assignee is "".
	crash := snap.Tasks[1]
	if crash.Points != nil {
		t.Errorf("Fix crash Points = %d, want nil", *crash.Points)
	}
	dark := snap.Tasks[2]
	if dark.Assignee != "" || dark.Points == nil || *dark.Points != 5 {
		t.Errorf("Dark mode = %+v, want unassigned with 5 points", dark)
	}

	// Raw type labels survive untouched for the normalizer.
	if crash.RawType != " Bug" {
		t.Errorf("RawType = %q, want %q (loader must not clean labels)", crash.RawType, " Bug")
	}
}

func TestParse_UnknownSprintReference(t *testing.T) {
	_, err := Parse([]byte(`{
	  "sprints": [{"id": 1, "name": "Alpha", "start_date": "2026-01-05", "end_date": "2026-01-19"}],
	  "tasks": [{"id": 1, "title": "Orphan", "type": "Bug", "status": "ToDo", "sprint_id": 99}]
	}`))
	if !errors.Is(err, ErrUnknownSprint) {
		t.Fatalf("err = %v, want ErrUnknownSprint", err)
	}
}

func TestParse_DuplicateSprintID(t *testing.T) {
	_, err := Parse([]byte(`{
	  "sprints": [
	    {"id": 1, "name": "Alpha", "start_date": "2026-01-05", "end_date": "2026-01-19"},
	    {"id": 1, "name": "Alpha again", "start_date": "2026-01-19", "end_date": "2026-02-02"}
	  ]
	}`))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
}

func TestParse_DuplicateTaskID(t *testing.T) {
	_, err := Parse([]byte(`{
	  "sprints": [{"id": 1, "name": "Alpha", "start_date": "2026-01-05", "end_date": "2026-01-19"}],
	  "tasks": [
	    {"id": 4, "title": "a", "type": "Story", "status": "Done", "sprint_id": 1},
	    {"id": 4, "title": "b", "type": "Story", "status": "Done", "sprint_id": 1}
	  ]
	}`))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
}

func TestParse_StartNotBeforeEnd(t *testing.T) {
	_, err := Parse([]byte(`{
	  "sprints": [{"id": 1, "name": "Alpha", "start_date": "2026-01-19", "end_date": "2026-01-19"}]
	}`))
	if !errors.Is(err, ErrBadDates) {
		t.Fatalf("err = %v, want ErrBadDates", err)
	}
}

func TestParse_NegativePoints(t *testing.T) {
	_, err := Parse([]byte(`{
	  "sprints": [{"id": 1, "name": "Alpha", "start_date": "2026-01-05", "end_date": "2026-01-19"}],
	  "tasks": [{"id": 1, "title": "a", "type": "Story", "status": "Done", "story_points": -3, "sprint_id": 1}]
	}`))
	if !errors.Is(err, ErrNegativePoints) {
		t.Fatalf("err = %v, want ErrNegativePoints", err)
	}
}

func TestParse_UnknownStatus(t *testing.T) {
	_, err := Parse([]byte(`{
	  "sprints": [{"id": 1, "name": "Alpha", "start_date": "2026-01-05", "end_date": "2026-01-19"}],
	  "tasks": [{"id": 1, "title": "a", "type": "Story", "status": "Blocked", "sprint_id": 1}]
	}`))
	if !errors.Is(err, ErrBadStatus) {
		t.Fatalf("err = %v, want ErrBadStatus", err)
	}
}

func TestParse_MalformedTypeLabelIsNotAnError(t *testing.T) {
	snap, err := Parse([]byte(`{
	  "sprints": [{"id": 1, "name": "Alpha", "start_date": "2026-01-05", "end_date": "2026-01-19"}],
	  "tasks": [{"id": 1, "title": "a", "type": "???", "status": "Done", "sprint_id": 1}]
	}`))
	if err != nil {
		t.Fatalf("unrecognized type label must load fine (normalizer maps it to OTHER): %v", err)
	}
	if snap.Tasks[0].RawType != "???" {
		t.Errorf("RawType = %q, want preserved", snap.Tasks[0].RawType)
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"sprints": [`)); err == nil {
		t.Fatal("malformed JSON should fail")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("missing file should fail")
	}
}

func TestSnapshot_SprintByID(t *testing.T) {
	p := writeDataset(t, validDataset)
	snap, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sp, ok := snap.SprintByID(2); !ok || sp.Name != "Beta" {
		t.Errorf("SprintByID(2) = %+v, %v; want Beta", sp, ok)
	}
	if _, ok := snap.SprintByID(42); ok {
		t.Error("SprintByID(42) should report absent")
	}
}
