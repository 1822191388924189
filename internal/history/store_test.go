package history

import (
	"testing"
	"time"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/grading"
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/profile"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(letter string, pct float64) grading.RunResult {
	return grading.RunResult{
		Report: &grading.GradeReport{
			Total:         90,
			Letter:        letter,
			CompliancePct: pct,
		},
		Detection: profile.DetectionResult{
			DetectedProfile: profile.TypePublicREST,
			Confidence:      0.9,
		},
		Profile: profile.TypePublicREST,
	}
}

func TestSaveRun_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	id, err := s.SaveRun("/specs/api.yaml", "abc123", sampleRun("A-", 91.5))
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if id == "" {
		t.Fatal("SaveRun returned an empty ID")
	}

	runs, err := s.ListRuns(10, "")
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	r := runs[0]
	if r.ID != id || r.DocumentPath != "/specs/api.yaml" || r.DocumentHash != "abc123" {
		t.Errorf("record = %+v", r)
	}
	if r.Letter != "A-" || r.CompliancePct != 91.5 || r.Profile != profile.TypePublicREST {
		t.Errorf("record = %+v", r)
	}
	if r.AutoFail {
		t.Error("auto_fail should round-trip as false")
	}
	if r.ReportJSON == "" {
		t.Error("full report JSON should be persisted")
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	timeNow = func() time.Time { return clock }
	defer func() { timeNow = time.Now }()

	for _, letter := range []string{"C", "B", "A"} {
		if _, err := s.SaveRun("/specs/api.yaml", "h", sampleRun(letter, 80)); err != nil {
			t.Fatal(err)
		}
		clock = clock.Add(time.Minute)
	}

	runs, err := s.ListRuns(10, "")
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("runs = %d, want 3", len(runs))
	}
	if runs[0].Letter != "A" || runs[2].Letter != "C" {
		t.Errorf("order = %s, %s, %s, want newest first", runs[0].Letter, runs[1].Letter, runs[2].Letter)
	}
}

func TestListRuns_PathFilterAndLimit(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := s.SaveRun("/specs/a.yaml", "h", sampleRun("B", 85)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.SaveRun("/specs/b.yaml", "h", sampleRun("D", 62)); err != nil {
		t.Fatal(err)
	}

	runs, err := s.ListRuns(2, "/specs/a.yaml")
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("runs = %d, want limit applied", len(runs))
	}
	for _, r := range runs {
		if r.DocumentPath != "/specs/a.yaml" {
			t.Errorf("filter leaked: %s", r.DocumentPath)
		}
	}
}

func TestListRuns_AutoFailRoundTrips(t *testing.T) {
	s := newTestStore(t)

	run := sampleRun("F", 40)
	run.Report.AutoFailTriggered = true
	if _, err := s.SaveRun("/specs/api.yaml", "h", run); err != nil {
		t.Fatal(err)
	}

	runs, err := s.ListRuns(1, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || !runs[0].AutoFail {
		t.Errorf("runs = %+v, want auto_fail true", runs)
	}
}
