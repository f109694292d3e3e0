package renumber_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dubsetup/internal/renumber"
	"dubsetup/internal/testsupport"
)

func TestRunAssignsNumbersAboveHighest(t *testing.T) {
	dir := t.TempDir()
	testsupport.Touch(t, dir, "a.mp4", "2.mp4", "notes.mp4")

	plan, applied, err := renumber.Run(dir, ".mp4", false, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if plan.Highest != "2" {
		t.Fatalf("unexpected highest: %s", plan.Highest)
	}
	if len(plan.Moves) != 2 || len(applied) != 2 {
		t.Fatalf("expected 2 moves, got plan %v applied %v", plan.Moves, applied)
	}
	got := strings.Join(testsupport.ListNames(t, dir), ",")
	if got != "2.mp4,3.mp4,4.mp4" {
		t.Fatalf("unexpected names: %s", got)
	}
	data, err := os.ReadFile(filepath.Join(dir, "2.mp4"))
	if err != nil || string(data) != "2.mp4" {
		t.Fatalf("numeric file must be untouched, content %q err %v", data, err)
	}
}

func TestBuildSortsCandidates(t *testing.T) {
	dir := t.TempDir()
	testsupport.Touch(t, dir, "zeta.mp4", "alpha.MP4", "7.mp4")

	plan, err := renumber.Build(dir, ".mp4")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []renumber.Move{{From: "alpha.MP4", To: "8.mp4"}, {From: "zeta.mp4", To: "9.mp4"}}
	if len(plan.Moves) != len(want) {
		t.Fatalf("unexpected moves: %v", plan.Moves)
	}
	for i := range want {
		if plan.Moves[i] != want[i] {
			t.Fatalf("move %d: got %v want %v", i, plan.Moves[i], want[i])
		}
	}
}

func TestBuildIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	testsupport.Touch(t, dir, "clip.mov", "readme.txt", "-1.mp4", "01.mp4")
	if err := os.Mkdir(filepath.Join(dir, "folder.mp4"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	plan, err := renumber.Build(dir, ".mp4")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if plan.Highest != "1" {
		t.Fatalf("expected 01 to count as 1, got %s", plan.Highest)
	}
	if len(plan.Moves) != 1 || plan.Moves[0].From != "-1.mp4" || plan.Moves[0].To != "2.mp4" {
		t.Fatalf("unexpected moves: %v", plan.Moves)
	}
}

func TestRunEmptyDirIsNoop(t *testing.T) {
	plan, _, err := renumber.Run("", ".mp4", false, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !plan.Empty() {
		t.Fatalf("expected empty plan, got %v", plan.Moves)
	}

	dir := t.TempDir()
	testsupport.Touch(t, dir, "1.mp4", "2.mp4")
	plan, _, err = renumber.Run(dir, ".mp4", false, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !plan.Empty() {
		t.Fatalf("expected no moves for numeric-only dir, got %v", plan.Moves)
	}
}

func TestRunDryRunLeavesFiles(t *testing.T) {
	dir := t.TempDir()
	testsupport.Touch(t, dir, "intro.mp4")

	plan, applied, err := renumber.Run(dir, ".mp4", true, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if applied != nil {
		t.Fatalf("dry run must not report applied moves, got %v", applied)
	}
	if len(plan.Moves) != 1 || plan.Moves[0].To != "1.mp4" {
		t.Fatalf("unexpected plan: %v", plan.Moves)
	}
	if got := testsupport.ListNames(t, dir); len(got) != 1 || got[0] != "intro.mp4" {
		t.Fatalf("dry run must not rename, got %v", got)
	}
}

func TestApplyRefusesCollision(t *testing.T) {
	dir := t.TempDir()
	testsupport.Touch(t, dir, "a.mp4", "b.mp4", "2.mp4")
	plan := renumber.Plan{Dir: dir, Moves: []renumber.Move{
		{From: "a.mp4", To: "1.mp4"},
		{From: "b.mp4", To: "2.mp4"},
	}}

	done, err := renumber.Apply(plan, nil)
	if !errors.Is(err, renumber.ErrCollision) {
		t.Fatalf("expected ErrCollision, got %v", err)
	}
	if len(done) != 1 {
		t.Fatalf("expected first move applied, got %v", done)
	}
	data, err := os.ReadFile(filepath.Join(dir, "2.mp4"))
	if err != nil || string(data) != "2.mp4" {
		t.Fatalf("existing target must survive, content %q err %v", data, err)
	}
}

func TestRunMissingDir(t *testing.T) {
	if _, _, err := renumber.Run(filepath.Join(t.TempDir(), "missing"), ".mp4", false, nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestBuildKeepsLongNumericNames(t *testing.T) {
	dir := t.TempDir()
	testsupport.Touch(t, dir, "99999999999999999999.mp4", "2.mp4", "a.mp4")

	plan, err := renumber.Build(dir, ".mp4")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if plan.Highest != "99999999999999999999" {
		t.Fatalf("unexpected highest: %s", plan.Highest)
	}
	want := []renumber.Move{{From: "a.mp4", To: "100000000000000000000.mp4"}}
	if len(plan.Moves) != 1 || plan.Moves[0] != want[0] {
		t.Fatalf("numeric names must never move, got %v", plan.Moves)
	}
}

func TestRunReportsAppliedMovesOnCollision(t *testing.T) {
	dir := t.TempDir()
	testsupport.Touch(t, dir, "a.mp4", "b.mp4")
	if err := os.Mkdir(filepath.Join(dir, "2.mp4"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	plan, applied, err := renumber.Run(dir, ".mp4", false, nil)
	if !errors.Is(err, renumber.ErrCollision) {
		t.Fatalf("expected ErrCollision, got %v", err)
	}
	if len(plan.Moves) != 2 {
		t.Fatalf("unexpected plan: %v", plan.Moves)
	}
	if len(applied) != 1 || applied[0] != (renumber.Move{From: "a.mp4", To: "1.mp4"}) {
		t.Fatalf("expected only the first move applied, got %v", applied)
	}
	if _, err := os.Stat(filepath.Join(dir, "b.mp4")); err != nil {
		t.Fatal("unapplied move must leave the source in place")
	}
}
