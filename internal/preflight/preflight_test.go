package preflight

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"dubsetup/internal/config"
	"dubsetup/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDirectoryAccess_Empty(t *testing.T) {
	if result := CheckDirectoryAccess("test", ""); result.Passed {
		t.Fatal("expected failure for empty path")
	}
}

func TestCheckFolders(t *testing.T) {
	base := t.TempDir()
	if err := os.Mkdir(filepath.Join(base, "captions"), 0o755); err != nil {
		t.Fatal(err)
	}
	result := CheckFolders(base, []string{"captions", "audio"})
	if result.Passed {
		t.Fatal("expected failure with a missing folder")
	}
	if result.Detail != "missing: audio" {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(nil, t.TempDir(), ""); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_WorkspaceChecks(t *testing.T) {
	cfg := config.Default()
	workDir := t.TempDir()
	base := filepath.Join(workDir, "videos")
	for _, folder := range cfg.Workspace.Folders {
		if err := os.MkdirAll(filepath.Join(base, folder), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	results := RunAll(&cfg, workDir, base)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
}

func TestRunAll_BaseDirUnknown(t *testing.T) {
	cfg := config.Default()
	if results := RunAll(&cfg, t.TempDir(), ""); len(results) != 1 {
		t.Fatalf("expected only the working directory check, got %v", results)
	}
}

func TestCheckSystemDeps(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not executable on windows")
	}
	cfg := config.Default()
	cfg.Install.Python = "python3"
	testsupport.StubBinaries(t, t.TempDir(), "python3", "apt-get")

	statuses := CheckSystemDeps(&cfg, t.TempDir(), "linux")
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	names := []string{statuses[0].Name, statuses[1].Name, statuses[2].Name}
	if strings.Join(names, ",") != "Python,FFmpeg,apt-get" {
		t.Fatalf("unexpected order: %v", names)
	}
	if !statuses[0].Available || !statuses[2].Available {
		t.Fatalf("expected stubs to be found: %+v", statuses)
	}
	if statuses[1].Available {
		t.Fatal("ffmpeg should be missing")
	}

	darwin := CheckSystemDeps(&cfg, t.TempDir(), "darwin")
	if darwin[2].Name != "Homebrew" || darwin[2].Available {
		t.Fatalf("unexpected darwin row: %+v", darwin[2])
	}
}
