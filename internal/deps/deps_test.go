package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeStub(t *testing.T, path string) {
	t.Helper()
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(path, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	writeStub(t, present)
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Path == "" {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for blank command: %q", results[2].Detail)
	}
}

func TestCheckFFmpegOnPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not executable on windows")
	}
	binDir := t.TempDir()
	writeStub(t, filepath.Join(binDir, "ffmpeg"))
	t.Setenv("PATH", binDir)

	status := CheckFFmpeg(t.TempDir())
	if !status.Available {
		t.Fatalf("expected ffmpeg on PATH, got detail %q", status.Detail)
	}
	if status.Path != filepath.Join(binDir, "ffmpeg") {
		t.Fatalf("unexpected path %q", status.Path)
	}
}

func TestCheckFFmpegInWorkDir(t *testing.T) {
	t.Setenv("PATH", "")
	workDir := t.TempDir()
	local := filepath.Join(workDir, FFmpegName())
	writeStub(t, local)

	status := CheckFFmpeg(workDir)
	if !status.Available {
		t.Fatalf("expected ffmpeg in work dir, got detail %q", status.Detail)
	}
	if status.Path != local {
		t.Fatalf("unexpected path %q", status.Path)
	}
}

func TestCheckFFmpegNotFound(t *testing.T) {
	t.Setenv("PATH", "")
	status := CheckFFmpeg(t.TempDir())
	if status.Available {
		t.Fatal("expected ffmpeg resolution to fail")
	}
	if status.Detail == "" {
		t.Fatal("expected detail message when ffmpeg is unavailable")
	}
}

func TestExecutableName(t *testing.T) {
	if got := ExecutableName("ffmpeg", "windows"); got != "ffmpeg.exe" {
		t.Fatalf("unexpected windows name %q", got)
	}
	if got := ExecutableName("ffmpeg", "linux"); got != "ffmpeg" {
		t.Fatalf("unexpected linux name %q", got)
	}
}
