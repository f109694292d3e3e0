package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestExecutorReportsExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not executable on windows")
	}
	script := filepath.Join(t.TempDir(), "fail")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho nope >&2\nexit 3\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	var stdout, stderr bytes.Buffer
	err := Default().Run(context.Background(), script, []string{"a"}, &stdout, &stderr)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.Code != 3 {
		t.Fatalf("unexpected exit code %d", exitErr.Code)
	}
	if stderr.String() != "nope\n" {
		t.Fatalf("expected stderr to be streamed, got %q", stderr.String())
	}
}

func TestExecutorMissingBinary(t *testing.T) {
	err := Default().Run(context.Background(), "clearly-not-present-binary", nil, nil, nil)
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Fatal("missing binary must not be reported as an exit status")
	}
}

func TestLineQuotesArguments(t *testing.T) {
	got := Line("python3", []string{"-m", "pip", "install", "my pkg"})
	if got != `python3 -m pip install "my pkg"` {
		t.Fatalf("unexpected line %q", got)
	}
}
