package acquire_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dubsetup/internal/acquire"
	"dubsetup/internal/command"
	"dubsetup/internal/deps"
	"dubsetup/internal/logging"
	"dubsetup/internal/testsupport"
)

func buildZip(t *testing.T, entries map[string]string, order []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(entries[name])); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func serveBytes(t *testing.T, status int, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newArchive(url, workDir string) *acquire.ArchiveStrategy {
	return &acquire.ArchiveStrategy{
		URL:     url,
		WorkDir: workDir,
		Suffix:  "ffmpeg.exe",
		Target:  "ffmpeg.exe",
		Client:  http.DefaultClient,
		Logger:  logging.NewNop(),
	}
}

func TestArchiveStrategyExtractsFirstMatch(t *testing.T) {
	order := []string{
		"ffmpeg-master/README.txt",
		"ffmpeg-master/bin/ffmpeg.exe",
		"ffmpeg-master/other/ffmpeg.exe",
	}
	data := buildZip(t, map[string]string{
		order[0]: "readme",
		order[1]: "first",
		order[2]: "second",
	}, order)
	srv := serveBytes(t, http.StatusOK, data)
	workDir := t.TempDir()

	if err := newArchive(srv.URL, workDir).Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(workDir, "ffmpeg.exe"))
	if err != nil {
		t.Fatalf("read extracted binary: %v", err)
	}
	if string(got) != "first" {
		t.Fatalf("expected first matching entry, got %q", got)
	}
	if _, err := os.Stat(filepath.Join(workDir, "ffmpeg.zip")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected archive to be deleted, stat err=%v", err)
	}
	if names := testsupport.ListNames(t, workDir); len(names) != 1 {
		t.Fatalf("expected only the binary to remain, got %v", names)
	}
}

func TestArchiveStrategyMissingEntry(t *testing.T) {
	data := buildZip(t, map[string]string{"bin/ffprobe.exe": "x"}, []string{"bin/ffprobe.exe"})
	srv := serveBytes(t, http.StatusOK, data)
	workDir := t.TempDir()

	err := newArchive(srv.URL, workDir).Acquire(context.Background())
	if err == nil || !strings.Contains(err.Error(), "missing ffmpeg.exe") {
		t.Fatalf("expected missing entry error, got %v", err)
	}
	if names := testsupport.ListNames(t, workDir); len(names) != 0 {
		t.Fatalf("expected work dir to be clean, got %v", names)
	}
}

func TestArchiveStrategyBadStatus(t *testing.T) {
	srv := serveBytes(t, http.StatusNotFound, nil)
	err := newArchive(srv.URL, t.TempDir()).Acquire(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unexpected status 404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestArchiveStrategyCorruptArchive(t *testing.T) {
	srv := serveBytes(t, http.StatusOK, []byte("not a zip"))
	if err := newArchive(srv.URL, t.TempDir()).Acquire(context.Background()); err == nil {
		t.Fatal("expected corrupt archive error")
	}
}

func TestPackageManagerIgnoresFailures(t *testing.T) {
	fake := &testsupport.FakeExecutor{Results: map[string]error{
		"sudo apt-get update": &command.ExitError{Command: "sudo apt-get update", Code: 100},
	}}
	strategy := acquire.ForPlatform("linux", acquire.Params{Exec: fake, Logger: logging.NewNop()})
	if strategy.Name() != "Apt" {
		t.Fatalf("unexpected strategy %q", strategy.Name())
	}
	if err := strategy.Acquire(context.Background()); err != nil {
		t.Fatalf("expected failures to be ignored, got %v", err)
	}
	want := []string{"sudo apt-get update", "sudo apt-get install -y ffmpeg"}
	if got := fake.Lines(); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected commands %v", got)
	}
}

func TestForPlatform(t *testing.T) {
	cases := map[string]string{
		"windows": "download",
		"darwin":  "Brew",
		"linux":   "Apt",
		"plan9":   "manual",
	}
	for goos, want := range cases {
		if got := acquire.ForPlatform(goos, acquire.Params{}).Name(); got != want {
			t.Errorf("ForPlatform(%s) = %s, want %s", goos, got, want)
		}
	}
	fake := &testsupport.FakeExecutor{}
	if err := acquire.ForPlatform("darwin", acquire.Params{Exec: fake}).Acquire(context.Background()); err != nil {
		t.Fatalf("brew strategy: %v", err)
	}
	if got := fake.Lines(); len(got) != 1 || got[0] != "brew install ffmpeg" {
		t.Fatalf("unexpected brew commands %v", got)
	}
}

type fakeStrategy struct {
	err   error
	calls int
	then  func()
}

func (f *fakeStrategy) Name() string { return "fake" }

func (f *fakeStrategy) Acquire(context.Context) error {
	f.calls++
	if f.then != nil {
		f.then()
	}
	return f.err
}

func TestEnsureSkipsWhenPresent(t *testing.T) {
	strategy := &fakeStrategy{}
	check := func(string) deps.Status { return deps.Status{Available: true, Path: "/usr/bin/ffmpeg"} }
	var out bytes.Buffer
	e := acquire.NewEnsurer(t.TempDir(), "linux", strategy, nil, acquire.WithChecker(check), acquire.WithOutput(&out))

	result, err := e.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if result.Outcome != acquire.OutcomePresent || strategy.calls != 0 {
		t.Fatalf("expected no acquisition, got %+v calls=%d", result, strategy.calls)
	}
	if !strings.Contains(out.String(), "FFmpeg found") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestEnsureRecoversFromFailure(t *testing.T) {
	strategy := &fakeStrategy{err: errors.New("connection reset")}
	check := func(string) deps.Status { return deps.Status{} }
	var out bytes.Buffer
	e := acquire.NewEnsurer(t.TempDir(), "windows", strategy, logging.NewNop(), acquire.WithChecker(check), acquire.WithOutput(&out))

	result, err := e.Ensure(context.Background())
	if err != nil {
		t.Fatalf("expected failure to be recovered, got %v", err)
	}
	if result.Outcome != acquire.OutcomeFailed || result.Err == nil {
		t.Fatalf("unexpected result %+v", result)
	}
	if !strings.Contains(out.String(), "download it manually from ffmpeg.org") {
		t.Fatalf("expected manual instructions, got %q", out.String())
	}
}

func TestEnsureReportsAcquired(t *testing.T) {
	installed := false
	strategy := &fakeStrategy{then: func() { installed = true }}
	check := func(string) deps.Status { return deps.Status{Available: installed, Path: "ffmpeg"} }
	e := acquire.NewEnsurer(t.TempDir(), "darwin", strategy, nil, acquire.WithChecker(check))

	result, err := e.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if result.Outcome != acquire.OutcomeAcquired {
		t.Fatalf("expected acquired outcome, got %+v", result)
	}
}

func TestEnsureReportsUnverifiedAttempt(t *testing.T) {
	strategy := &fakeStrategy{}
	check := func(string) deps.Status { return deps.Status{} }
	e := acquire.NewEnsurer(t.TempDir(), "linux", strategy, nil, acquire.WithChecker(check))

	result, err := e.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if result.Outcome != acquire.OutcomeAttempted || result.Instructions == "" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestEnsureReturnsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	strategy := &fakeStrategy{then: cancel}
	check := func(string) deps.Status { return deps.Status{} }
	e := acquire.NewEnsurer(t.TempDir(), "linux", strategy, nil, acquire.WithChecker(check))

	if _, err := e.Ensure(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
