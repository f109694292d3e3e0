package testsupport

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"dubsetup/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config that never touches the network or the real
// package managers: install and FFmpeg steps are disabled and the mode is cwd.
// Options can re-enable them.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	cfgVal.Install.Enabled = false
	cfgVal.FFmpeg.Enabled = false
	cfgVal.Workspace.Mode = config.ModeCwd

	builder := &configBuilder{
		t:       t,
		baseDir: t.TempDir(),
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithMode sets the base directory mode.
func WithMode(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Workspace.Mode = mode
	}
}

// WithPlaceholderCount overrides the number of placeholder scripts.
func WithPlaceholderCount(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Workspace.PlaceholderCount = n
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// replaces PATH with their directory.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		StubBinaries(b.t, filepath.Join(b.baseDir, "bin"), names...)
	}
}

// StubBinaries writes executables that exit 0 into dir and points PATH at it.
func StubBinaries(t testing.TB, dir string, names ...string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not executable on windows")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	script := []byte("#!/bin/sh\nexit 0\n")
	for _, name := range names {
		target := filepath.Join(dir, name)
		if err := os.WriteFile(target, script, 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	t.Setenv("PATH", dir)
}

// ConfigTOML renders cfg for writing to a --config file.
func ConfigTOML(t testing.TB, cfg *config.Config) string {
	t.Helper()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	return strings.TrimSpace(string(data)) + "\n"
}
