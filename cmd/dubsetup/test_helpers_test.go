package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dubsetup/internal/config"
	"dubsetup/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	workDir    string
	homeDir    string
	configPath string
}

// setupCLITestEnv isolates HOME, moves into a fresh working directory and
// writes a config that never runs pip or touches FFmpeg.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("DUBSETUP_PYTHON", "")
	t.Setenv("DUBSETUP_FFMPEG_URL", "")

	chdirForTest(t, t.TempDir())
	workDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	cfg := testsupport.NewConfig(t)
	configPath := filepath.Join(homeDir, "dubsetup.toml")
	if err := os.WriteFile(configPath, []byte(testsupport.ConfigTOML(t, cfg)), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{
		cfg:        cfg,
		workDir:    workDir,
		homeDir:    homeDir,
		configPath: configPath,
	}
}

func runCLI(t *testing.T, args []string, stdin, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func readSavedBaseDir(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("read config.json: %v", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("parse config.json: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("expected a single key in config.json, got %v", raw)
	}
	return raw["base_dir"]
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
