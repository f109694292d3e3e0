package preflight

import (
	"dubsetup/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the directory checks for a workspace. The base directory is
// only checked when known.
func RunAll(cfg *config.Config, workDir, baseDir string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Working directory (always checked; config.json and the lock live here)
	results = append(results, CheckDirectoryAccess("Working directory", workDir))

	if baseDir != "" && baseDir != workDir {
		results = append(results, CheckDirectoryAccess("Base directory", baseDir))
	}

	if baseDir != "" && len(cfg.Workspace.Folders) > 0 {
		results = append(results, CheckFolders(baseDir, cfg.Workspace.Folders))
	}

	return results
}
