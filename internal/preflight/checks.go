package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dubsetup/internal/config"
	"dubsetup/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := checkAccess(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFolders reports which scaffold folders are missing under base.
func CheckFolders(base string, folders []string) Result {
	const name = "Workspace folders"
	var missing []string
	for _, folder := range folders {
		info, err := os.Stat(filepath.Join(base, folder))
		if err != nil || !info.IsDir() {
			missing = append(missing, folder)
		}
	}
	if len(missing) > 0 {
		return Result{Name: name, Detail: "missing: " + strings.Join(missing, ", ")}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d folders present", len(folders))}
}

// CheckSystemDeps evaluates the binaries setup uses on goos. The package
// manager row is optional because a missing one only affects FFmpeg
// acquisition.
func CheckSystemDeps(cfg *config.Config, workDir, goos string) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "Python",
			Command:     cfg.Install.Python,
			Description: "Required to install client libraries",
			Optional:    !cfg.Install.Enabled,
		},
	}
	switch goos {
	case "darwin":
		requirements = append(requirements, deps.Requirement{
			Name:        "Homebrew",
			Command:     "brew",
			Description: "Installs FFmpeg when missing",
			Optional:    true,
		})
	case "linux":
		requirements = append(requirements, deps.Requirement{
			Name:        "apt-get",
			Command:     "apt-get",
			Description: "Installs FFmpeg when missing",
			Optional:    true,
		})
	}
	checked := deps.CheckBinaries(requirements)
	results := make([]deps.Status, 0, len(checked)+1)
	results = append(results, checked[0], deps.CheckFFmpeg(workDir))
	return append(results, checked[1:]...)
}
