package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ExecutableName returns base with the platform executable suffix.
func ExecutableName(base, goos string) string {
	if goos == "windows" {
		return base + ".exe"
	}
	return base
}

// FFmpegName returns the FFmpeg executable name for the running platform.
func FFmpegName() string {
	return ExecutableName("ffmpeg", runtime.GOOS)
}

// CheckFFmpeg reports whether FFmpeg is resolvable on PATH or sits in workDir.
//
// The dubbing app runs from workDir, so a binary dropped there by a previous
// download counts as installed even when it is not on PATH.
func CheckFFmpeg(workDir string) Status {
	result := Status{
		Name:        "FFmpeg",
		Command:     "ffmpeg",
		Description: "Required for local rendering",
	}

	if path, err := exec.LookPath("ffmpeg"); err == nil {
		result.Path = path
		result.Available = true
		return result
	}

	if workDir != "" {
		candidate := filepath.Join(workDir, FFmpegName())
		if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
			result.Path = candidate
			result.Available = true
			return result
		}
	}

	result.Detail = fmt.Sprintf("binary %q not found on PATH or in %s", "ffmpeg", workDir)
	return result
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
