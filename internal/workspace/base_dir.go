package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dubsetup/internal/config"
	"dubsetup/internal/prompt"
)

const (
	useCurrentQuestion = "Use current folder for videos? (y/n): "
	pathQuestion       = "Enter the full path to your video folder: "
)

// ErrEmptyPath is returned when the user enters no path.
var ErrEmptyPath = errors.New("no video folder path entered")

// Resolver computes the base directory for a run.
type Resolver struct {
	Mode      string
	Subfolder string
	WorkDir   string
	Override  string
	Prompter  prompt.Prompter
}

// Resolve returns the absolute base directory. A non-empty Override wins over
// Mode and skips every prompt.
func (r Resolver) Resolve() (string, error) {
	if strings.TrimSpace(r.Override) != "" {
		return absolute(r.WorkDir, r.Override)
	}
	switch r.Mode {
	case config.ModeCwd:
		return absolute(r.WorkDir, r.WorkDir)
	case config.ModeSubfolder:
		dir, err := absolute(r.WorkDir, r.Subfolder)
		if err != nil {
			return "", err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create base directory %q: %w", dir, err)
		}
		return dir, nil
	case config.ModePrompt:
		return r.ask()
	default:
		return "", fmt.Errorf("unsupported base directory mode %q", r.Mode)
	}
}

func (r Resolver) ask() (string, error) {
	if r.Prompter == nil {
		return "", errors.New("interactive base directory selection requires a prompter")
	}
	useCurrent, err := r.Prompter.Confirm(useCurrentQuestion)
	if err != nil {
		return "", err
	}
	if useCurrent {
		return absolute(r.WorkDir, r.WorkDir)
	}
	answer, err := r.Prompter.Line(pathQuestion)
	if err != nil {
		return "", err
	}
	answer = strings.Trim(strings.TrimSpace(answer), `"'`)
	if answer == "" {
		return "", ErrEmptyPath
	}
	return absolute(r.WorkDir, answer)
}

func absolute(workDir, value string) (string, error) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "~") {
		return config.ExpandPath(value)
	}
	if !filepath.IsAbs(value) {
		value = filepath.Join(workDir, value)
	}
	return config.ExpandPath(value)
}
