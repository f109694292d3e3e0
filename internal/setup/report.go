package setup

import (
	"time"

	"dubsetup/internal/acquire"
	"dubsetup/internal/renumber"
	"dubsetup/internal/workspace"
)

// Step names a stage of the setup flow.
type Step string

const (
	StepInstall      Step = "install"
	StepFFmpeg       Step = "ffmpeg"
	StepBaseDir      Step = "base_dir"
	StepScaffold     Step = "scaffold"
	StepRenumber     Step = "renumber"
	StepConfig       Step = "config"
	StepPlaceholders Step = "placeholders"
)

// Status is the outcome of a step.
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusWarning Status = "warning"
	StatusFailed  Status = "failed"
)

// StepResult records what a step did.
type StepResult struct {
	Step     Step
	Status   Status
	Detail   string
	Duration time.Duration
}

// Report summarizes a run. Steps holds one entry per step that started.
// Renamed lists the renames actually performed, which can be fewer than the
// planned moves when a rename fails.
type Report struct {
	RunID        string
	WorkDir      string
	BaseDir      string
	ConfigPath   string
	FFmpeg       acquire.Result
	Folders      []workspace.Folder
	Renumber     renumber.Plan
	Renamed      []renumber.Move
	Placeholders []string
	Steps        []StepResult
}

// Result returns the entry for step, if it ran.
func (r *Report) Result(step Step) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Step == step {
			return s, true
		}
	}
	return StepResult{}, false
}

// Failed reports whether any step failed.
func (r *Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			return true
		}
	}
	return false
}
