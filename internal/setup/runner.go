package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"dubsetup/internal/acquire"
	"dubsetup/internal/appconfig"
	"dubsetup/internal/command"
	"dubsetup/internal/config"
	"dubsetup/internal/installer"
	"dubsetup/internal/logging"
	"dubsetup/internal/placeholder"
	"dubsetup/internal/preflight"
	"dubsetup/internal/prompt"
	"dubsetup/internal/renumber"
	"dubsetup/internal/workspace"
)

// LockFileName is created in the working directory while a run holds the lock.
const LockFileName = ".dubsetup.lock"

// ErrLocked is returned when another run holds the working directory lock.
var ErrLocked = errors.New("another dubsetup run is already active in this directory")

// Options carries per-invocation choices that are not part of the TOML config.
type Options struct {
	// WorkDir is where config.json and the lock file live. Defaults to the
	// process working directory at the CLI layer.
	WorkDir string
	// BaseDir, when set, bypasses the base directory mode.
	BaseDir string
	// DryRun plans renames without performing them.
	DryRun bool
	// GOOS selects the FFmpeg strategy. Empty means runtime.GOOS.
	GOOS string
}

// Runner executes the setup flow.
type Runner struct {
	cfg      *config.Config
	opts     Options
	exec     command.Executor
	prompter func() prompt.Prompter
	strategy acquire.Strategy
	checker  acquire.Checker
	client   *http.Client
	out      io.Writer
	base     *slog.Logger
	logger   *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithExecutor injects the subprocess executor used by pip and package managers.
func WithExecutor(exec command.Executor) RunnerOption {
	return func(r *Runner) {
		if exec != nil {
			r.exec = exec
		}
	}
}

// WithPrompter sets the prompter used in prompt mode. It is closed once the
// base directory has been chosen.
func WithPrompter(p prompt.Prompter) RunnerOption {
	return func(r *Runner) {
		if p != nil {
			r.prompter = func() prompt.Prompter { return p }
		}
	}
}

// WithPrompterFactory defers opening the prompter until the base directory
// step needs it, so terminal state is only held while asking.
func WithPrompterFactory(open func() prompt.Prompter) RunnerOption {
	return func(r *Runner) { r.prompter = open }
}

// WithStrategy replaces the platform FFmpeg strategy.
func WithStrategy(s acquire.Strategy) RunnerOption {
	return func(r *Runner) { r.strategy = s }
}

// WithChecker replaces the FFmpeg availability lookup.
func WithChecker(c acquire.Checker) RunnerOption {
	return func(r *Runner) { r.checker = c }
}

// WithHTTPClient sets the client used to download the FFmpeg archive.
func WithHTTPClient(c *http.Client) RunnerOption {
	return func(r *Runner) { r.client = c }
}

// WithOutput sets where user-facing progress lines are printed.
func WithOutput(w io.Writer) RunnerOption {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// NewRunner validates inputs and builds a runner.
func NewRunner(cfg *config.Config, opts Options, logger *slog.Logger, runnerOpts ...RunnerOption) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("setup requires a config")
	}
	if opts.WorkDir == "" {
		return nil, errors.New("setup requires a working directory")
	}
	workDir, err := filepath.Abs(opts.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkDir = workDir
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	r := &Runner{
		cfg:    cfg,
		opts:   opts,
		exec:   command.Default(),
		out:    io.Discard,
		base:   logger,
		logger: logging.NewComponentLogger(logger, "setup"),
	}
	for _, opt := range runnerOpts {
		opt(r)
	}
	return r, nil
}

// Run executes every step in order. The returned report is non-nil even when
// an error aborts the run.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString(), WorkDir: r.opts.WorkDir}
	ctx = logging.WithRunID(ctx, report.RunID)
	logger := logging.WithContext(ctx, r.logger)

	lock := flock.New(filepath.Join(r.opts.WorkDir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return report, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return report, ErrLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	logger.Info("setup started", logging.String("work_dir", r.opts.WorkDir), logging.String("goos", r.opts.GOOS))
	fmt.Fprintln(r.out, "--- AI Dubbing Studio Setup ---")

	steps := []struct {
		step Step
		run  func(context.Context, *Report) (Status, string, error)
	}{
		{StepInstall, r.install},
		{StepFFmpeg, r.ffmpeg},
		{StepBaseDir, r.baseDir},
		{StepScaffold, r.scaffold},
		{StepRenumber, r.renumber},
		{StepConfig, r.writeConfig},
		{StepPlaceholders, r.placeholders},
	}
	for _, s := range steps {
		stepCtx := logging.WithStep(ctx, string(s.step))
		started := time.Now()
		status, detail, err := s.run(stepCtx, report)
		if err != nil {
			status = StatusFailed
			detail = err.Error()
		}
		report.Steps = append(report.Steps, StepResult{
			Step:     s.step,
			Status:   status,
			Detail:   detail,
			Duration: time.Since(started),
		})
		if err != nil {
			logging.ErrorWithContext(logging.WithContext(stepCtx, r.logger), "setup step failed", "step_failed",
				logging.Error(err),
			)
			return report, err
		}
	}

	fmt.Fprintln(r.out, "\n✅ Setup Complete!")
	if r.cfg.LaunchHint != "" {
		fmt.Fprintf(r.out, "Run the app with: %s\n", r.cfg.LaunchHint)
	}
	logger.Info("setup completed", logging.String("base_dir", report.BaseDir))
	return report, nil
}

func (r *Runner) install(ctx context.Context, _ *Report) (Status, string, error) {
	if !r.cfg.Install.Enabled {
		return StatusSkipped, "disabled", nil
	}
	fmt.Fprintln(r.out, "Installing client dependencies...")
	inst, err := installer.New(r.cfg.Install.Python, r.base,
		installer.WithExecutor(r.exec),
		installer.WithOutput(r.out),
	)
	if err != nil {
		return StatusFailed, "", err
	}
	if err := inst.Install(ctx, r.cfg.Install.Packages); err != nil {
		return StatusFailed, "", err
	}
	return StatusDone, fmt.Sprintf("%d packages", len(r.cfg.Install.Packages)), nil
}

func (r *Runner) ffmpeg(ctx context.Context, report *Report) (Status, string, error) {
	if !r.cfg.FFmpeg.Enabled {
		return StatusSkipped, "disabled", nil
	}
	fmt.Fprintln(r.out, "\nChecking for FFmpeg (required for rendering)...")
	strategy := r.strategy
	if strategy == nil {
		strategy = acquire.ForPlatform(r.opts.GOOS, acquire.Params{
			WorkDir:     r.opts.WorkDir,
			DownloadURL: r.cfg.FFmpeg.DownloadURL,
			Timeout:     r.cfg.DownloadTimeout(),
			Exec:        r.exec,
			Client:      r.client,
			Output:      r.out,
			Logger:      r.base,
		})
	}
	ensurer := acquire.NewEnsurer(r.opts.WorkDir, r.opts.GOOS, strategy, r.base,
		acquire.WithChecker(r.checker),
		acquire.WithOutput(r.out),
	)
	result, err := ensurer.Ensure(ctx)
	report.FFmpeg = result
	if err != nil {
		return StatusFailed, "", err
	}
	switch result.Outcome {
	case acquire.OutcomePresent:
		return StatusDone, "found " + result.Path, nil
	case acquire.OutcomeAcquired:
		return StatusDone, "installed via " + result.Strategy, nil
	case acquire.OutcomeFailed:
		return StatusWarning, result.Err.Error(), nil
	default:
		return StatusWarning, "attempted via " + result.Strategy + "; still not found", nil
	}
}

func (r *Runner) baseDir(_ context.Context, report *Report) (Status, string, error) {
	fmt.Fprintln(r.out, "\n--- Project Configuration ---")
	resolver := workspace.Resolver{
		Mode:      r.cfg.Workspace.Mode,
		Subfolder: r.cfg.Workspace.Subfolder,
		WorkDir:   r.opts.WorkDir,
		Override:  r.opts.BaseDir,
	}
	if r.opts.BaseDir == "" && r.cfg.Workspace.Mode == config.ModePrompt {
		fmt.Fprintf(r.out, "Current folder: %s\n", r.opts.WorkDir)
		if r.prompter != nil {
			if p := r.prompter(); p != nil {
				resolver.Prompter = p
				defer func() {
					if err := p.Close(); err != nil {
						r.logger.Warn("prompter close failed", logging.Error(err))
					}
				}()
			}
		}
	}
	dir, err := resolver.Resolve()
	if err != nil {
		return StatusFailed, "", fmt.Errorf("choose base directory: %w", err)
	}
	report.BaseDir = dir
	return StatusDone, dir, nil
}

func (r *Runner) scaffold(ctx context.Context, report *Report) (Status, string, error) {
	folders, err := workspace.Scaffold(report.BaseDir, r.cfg.Workspace.Folders, logging.WithContext(ctx, r.base))
	report.Folders = folders
	if err != nil {
		return StatusFailed, "", err
	}
	created := 0
	for _, f := range folders {
		if f.Created {
			created++
			fmt.Fprintf(r.out, "Created: %s\n", f.Path)
		}
	}
	if check := preflight.CheckDirectoryAccess("Base directory", report.BaseDir); !check.Passed {
		return StatusFailed, "", fmt.Errorf("base directory not usable: %s", check.Detail)
	}
	return StatusDone, fmt.Sprintf("%d created, %d existing", created, len(folders)-created), nil
}

func (r *Runner) renumber(ctx context.Context, report *Report) (Status, string, error) {
	if !r.cfg.Workspace.Renumber {
		return StatusSkipped, "disabled", nil
	}
	plan, applied, err := renumber.Run(report.BaseDir, r.cfg.Workspace.VideoExt, r.opts.DryRun, logging.WithContext(ctx, r.base))
	report.Renumber = plan
	report.Renamed = applied
	for _, move := range applied {
		fmt.Fprintf(r.out, "Renamed: %s -> %s\n", move.From, move.To)
	}
	if err != nil {
		return StatusFailed, "", err
	}
	if plan.Empty() {
		return StatusDone, "nothing to rename", nil
	}
	if r.opts.DryRun {
		for _, move := range plan.Moves {
			fmt.Fprintf(r.out, "Would rename: %s -> %s\n", move.From, move.To)
		}
		return StatusSkipped, strconv.Itoa(len(plan.Moves)) + " planned (dry run)", nil
	}
	return StatusDone, strconv.Itoa(len(applied)) + " renamed", nil
}

func (r *Runner) writeConfig(_ context.Context, report *Report) (Status, string, error) {
	path, err := appconfig.Save(r.opts.WorkDir, r.cfg.Workspace.ConfigFile, report.BaseDir)
	if err != nil {
		return StatusFailed, "", err
	}
	report.ConfigPath = path
	fmt.Fprintf(r.out, "\nSaved %s pointing to: %s\n", filepath.Base(path), report.BaseDir)
	return StatusDone, path, nil
}

func (r *Runner) placeholders(_ context.Context, report *Report) (Status, string, error) {
	count := r.cfg.Workspace.PlaceholderCount
	if count <= 0 {
		return StatusSkipped, "count is 0", nil
	}
	fmt.Fprintf(r.out, "\nGenerating blank script files (1-%d)...\n", count)
	created, err := placeholder.Generate(filepath.Join(report.BaseDir, "captions"), count)
	report.Placeholders = created
	if err != nil {
		return StatusFailed, "", err
	}
	return StatusDone, fmt.Sprintf("%d created", len(created)), nil
}
