package acquire

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"dubsetup/internal/deps"
	"dubsetup/internal/logging"
)

// Outcome classifies what Ensure did.
type Outcome string

const (
	OutcomePresent   Outcome = "present"
	OutcomeAcquired  Outcome = "acquired"
	OutcomeAttempted Outcome = "attempted"
	OutcomeFailed    Outcome = "failed"
)

// Result reports the FFmpeg state after Ensure.
type Result struct {
	Outcome      Outcome
	Strategy     string
	Path         string
	Err          error
	Instructions string
}

// Checker reports whether FFmpeg is available for workDir.
type Checker func(workDir string) deps.Status

// Ensurer combines the availability check with an acquisition strategy.
type Ensurer struct {
	workDir  string
	goos     string
	strategy Strategy
	check    Checker
	out      io.Writer
	logger   *slog.Logger
}

// EnsurerOption configures an Ensurer.
type EnsurerOption func(*Ensurer)

// WithChecker replaces the PATH/working-directory lookup (primarily for tests).
func WithChecker(check Checker) EnsurerOption {
	return func(e *Ensurer) {
		if check != nil {
			e.check = check
		}
	}
}

// WithOutput sets where user-facing progress lines are printed.
func WithOutput(w io.Writer) EnsurerOption {
	return func(e *Ensurer) {
		if w != nil {
			e.out = w
		}
	}
}

// NewEnsurer builds an Ensurer for workDir using strategy on goos.
func NewEnsurer(workDir, goos string, strategy Strategy, logger *slog.Logger, opts ...EnsurerOption) *Ensurer {
	e := &Ensurer{
		workDir:  workDir,
		goos:     goos,
		strategy: strategy,
		check:    deps.CheckFFmpeg,
		out:      io.Discard,
		logger:   logging.NewComponentLogger(logger, "ffmpeg"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ensure acquires FFmpeg when missing. Only context cancellation is returned
// as an error; acquisition failures are carried in Result.
func (e *Ensurer) Ensure(ctx context.Context) (Result, error) {
	logger := logging.WithContext(ctx, e.logger)
	if status := e.check(e.workDir); status.Available {
		fmt.Fprintln(e.out, "✅ FFmpeg found.")
		logger.Info("ffmpeg already available", logging.String("path", status.Path))
		return Result{Outcome: OutcomePresent, Path: status.Path}, nil
	}

	result := Result{Strategy: e.strategy.Name()}
	fmt.Fprintf(e.out, "FFmpeg not found; attempting install via %s...\n", e.strategy.Name())
	err := e.strategy.Acquire(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}

	status := e.check(e.workDir)
	switch {
	case err != nil:
		result.Outcome = OutcomeFailed
		result.Err = err
		result.Instructions = Instructions(e.goos)
		fmt.Fprintf(e.out, "❌ Failed to install FFmpeg: %v\n", err)
		fmt.Fprintln(e.out, result.Instructions)
		logging.WarnWithContext(logger, "ffmpeg acquisition failed", "ffmpeg_acquire_failed",
			logging.String("strategy", result.Strategy),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, result.Instructions),
			logging.String(logging.FieldImpact, "local rendering will fail until ffmpeg is installed"),
		)
	case status.Available:
		result.Outcome = OutcomeAcquired
		result.Path = status.Path
		fmt.Fprintln(e.out, "✅ FFmpeg installed successfully.")
		logger.Info("ffmpeg acquired", logging.String("path", status.Path))
	default:
		result.Outcome = OutcomeAttempted
		result.Instructions = Instructions(e.goos)
		logging.WarnWithContext(logger, "ffmpeg still missing after install attempt", "ffmpeg_unverified",
			logging.String("strategy", result.Strategy),
			logging.String(logging.FieldErrorHint, result.Instructions),
		)
	}
	return result, nil
}
