package acquire

import (
	"context"
	"io"
	"log/slog"

	"dubsetup/internal/command"
	"dubsetup/internal/logging"
)

// PackageManagerStrategy runs the platform package manager. Exit statuses are
// logged but never returned; the Ensurer re-checks availability afterwards.
type PackageManagerStrategy struct {
	Manager string
	Steps   [][]string
	Exec    command.Executor
	Output  io.Writer
	Logger  *slog.Logger
}

func (p *PackageManagerStrategy) Name() string { return p.Manager }

func (p *PackageManagerStrategy) Acquire(ctx context.Context) error {
	exec := p.Exec
	if exec == nil {
		exec = command.Default()
	}
	out := p.Output
	if out == nil {
		out = io.Discard
	}
	logger := logging.WithContext(ctx, p.Logger)
	for _, step := range p.Steps {
		if len(step) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line := command.Line(step[0], step[1:])
		logger.Info("running package manager", logging.String("command", line))
		if err := exec.Run(ctx, step[0], step[1:], out, out); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("package manager command failed",
				logging.String("command", line),
				logging.Error(err),
			)
		}
	}
	return nil
}
