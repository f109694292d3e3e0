// Package installer installs the lightweight client libraries the dubbing app
// imports locally. Heavier models run on the hosted backend and are never
// installed here.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"dubsetup/internal/command"
	"dubsetup/internal/logging"
)

// Option configures the installer.
type Option func(*Installer)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec command.Executor) Option {
	return func(i *Installer) {
		if exec != nil {
			i.exec = exec
		}
	}
}

// WithOutput streams pip output to w.
func WithOutput(w io.Writer) Option {
	return func(i *Installer) {
		if w != nil {
			i.out = w
		}
	}
}

// Installer wraps "<python> -m pip install".
type Installer struct {
	python string
	exec   command.Executor
	out    io.Writer
	logger *slog.Logger
}

// New constructs an installer for the given interpreter.
func New(python string, logger *slog.Logger, opts ...Option) (*Installer, error) {
	python = strings.TrimSpace(python)
	if python == "" {
		return nil, errors.New("python interpreter required")
	}
	inst := &Installer{
		python: python,
		exec:   command.Default(),
		out:    io.Discard,
		logger: logging.NewComponentLogger(logger, "installer"),
	}
	for _, opt := range opts {
		opt(inst)
	}
	return inst, nil
}

// Args returns the interpreter arguments used to install packages.
func Args(packages []string) []string {
	args := make([]string, 0, len(packages)+3)
	args = append(args, "-m", "pip", "install")
	return append(args, packages...)
}

// Install runs pip once for all packages. Any failure, including a non-zero
// exit status, is returned and must abort the setup run.
func (i *Installer) Install(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		i.logger.Debug("no client packages configured")
		return nil
	}
	logger := logging.WithContext(ctx, i.logger)
	args := Args(packages)
	logger.Info("installing client packages",
		logging.Int("count", len(packages)),
		logging.String("command", command.Line(i.python, args)),
	)
	if err := i.exec.Run(ctx, i.python, args, i.out, i.out); err != nil {
		logging.ErrorWithContext(logger, "client package install failed", "install_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that "+i.python+" and pip are installed and the network is reachable"),
		)
		return fmt.Errorf("install client dependencies: %w", err)
	}
	logger.Info("client packages installed")
	return nil
}
