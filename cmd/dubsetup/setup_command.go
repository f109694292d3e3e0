package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dubsetup/internal/prompt"
	"dubsetup/internal/setup"
)

type setupFlags struct {
	baseDir      string
	mode         string
	skipInstall  bool
	skipFFmpeg   bool
	noRenumber   bool
	dryRun       bool
	placeholders int
}

func bindSetupFlags(cmd *cobra.Command, f *setupFlags) {
	cmd.Flags().StringVar(&f.baseDir, "base-dir", "", "Use this folder for videos instead of asking")
	cmd.Flags().StringVar(&f.mode, "mode", "", "Base directory mode (cwd, prompt, subfolder)")
	cmd.Flags().BoolVar(&f.skipInstall, "skip-install", false, "Skip installing client Python packages")
	cmd.Flags().BoolVar(&f.skipFFmpeg, "skip-ffmpeg", false, "Skip the FFmpeg check and install")
	cmd.Flags().BoolVar(&f.noRenumber, "no-renumber", false, "Leave video file names untouched")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print planned video renames without applying them")
	cmd.Flags().IntVar(&f.placeholders, "placeholders", 0, "Number of placeholder caption scripts to create")
}

func newSetupCommand(ctx *commandContext) *cobra.Command {
	flags := &setupFlags{}
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Run the full workspace setup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd, ctx, flags)
		},
	}
	bindSetupFlags(cmd, flags)
	return cmd
}

func runSetup(cmd *cobra.Command, ctx *commandContext, flags *setupFlags) error {
	loaded, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	cfg := *loaded
	if cmd.Flags().Changed("mode") {
		cfg.Workspace.Mode = strings.ToLower(strings.TrimSpace(flags.mode))
	}
	if cmd.Flags().Changed("placeholders") {
		if flags.placeholders < 0 {
			return fmt.Errorf("--placeholders must be zero or positive, got %d", flags.placeholders)
		}
		cfg.Workspace.PlaceholderCount = flags.placeholders
	}
	if flags.skipInstall {
		cfg.Install.Enabled = false
	}
	if flags.skipFFmpeg {
		cfg.FFmpeg.Enabled = false
	}
	if flags.noRenumber {
		cfg.Workspace.Renumber = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}
	logger, err := ctx.logger(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	in := cmd.InOrStdin()

	runner, err := setup.NewRunner(&cfg, setup.Options{
		WorkDir: workDir,
		BaseDir: strings.TrimSpace(flags.baseDir),
		DryRun:  flags.dryRun,
	}, logger,
		setup.WithPrompterFactory(func() prompt.Prompter { return prompt.New(in, out) }),
		setup.WithOutput(out),
	)
	if err != nil {
		return err
	}

	report, runErr := runner.Run(cmd.Context())
	if report != nil && len(report.Steps) > 0 {
		printSummary(out, report)
	}
	return runErr
}

func printSummary(out io.Writer, report *setup.Report) {
	rows := make([][]string, 0, len(report.Steps))
	for _, step := range report.Steps {
		rows = append(rows, []string{
			string(step.Step),
			string(step.Status),
			step.Duration.Round(time.Millisecond).String(),
			step.Detail,
		})
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable(
		[]string{"Step", "Status", "Time", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))
}
