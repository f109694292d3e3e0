package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dubsetup/internal/renumber"
)

func newRenumberCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "renumber [dir]",
		Short: "Give non-numeric videos numeric names",
		Long: "Rename every video whose name is not a number to the next free number above\n" +
			"the highest existing one. Defaults to the base_dir saved in config.json, or the\n" +
			"current directory when no config.json exists.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir, err := ctx.resolveTargetDir(args)
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			plan, applied, err := renumber.Run(dir, cfg.Workspace.VideoExt, dryRun, logger)
			out := cmd.OutOrStdout()
			if plan.Empty() && err == nil {
				fmt.Fprintf(out, "Nothing to rename in %s\n", dir)
				return nil
			}
			verb := "Renamed"
			moves := applied
			if dryRun {
				verb = "Would rename"
				moves = plan.Moves
			}
			rows := make([][]string, 0, len(moves))
			for _, move := range moves {
				rows = append(rows, []string{move.From, move.To})
			}
			if len(rows) > 0 {
				fmt.Fprintf(out, "%s %d video(s) in %s\n", verb, len(rows), dir)
				fmt.Fprintln(out, renderTable([]string{"From", "To"}, rows, nil))
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print planned renames without applying them")
	return cmd
}
