package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"dubsetup/internal/placeholder"
)

func newScriptsCommand(ctx *commandContext) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "scripts [dir]",
		Short: "Create empty placeholder caption scripts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("count") {
				count = cfg.Workspace.PlaceholderCount
			}
			if count < 0 {
				return fmt.Errorf("--count must be zero or positive, got %d", count)
			}
			dir, err := ctx.resolveTargetDir(args)
			if err != nil {
				return err
			}

			captions := filepath.Join(dir, "captions")
			created, err := placeholder.Generate(captions, count)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d placeholder script(s) in %s\n", len(created), captions)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Number of scripts (defaults to workspace.placeholder_count)")
	return cmd
}
