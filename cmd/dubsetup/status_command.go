package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"dubsetup/internal/appconfig"
	"dubsetup/internal/deps"
	"dubsetup/internal/preflight"
)

type dependencyJSON struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Available   bool   `json:"available"`
	Optional    bool   `json:"optional"`
	Path        string `json:"path,omitempty"`
	Detail      string `json:"detail,omitempty"`
	Description string `json:"description"`
}

type checkJSON struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

type statusJSON struct {
	Settings      string           `json:"settings"`
	SettingsFound bool             `json:"settings_found"`
	ConfigFile    string           `json:"config_file"`
	ConfigFound   bool             `json:"config_found"`
	BaseDir       string           `json:"base_dir,omitempty"`
	Dependencies  []dependencyJSON `json:"dependencies"`
	Checks        []checkJSON      `json:"checks"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show dependency and workspace health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			workDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("determine working directory: %w", err)
			}

			report := statusJSON{
				Settings:      ctx.configPath,
				SettingsFound: ctx.configExists,
				ConfigFile:    appconfig.Path(workDir, cfg.Workspace.ConfigFile),
			}
			settings, err := appconfig.Load(workDir, cfg.Workspace.ConfigFile)
			switch {
			case err == nil:
				report.ConfigFound = true
				report.BaseDir = settings.BaseDir
			case !errors.Is(err, os.ErrNotExist):
				return err
			}

			statuses := preflight.CheckSystemDeps(cfg, workDir, runtime.GOOS)
			checks := preflight.RunAll(cfg, workDir, report.BaseDir)
			for _, s := range statuses {
				report.Dependencies = append(report.Dependencies, dependencyJSON{
					Name:        s.Name,
					Command:     s.Command,
					Available:   s.Available,
					Optional:    s.Optional,
					Path:        s.Path,
					Detail:      s.Detail,
					Description: s.Description,
				})
			}
			for _, c := range checks {
				report.Checks = append(report.Checks, checkJSON{Name: c.Name, Passed: c.Passed, Detail: c.Detail})
			}

			if asJSON {
				return writeJSON(cmd, report)
			}
			renderStatus(cmd, report, statuses, checks)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func renderStatus(cmd *cobra.Command, report statusJSON, statuses []deps.Status, checks []preflight.Result) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	var lines []string
	lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
	lines = append(lines, renderTable(
		[]string{"Name", "Status", "Optional", "Location", "Purpose"},
		dependencyRows(statuses),
		nil,
	))
	lines = append(lines, "")

	lines = append(lines, renderSectionHeader("Workspace", colorize)...)
	settingsDetail := report.Settings
	if !report.SettingsFound {
		settingsDetail += " (not found; defaults in use)"
	}
	lines = append(lines, renderStatusLine("Settings", statusInfo, settingsDetail, colorize))
	if report.ConfigFound {
		lines = append(lines, renderStatusLine("Config file", statusOK,
			fmt.Sprintf("%s (base_dir: %s)", report.ConfigFile, report.BaseDir), colorize))
	} else {
		lines = append(lines, renderStatusLine("Config file", statusWarn,
			report.ConfigFile+" not found; run dubsetup", colorize))
	}
	for _, c := range checks {
		kind := statusOK
		if !c.Passed {
			kind = statusError
		}
		lines = append(lines, renderStatusLine(c.Name, kind, c.Detail, colorize))
	}

	fmt.Fprintln(out, strings.Join(lines, "\n"))
}
