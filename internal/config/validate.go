package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWorkspace(); err != nil {
		return err
	}
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWorkspace() error {
	switch c.Workspace.Mode {
	case ModeCwd, ModePrompt, ModeSubfolder:
	default:
		return fmt.Errorf("workspace.mode: unsupported value %q (want %s, %s, or %s)", c.Workspace.Mode, ModeCwd, ModePrompt, ModeSubfolder)
	}
	if err := ensurePlainName("workspace.subfolder", c.Workspace.Subfolder); err != nil {
		return err
	}
	for _, folder := range c.Workspace.Folders {
		if err := ensurePlainName("workspace.folders", folder); err != nil {
			return err
		}
	}
	if !containsString(c.Workspace.Folders, "captions") {
		return errors.New("workspace.folders must include \"captions\" (placeholder scripts live there)")
	}
	if err := ensurePlainName("workspace.config_file", c.Workspace.ConfigFile); err != nil {
		return err
	}
	if c.Workspace.VideoExt == "." {
		return errors.New("workspace.video_ext must not be empty")
	}
	return nil
}

func (c *Config) validateFFmpeg() error {
	if !c.FFmpeg.Enabled {
		return nil
	}
	url := strings.ToLower(c.FFmpeg.DownloadURL)
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("ffmpeg.download_url must be an http(s) URL, got %q", c.FFmpeg.DownloadURL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func ensurePlainName(key, value string) error {
	if value == "" {
		return fmt.Errorf("%s must be set", key)
	}
	if value == "." || value == ".." || filepath.Base(value) != value || strings.ContainsAny(value, `/\`) {
		return fmt.Errorf("%s: %q must be a plain name without path separators", key, value)
	}
	return nil
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
