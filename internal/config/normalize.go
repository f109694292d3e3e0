package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeInstall()
	c.normalizeFFmpeg()
	if err := c.normalizeWorkspace(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.LaunchHint = strings.TrimSpace(c.LaunchHint)
	return nil
}

func (c *Config) normalizeInstall() {
	if value, ok := os.LookupEnv("DUBSETUP_PYTHON"); ok && strings.TrimSpace(value) != "" {
		c.Install.Python = strings.TrimSpace(value)
	}
	c.Install.Python = strings.TrimSpace(c.Install.Python)
	if c.Install.Python == "" {
		c.Install.Python = defaultPython()
	}
	c.Install.Packages = dedupe(c.Install.Packages)
}

func (c *Config) normalizeFFmpeg() {
	if value, ok := os.LookupEnv("DUBSETUP_FFMPEG_URL"); ok && strings.TrimSpace(value) != "" {
		c.FFmpeg.DownloadURL = value
	}
	c.FFmpeg.DownloadURL = strings.TrimSpace(c.FFmpeg.DownloadURL)
	if c.FFmpeg.DownloadURL == "" {
		c.FFmpeg.DownloadURL = defaultFFmpegDownloadURL
	}
	if c.FFmpeg.DownloadTimeout <= 0 {
		c.FFmpeg.DownloadTimeout = defaultFFmpegDownloadTimeout
	}
}

func (c *Config) normalizeWorkspace() error {
	c.Workspace.Mode = strings.ToLower(strings.TrimSpace(c.Workspace.Mode))
	if c.Workspace.Mode == "" {
		c.Workspace.Mode = defaultWorkspaceMode
	}
	c.Workspace.Subfolder = strings.TrimSpace(c.Workspace.Subfolder)
	if c.Workspace.Subfolder == "" {
		c.Workspace.Subfolder = defaultSubfolder
	}
	c.Workspace.Folders = dedupe(c.Workspace.Folders)
	if len(c.Workspace.Folders) == 0 {
		c.Workspace.Folders = append([]string(nil), defaultFolders...)
	}

	ext := strings.ToLower(strings.TrimSpace(c.Workspace.VideoExt))
	if ext == "" {
		ext = defaultVideoExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Workspace.VideoExt = ext

	if c.Workspace.PlaceholderCount < 0 {
		c.Workspace.PlaceholderCount = 0
	}
	c.Workspace.ConfigFile = strings.TrimSpace(c.Workspace.ConfigFile)
	if c.Workspace.ConfigFile == "" {
		c.Workspace.ConfigFile = defaultConfigFile
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		var err error
		if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := strings.TrimSpace(value)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
