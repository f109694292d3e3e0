package config

import "runtime"

// Base directory selection modes.
const (
	ModeCwd       = "cwd"
	ModePrompt    = "prompt"
	ModeSubfolder = "subfolder"
)

const (
	defaultFFmpegDownloadURL     = "https://github.com/BtbN/FFmpeg-Builds/releases/download/latest/ffmpeg-master-latest-win64-gpl.zip"
	defaultFFmpegDownloadTimeout = 600
	defaultWorkspaceMode         = ModePrompt
	defaultSubfolder             = "videos"
	defaultVideoExt              = ".mp4"
	defaultPlaceholderCount      = 10
	defaultConfigFile            = "config.json"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultLaunchHint            = "streamlit run app.py"
)

var (
	defaultPackages = []string{"streamlit", "requests", "soundfile", "numpy", "watchdog"}
	defaultFolders  = []string{"captions", "subtitles", "exports", "audio", "bgm"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Install: Install{
			Enabled:  true,
			Python:   defaultPython(),
			Packages: append([]string(nil), defaultPackages...),
		},
		FFmpeg: FFmpeg{
			Enabled:         true,
			DownloadURL:     defaultFFmpegDownloadURL,
			DownloadTimeout: defaultFFmpegDownloadTimeout,
		},
		Workspace: Workspace{
			Mode:             defaultWorkspaceMode,
			Subfolder:        defaultSubfolder,
			Folders:          append([]string(nil), defaultFolders...),
			VideoExt:         defaultVideoExt,
			Renumber:         true,
			PlaceholderCount: defaultPlaceholderCount,
			ConfigFile:       defaultConfigFile,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		LaunchHint: defaultLaunchHint,
	}
}

func defaultPython() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}
