package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"dubsetup/internal/command"
	"dubsetup/internal/deps"
	"dubsetup/internal/logging"
)

// ErrManualInstall is returned by strategies that cannot install anything.
var ErrManualInstall = errors.New("automatic ffmpeg installation is not supported on this platform")

// Strategy acquires the FFmpeg binary for one platform family.
type Strategy interface {
	Name() string
	Acquire(ctx context.Context) error
}

// Params carries the knobs ForPlatform needs to build a strategy.
type Params struct {
	WorkDir     string
	DownloadURL string
	Timeout     time.Duration
	Exec        command.Executor
	Client      *http.Client
	Output      io.Writer
	Logger      *slog.Logger
}

// ForPlatform selects the acquisition strategy for goos.
func ForPlatform(goos string, p Params) Strategy {
	logger := logging.NewComponentLogger(p.Logger, "ffmpeg")
	switch goos {
	case "windows":
		client := p.Client
		if client == nil {
			client = &http.Client{Timeout: p.Timeout}
		}
		return &ArchiveStrategy{
			URL:     p.DownloadURL,
			WorkDir: p.WorkDir,
			Suffix:  deps.ExecutableName("ffmpeg", goos),
			Target:  deps.ExecutableName("ffmpeg", goos),
			Client:  client,
			Logger:  logger,
		}
	case "darwin":
		return &PackageManagerStrategy{
			Manager: "Brew",
			Steps:   [][]string{{"brew", "install", "ffmpeg"}},
			Exec:    p.Exec,
			Output:  p.Output,
			Logger:  logger,
		}
	case "linux":
		return &PackageManagerStrategy{
			Manager: "Apt",
			Steps: [][]string{
				{"sudo", "apt-get", "update"},
				{"sudo", "apt-get", "install", "-y", "ffmpeg"},
			},
			Exec:   p.Exec,
			Output: p.Output,
			Logger: logger,
		}
	default:
		return ManualStrategy{GOOS: goos}
	}
}

// Instructions returns the manual-install hint for goos.
func Instructions(goos string) string {
	switch goos {
	case "darwin":
		return "Install with: brew install ffmpeg"
	case "linux":
		return "Install with: sudo apt-get install ffmpeg (Ubuntu/Debian) or your distribution's package manager"
	case "windows":
		return "Please download it manually from ffmpeg.org and place ffmpeg.exe next to the app or on PATH"
	default:
		return "Please download it manually from https://ffmpeg.org/download.html"
	}
}

// ManualStrategy is used where no installer is known.
type ManualStrategy struct {
	GOOS string
}

func (m ManualStrategy) Name() string { return "manual" }

func (m ManualStrategy) Acquire(context.Context) error {
	return fmt.Errorf("%w (%s)", ErrManualInstall, m.GOOS)
}
