package acquire

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"dubsetup/internal/fileutil"
	"dubsetup/internal/logging"
)

const archiveName = "ffmpeg.zip"

// ArchiveStrategy downloads a ZIP build and extracts the first entry whose
// name ends in Suffix into WorkDir/Target. The archive is always removed.
type ArchiveStrategy struct {
	URL     string
	WorkDir string
	Suffix  string
	Target  string
	Client  *http.Client
	Logger  *slog.Logger
}

func (a *ArchiveStrategy) Name() string { return "download" }

func (a *ArchiveStrategy) Acquire(ctx context.Context) error {
	logger := logging.WithContext(ctx, a.Logger)
	archivePath := filepath.Join(a.WorkDir, archiveName)
	defer func() {
		if err := os.Remove(archivePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Debug("remove ffmpeg archive failed", logging.Error(err))
		}
	}()

	logger.Info("downloading ffmpeg archive", logging.String("url", a.URL))
	if err := a.download(ctx, archivePath); err != nil {
		return err
	}

	logger.Info("extracting ffmpeg", logging.String("archive", archivePath))
	entry, err := a.extract(archivePath)
	if err != nil {
		return err
	}
	logger.Info("ffmpeg extracted",
		logging.String("entry", entry),
		logging.String("path", filepath.Join(a.WorkDir, a.Target)),
	)
	return nil
}

func (a *ArchiveStrategy) download(ctx context.Context, dst string) error {
	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.URL, nil)
	if err != nil {
		return fmt.Errorf("download ffmpeg: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download ffmpeg: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download ffmpeg: unexpected status %d", resp.StatusCode)
	}
	if _, err := fileutil.WriteStream(dst, resp.Body, 0o644); err != nil {
		return fmt.Errorf("download ffmpeg: %w", err)
	}
	return nil
}

// extract returns the archive entry name that was written.
func (a *ArchiveStrategy) extract(archivePath string) (string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("open ffmpeg archive: %w", err)
	}
	defer zr.Close()

	for _, file := range zr.File {
		if file.FileInfo().IsDir() || !strings.HasSuffix(file.Name, a.Suffix) {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open archive entry %s: %w", file.Name, err)
		}
		_, err = fileutil.WriteStream(filepath.Join(a.WorkDir, a.Target), rc, 0o755)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("write %s: %w", a.Target, err)
		}
		return file.Name, nil
	}
	return "", fmt.Errorf("ffmpeg archive missing %s", a.Suffix)
}
