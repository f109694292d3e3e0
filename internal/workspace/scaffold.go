package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dubsetup/internal/logging"
)

// Folder reports one scaffolded subdirectory.
type Folder struct {
	Name    string
	Path    string
	Created bool
}

// Scaffold creates each folder under base, leaving existing ones untouched.
func Scaffold(base string, folders []string, logger *slog.Logger) ([]Folder, error) {
	if base == "" {
		return nil, errors.New("base directory required")
	}
	logger = logging.NewComponentLogger(logger, "workspace")
	results := make([]Folder, 0, len(folders))
	for _, name := range folders {
		path := filepath.Join(base, name)
		created := false
		info, err := os.Stat(path)
		switch {
		case err == nil && !info.IsDir():
			return results, fmt.Errorf("create folder %q: path exists and is not a directory", path)
		case err == nil:
		case errors.Is(err, os.ErrNotExist):
			created = true
		default:
			return results, fmt.Errorf("inspect folder %q: %w", path, err)
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return results, fmt.Errorf("create folder %q: %w", path, err)
		}
		logger.Debug("folder ready", logging.String("path", path), logging.Bool("created", created))
		results = append(results, Folder{Name: name, Path: path, Created: created})
	}
	return results, nil
}
