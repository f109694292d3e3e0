// Package appconfig persists the settings file read by the dubbing app.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dubsetup/internal/fileutil"
)

// DefaultFileName is the settings file the dubbing app expects.
const DefaultFileName = "config.json"

// Settings is the full content of the settings file.
type Settings struct {
	BaseDir string `json:"base_dir"`
}

// Path returns the settings file location for dir.
func Path(dir, fileName string) string {
	if fileName == "" {
		fileName = DefaultFileName
	}
	return filepath.Join(dir, fileName)
}

// Save replaces the settings file in dir with {"base_dir": baseDir}.
func Save(dir, fileName, baseDir string) (string, error) {
	path := Path(dir, fileName)
	data, err := json.Marshal(Settings{BaseDir: baseDir})
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := fileutil.ReplaceFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return path, nil
}

// Load reads the settings file in dir. A missing file returns os.ErrNotExist.
func Load(dir, fileName string) (Settings, error) {
	path := Path(dir, fileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, err
		}
		return Settings{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return s, nil
}
