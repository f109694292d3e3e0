// Package placeholder pre-creates the empty caption scripts the dubbing app
// fills in later.
package placeholder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Generate creates dir/<n>.txt for n in 1..count when absent and returns the
// paths it created. Existing files are never modified.
func Generate(dir string, count int) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create captions folder: %w", err)
	}
	var created []string
	for n := 1; n <= count; n++ {
		path := filepath.Join(dir, strconv.Itoa(n)+".txt")
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("create placeholder %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return created, fmt.Errorf("close placeholder %s: %w", path, err)
		}
		created = append(created, path)
	}
	return created, nil
}
