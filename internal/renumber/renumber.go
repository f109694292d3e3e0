// Package renumber gives non-numeric video files numeric names above the
// highest number already in use.
package renumber

import (
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"dubsetup/internal/fileutil"
	"dubsetup/internal/logging"
)

// ErrCollision is returned when a rename target already exists.
var ErrCollision = errors.New("rename target already exists")

// Move is one planned rename inside the base directory.
type Move struct {
	From string
	To   string
}

// Plan is the ordered set of renames for a directory. Highest is the largest
// existing numeric name in decimal, "0" when there is none.
type Plan struct {
	Dir     string
	Highest string
	Moves   []Move
}

// Empty reports whether the plan has nothing to rename.
func (p Plan) Empty() bool { return len(p.Moves) == 0 }

var fold = cases.Fold()

// Build inspects dir and computes the renames for files with extension ext.
// An empty dir yields an empty plan.
func Build(dir, ext string) (Plan, error) {
	plan := Plan{Dir: dir, Highest: "0"}
	if strings.TrimSpace(dir) == "" {
		return plan, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return plan, fmt.Errorf("list videos in %q: %w", dir, err)
	}

	want := fold.String(ext)
	highest := new(big.Int)
	var others []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		nameExt := filepath.Ext(name)
		if fold.String(nameExt) != want {
			continue
		}
		stem := strings.TrimSuffix(name, nameExt)
		if n, ok := numeric(stem); ok {
			if n.Cmp(highest) > 0 {
				highest = n
			}
			continue
		}
		others = append(others, name)
	}

	sort.Strings(others)
	plan.Highest = highest.String()
	next := new(big.Int).Set(highest)
	one := big.NewInt(1)
	for _, name := range others {
		next.Add(next, one)
		plan.Moves = append(plan.Moves, Move{From: name, To: next.String() + ext})
	}
	return plan, nil
}

// Apply performs the renames in order. A move whose target exists fails with
// ErrCollision and leaves the remaining moves unapplied.
func Apply(plan Plan, logger *slog.Logger) ([]Move, error) {
	logger = logging.NewComponentLogger(logger, "renumber")
	done := make([]Move, 0, len(plan.Moves))
	for _, move := range plan.Moves {
		from := filepath.Join(plan.Dir, move.From)
		to := filepath.Join(plan.Dir, move.To)
		exists, err := fileutil.Exists(to)
		if err != nil {
			return done, fmt.Errorf("inspect %q: %w", to, err)
		}
		if exists {
			return done, fmt.Errorf("rename %s to %s: %w", move.From, move.To, ErrCollision)
		}
		if err := os.Rename(from, to); err != nil {
			return done, fmt.Errorf("rename %s to %s: %w", move.From, move.To, err)
		}
		logger.Info("video renamed", logging.String("from", move.From), logging.String("to", move.To))
		done = append(done, move)
	}
	return done, nil
}

// Run builds and applies the plan for dir and returns it with the moves that
// were performed. With dryRun nothing is renamed and the applied list is nil.
// On error the applied list holds the renames completed before the failure.
func Run(dir, ext string, dryRun bool, logger *slog.Logger) (Plan, []Move, error) {
	plan, err := Build(dir, ext)
	if err != nil || dryRun {
		return plan, nil, err
	}
	done, err := Apply(plan, logger)
	return plan, done, err
}

// numeric accepts non-empty stems made only of ASCII digits, of any length.
func numeric(stem string) (*big.Int, bool) {
	if stem == "" {
		return nil, false
	}
	for i := 0; i < len(stem); i++ {
		if stem[i] < '0' || stem[i] > '9' {
			return nil, false
		}
	}
	n, ok := new(big.Int).SetString(stem, 10)
	return n, ok
}
