// Package prompt asks the interactive setup questions.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// ErrAborted is returned when the user cancels a prompt with Ctrl-C.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks yes/no and free-text questions.
type Prompter interface {
	Confirm(question string) (bool, error)
	Line(question string) (string, error)
	Close() error
}

// New returns a line-editing prompter when in is an interactive terminal and
// a plain line reader otherwise.
func New(in io.Reader, out io.Writer) Prompter {
	if f, ok := in.(*os.File); ok && f == os.Stdin && isTerminal(f.Fd()) {
		return newTerminal()
	}
	return NewStream(in, out)
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsYes reports whether answer means yes.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Stream reads answers line by line from any reader.
type Stream struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewStream builds a prompter over in/out.
func NewStream(in io.Reader, out io.Writer) *Stream {
	if out == nil {
		out = io.Discard
	}
	return &Stream{reader: bufio.NewReader(in), out: out}
}

func (s *Stream) Confirm(question string) (bool, error) {
	answer, err := s.Line(question)
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

func (s *Stream) Line(question string) (string, error) {
	fmt.Fprint(s.out, question)
	line, err := s.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read answer: %w", io.ErrUnexpectedEOF)
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (s *Stream) Close() error { return nil }

type terminal struct {
	state *liner.State
}

func newTerminal() *terminal {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(CompletePath)
	return &terminal{state: state}
}

func (t *terminal) Confirm(question string) (bool, error) {
	answer, err := t.Line(question)
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

func (t *terminal) Line(question string) (string, error) {
	answer, err := t.state.Prompt(question)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

func (t *terminal) Close() error {
	return t.state.Close()
}

// CompletePath offers filesystem completions for a partially typed path.
func CompletePath(line string) []string {
	dir, prefix := filepath.Split(line)
	search := dir
	if search == "" {
		search = "."
	}
	if strings.HasPrefix(search, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			search = filepath.Join(home, strings.TrimPrefix(search, "~"))
		}
	}
	entries, err := os.ReadDir(search)
	if err != nil {
		return nil
	}
	var matches []string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		matches = append(matches, dir+entry.Name()+string(filepath.Separator))
	}
	return matches
}
