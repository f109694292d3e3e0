package testsupport

import (
	"context"
	"io"
	"strings"
	"sync"

	"dubsetup/internal/command"
)

// Call records a single executor invocation.
type Call struct {
	Binary string
	Args   []string
}

// Line renders the call the same way command.Line does.
func (c Call) Line() string {
	return command.Line(c.Binary, c.Args)
}

// FakeExecutor records invocations instead of running them. Results maps a
// command line prefix to the error returned for matching calls.
type FakeExecutor struct {
	mu      sync.Mutex
	Calls   []Call
	Results map[string]error
	Stdout  string
}

// Run implements command.Executor.
func (f *FakeExecutor) Run(_ context.Context, binary string, args []string, stdout, _ io.Writer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := Call{Binary: binary, Args: append([]string(nil), args...)}
	f.Calls = append(f.Calls, call)
	if f.Stdout != "" && stdout != nil {
		_, _ = io.WriteString(stdout, f.Stdout)
	}
	line := call.Line()
	for prefix, err := range f.Results {
		if strings.HasPrefix(line, prefix) {
			return err
		}
	}
	return nil
}

// Lines returns every recorded call as a command line.
func (f *FakeExecutor) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]string, 0, len(f.Calls))
	for _, call := range f.Calls {
		lines = append(lines, call.Line())
	}
	return lines
}
