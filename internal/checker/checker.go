// Package checker runs the type checker and captures its diagnostic output.
package checker

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"typemend/internal/logger"
	"typemend/internal/project"
)

// ErrLaunch is returned when the checker process cannot be started.
var ErrLaunch = errors.New("cannot launch checker")

// Output is the captured diagnostic text of one checker run.
type Output struct {
	Lines    []string
	ExitCode int
	Duration time.Duration
	Source   string
}

// Collector runs a configured checker command.
type Collector struct {
	Command []string
	Dir     string
	Stream  string
	Timeout time.Duration
}

// NewCollector builds a collector from the manifest's [checker] section.
func NewCollector(m *project.Manifest, timeout time.Duration) *Collector {
	return &Collector{
		Command: m.Config.Checker.Command,
		Dir:     m.CheckerDir(),
		Stream:  m.Config.Checker.Stream,
		Timeout: timeout,
	}
}

// String renders the command line for display.
func (c *Collector) String() string {
	return strings.Join(c.Command, " ")
}

// Run executes the checker and returns the lines of the selected stream.
// A non-zero exit status is the normal outcome of a run with type errors
// and is reported through Output.ExitCode, not as an error.
func (c *Collector) Run(ctx context.Context) (*Output, error) {
	if len(c.Command) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrLaunch)
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	// #nosec G204 -- the command comes from the project manifest
	cmd := exec.CommandContext(ctx, c.Command[0], c.Command[1:]...)
	cmd.Dir = c.Dir
	cmd.WaitDelay = 2 * time.Second

	var stdout, stderr bytes.Buffer
	var both bytes.Buffer
	switch c.Stream {
	case project.StreamStdout:
		cmd.Stdout = &stdout
		cmd.Stderr = io.Discard
	case project.StreamBoth:
		cmd.Stdout = &both
		cmd.Stderr = &both
	default:
		cmd.Stdout = io.Discard
		cmd.Stderr = &stderr
	}

	logger.L().Debug("running checker",
		zap.Strings("command", c.Command),
		zap.String("dir", c.Dir),
		zap.String("stream", c.Stream),
	)

	start := time.Now()
	err := cmd.Run()
	out := &Output{Duration: time.Since(start), Source: c.String()}

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case ctx.Err() != nil:
			return nil, fmt.Errorf("checker %q: %w", c.String(), ctx.Err())
		case errors.As(err, &exitErr):
			out.ExitCode = exitErr.ExitCode()
		default:
			return nil, fmt.Errorf("%w %q in %s: %w", ErrLaunch, c.String(), c.Dir, err)
		}
	}

	var text string
	switch c.Stream {
	case project.StreamStdout:
		text = stdout.String()
	case project.StreamBoth:
		text = both.String()
	default:
		text = stderr.String()
	}
	out.Lines = SplitLines(text)

	logger.L().Debug("checker finished",
		zap.Int("exit_code", out.ExitCode),
		zap.Int("lines", len(out.Lines)),
		zap.Duration("duration", out.Duration),
	)
	return out, nil
}

// ReadFile loads previously captured checker output. "-" reads from stdin.
func ReadFile(path string, stdin io.Reader) (*Output, error) {
	var r io.Reader
	source := path
	if path == "-" {
		r = stdin
		source = "stdin"
	} else {
		// #nosec G304 -- path is given on the command line
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open checker output: %w", err)
		}
		defer f.Close()
		r = f
	}
	lines, err := ReadLines(r)
	if err != nil {
		return nil, fmt.Errorf("read checker output %s: %w", source, err)
	}
	return &Output{Lines: lines, Source: source}, nil
}

// ReadLines reads r to the end and splits it into lines.
func ReadLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lines := make([]string, 0, 256)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}

// SplitLines splits captured text on newlines, dropping a trailing empty line
// and carriage returns.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
