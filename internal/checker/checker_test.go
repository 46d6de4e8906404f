package checker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typemend/internal/project"
)

func shell(t *testing.T, script, stream string) *Collector {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	return &Collector{
		Command: []string{"sh", "-c", script},
		Dir:     t.TempDir(),
		Stream:  stream,
	}
}

func TestRunCapturesStderrAndIgnoresExitStatus(t *testing.T) {
	c := shell(t, `echo "src/a.vue(1,2): error TS2339: x" >&2; echo noise; exit 2`, project.StreamStderr)

	out, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, out.ExitCode)
	assert.Equal(t, []string{"src/a.vue(1,2): error TS2339: x"}, out.Lines)
}

func TestRunStreams(t *testing.T) {
	script := `echo out; echo err >&2`

	out, err := shell(t, script, project.StreamStdout).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"out"}, out.Lines)

	out, err = shell(t, script, project.StreamBoth).Run(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"out", "err"}, out.Lines)
}

func TestRunLaunchFailure(t *testing.T) {
	c := &Collector{Command: []string{"typemend-no-such-binary"}, Dir: t.TempDir(), Stream: project.StreamStderr}
	_, err := c.Run(context.Background())
	assert.ErrorIs(t, err, ErrLaunch)

	c = &Collector{Command: []string{"sh", "-c", "true"}, Dir: filepath.Join(t.TempDir(), "missing"), Stream: project.StreamStderr}
	_, err = c.Run(context.Background())
	assert.ErrorIs(t, err, ErrLaunch)
}

func TestRunTimeout(t *testing.T) {
	c := shell(t, "sleep 5", project.StreamStderr)
	c.Timeout = 50 * time.Millisecond

	_, err := c.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.False(t, errors.Is(err, ErrLaunch))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tsc.log")
	require.NoError(t, os.WriteFile(path, []byte("a\r\nb\n"), 0o600))

	out, err := ReadFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out.Lines)

	out, err = ReadFile("-", strings.NewReader("x\ny"))
	require.NoError(t, err)
	assert.Equal(t, "stdin", out.Source)
	assert.Equal(t, []string{"x", "y"}, out.Lines)

	_, err = ReadFile(filepath.Join(t.TempDir(), "none"), nil)
	assert.Error(t, err)
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines("a\r\n\nb\n"))
}
