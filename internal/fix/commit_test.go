package fix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typemend/internal/source"
)

func planTwoFiles(t *testing.T, dir string) *Changeset {
	t.Helper()
	fs := source.NewFileSetWithBase(dir)
	a := loadTemp(t, fs, writeTemp(t, dir, "a.ts", "a\n"))
	b := loadTemp(t, fs, writeTemp(t, dir, "b.ts", "b\n"))
	c, err := fs.LoadOrMissing(filepath.Join(dir, "sub", "c.ts"))
	require.NoError(t, err)

	cs, err := Plan(fs, []Fix{
		InsertText("a", source.Point(a, 2), "aa\n", ""),
		InsertText("b", source.Point(b, 2), "bb\n", ""),
		CreateFile("c", c, "c\n"),
	})
	require.NoError(t, err)
	require.Len(t, cs.Changes, 3)
	return cs
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCommitWritesAll(t *testing.T) {
	dir := t.TempDir()
	cs := planTwoFiles(t, dir)

	require.NoError(t, Commit(cs))
	assert.Equal(t, "a\naa\n", readFile(t, filepath.Join(dir, "a.ts")))
	assert.Equal(t, "b\nbb\n", readFile(t, filepath.Join(dir, "b.ts")))
	assert.Equal(t, "c\n", readFile(t, filepath.Join(dir, "sub", "c.ts")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".typemend-", "temp file left behind")
	}
}

func TestCommitPreservesMode(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "x.ts", "x\n")
	require.NoError(t, os.Chmod(path, 0o600))

	fs := source.NewFileSetWithBase(dir)
	id := loadTemp(t, fs, path)
	cs, err := Plan(fs, []Fix{InsertText("x", source.Point(id, 0), "// x\n", "")})
	require.NoError(t, err)
	require.NoError(t, Commit(cs))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestCommitRollsBackOnFailure(t *testing.T) {
	dir := t.TempDir()
	cs := planTwoFiles(t, dir)

	boom := errors.New("disk full")
	calls := 0
	writeFile = func(path string, data []byte, mode os.FileMode) error {
		calls++
		if calls == 3 {
			return boom
		}
		return atomicWrite(path, data, mode)
	}
	t.Cleanup(func() { writeFile = atomicWrite })

	err := Commit(cs)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "a\n", readFile(t, filepath.Join(dir, "a.ts")))
	assert.Equal(t, "b\n", readFile(t, filepath.Join(dir, "b.ts")))
	assert.NoFileExists(t, filepath.Join(dir, "sub", "c.ts"))
}

func TestCommitRollsBackCreatedFile(t *testing.T) {
	dir := t.TempDir()
	cs := planTwoFiles(t, dir)

	// Changes are ordered a.ts, b.ts, sub/c.ts; fail on b.ts after a.ts is written.
	writeFile = func(path string, data []byte, mode os.FileMode) error {
		if filepath.Base(path) == "b.ts" {
			return errors.New("denied")
		}
		return atomicWrite(path, data, mode)
	}
	t.Cleanup(func() { writeFile = atomicWrite })

	require.Error(t, Commit(cs))
	assert.Equal(t, "a\n", readFile(t, filepath.Join(dir, "a.ts")))
	assert.NoFileExists(t, filepath.Join(dir, "sub", "c.ts"))
}

func TestCommitDetectsConcurrentEdit(t *testing.T) {
	dir := t.TempDir()
	cs := planTwoFiles(t, dir)
	writeTemp(t, dir, "b.ts", "edited elsewhere\n")

	err := Commit(cs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "modified since planning")
	assert.Equal(t, "a\n", readFile(t, filepath.Join(dir, "a.ts")))
	assert.Equal(t, "edited elsewhere\n", readFile(t, filepath.Join(dir, "b.ts")))
}

func TestCommitEmpty(t *testing.T) {
	assert.ErrorIs(t, Commit(&Changeset{}), ErrNoChanges)
}
