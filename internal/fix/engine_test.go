package fix

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typemend/internal/source"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loadTemp(t *testing.T, fs *source.FileSet, path string) source.FileID {
	t.Helper()
	id, err := fs.Load(path)
	require.NoError(t, err)
	return id
}

func TestPlanInsertions(t *testing.T) {
	dir := t.TempDir()
	fs := source.NewFileSetWithBase(dir)
	id := loadTemp(t, fs, writeTemp(t, dir, "a.ts", "interface A {\n}\n"))

	fixes := []Fix{
		InsertText("add x", source.Point(id, 14), "  x?: string;\n", "", WithID("x")),
		InsertText("add y", source.Point(id, 14), "  y?: number;\n", "", WithID("y")),
	}
	cs, err := Plan(fs, fixes)
	require.NoError(t, err)
	require.Len(t, cs.Changes, 1)
	assert.Len(t, cs.Applied, 2)
	assert.Empty(t, cs.Skipped)

	ch := cs.Changes[0]
	assert.Equal(t, "a.ts", ch.Display)
	assert.Equal(t, "interface A {\n}\n", string(ch.Before))
	assert.Equal(t, "interface A {\n  x?: string;\n  y?: number;\n}\n", string(ch.After))
	assert.Equal(t, 2, ch.EditCount)
	assert.False(t, ch.Created)
}

func TestPlanSkipsConflicts(t *testing.T) {
	dir := t.TempDir()
	fs := source.NewFileSetWithBase(dir)
	id := loadTemp(t, fs, writeTemp(t, dir, "a.ts", "let value = 1;\n"))

	fixes := []Fix{
		ReplaceSpan("rename", source.Span{File: id, Start: 4, End: 9}, "count", "value", WithID("rename")),
		InsertText("inside", source.Point(id, 6), "X", "", WithID("inside")),
		ReplaceSpan("stale", source.Span{File: id, Start: 12, End: 13}, "2", "9", WithID("stale")),
		InsertText("dup", source.Point(id, 0), "// x\n", "", WithID("rename")),
	}
	cs, err := Plan(fs, fixes)
	require.NoError(t, err)
	require.Len(t, cs.Applied, 1)
	require.Len(t, cs.Skipped, 3)

	assert.Equal(t, "conflicts with previously accepted edits", cs.Skipped[0].Reason)
	assert.Equal(t, "existing text does not match expected content", cs.Skipped[1].Reason)
	assert.Equal(t, "duplicate fix id", cs.Skipped[2].Reason)
	assert.Equal(t, "let count = 1;\n", string(cs.Changes[0].After))
}

func TestPlanCreateFile(t *testing.T) {
	dir := t.TempDir()
	fs := source.NewFileSetWithBase(dir)
	existing := writeTemp(t, dir, "types/present.ts", "export {};\n")

	missingID, err := fs.LoadOrMissing(filepath.Join(dir, "types", "new.ts"))
	require.NoError(t, err)
	presentID, err := fs.LoadOrMissing(existing)
	require.NoError(t, err)

	cs, err := Plan(fs, []Fix{
		CreateFile("create new", missingID, "export const a = 1;\n", WithID("new")),
		CreateFile("create present", presentID, "overwrite\n", WithID("present")),
		CreateFile("create new twice", missingID, "again\n", WithID("again")),
	})
	require.NoError(t, err)
	require.Len(t, cs.Changes, 1)
	assert.True(t, cs.Changes[0].Created)
	assert.Nil(t, cs.Changes[0].Before)
	assert.Equal(t, "export const a = 1;\n", string(cs.Changes[0].After))

	require.Len(t, cs.Skipped, 2)
	assert.Equal(t, "file already exists", cs.Skipped[0].Reason)
	assert.Equal(t, "file is already being created", cs.Skipped[1].Reason)
}

func TestPlanEditOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	fs := source.NewFileSetWithBase(dir)
	id, err := fs.LoadOrMissing(filepath.Join(dir, "gone.ts"))
	require.NoError(t, err)

	cs, err := Plan(fs, []Fix{InsertText("x", source.Point(id, 0), "x", "")})
	require.ErrorIs(t, err, ErrNoChanges)
	require.Len(t, cs.Skipped, 1)
	assert.Equal(t, "target file does not exist", cs.Skipped[0].Reason)
	assert.Equal(t, "fix-0", cs.Skipped[0].ID)
}

func TestPlanRestoresLineEndings(t *testing.T) {
	dir := t.TempDir()
	fs := source.NewFileSetWithBase(dir)
	id := loadTemp(t, fs, writeTemp(t, dir, "crlf.ts", "\xEF\xBB\xBFa\r\nb\r\n"))

	cs, err := Plan(fs, []Fix{InsertText("add", source.Point(id, 2), "c\n", "")})
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBFa\r\nb\r\n", string(cs.Changes[0].Before))
	assert.Equal(t, "\xEF\xBB\xBFa\r\nc\r\nb\r\n", string(cs.Changes[0].After))
}

func TestPlanSpanOutOfRange(t *testing.T) {
	dir := t.TempDir()
	fs := source.NewFileSetWithBase(dir)
	id := loadTemp(t, fs, writeTemp(t, dir, "a.ts", "abc"))

	cs, err := Plan(fs, []Fix{InsertText("far", source.Point(id, 10), "x", "")})
	require.ErrorIs(t, err, ErrNoChanges)
	assert.Equal(t, "edit span out of range", cs.Skipped[0].Reason)
}

func TestChangeDiff(t *testing.T) {
	ch := FileChange{
		Display: "src/a.ts",
		Before:  []byte("one\ntwo\n"),
		After:   []byte("one\nthree\ntwo\n"),
	}
	d, err := ch.Diff(3)
	require.NoError(t, err)
	assert.Contains(t, d, "--- a/src/a.ts")
	assert.Contains(t, d, "+++ b/src/a.ts")
	assert.Contains(t, d, "+three\n")

	created := FileChange{Display: "new.ts", After: []byte("x\n"), Created: true}
	d, err = created.Diff(3)
	require.NoError(t, err)
	assert.Contains(t, d, "--- /dev/null")
	assert.Contains(t, d, "+x\n")
	assert.NotContains(t, d, "\n-")
}

func TestCreatedDiffHasNoTrailingBlankLine(t *testing.T) {
	created := FileChange{Display: "new.ts", After: []byte("a\nb\n"), Created: true}
	d, err := created.Diff(3)
	require.NoError(t, err)
	assert.Contains(t, d, "@@ -0,0 +1,2 @@")
	assert.True(t, strings.HasSuffix(d, "+a\n+b\n"), d)

	assert.Equal(t, []string{"a\n", "b\n"}, splitLines([]byte("a\nb\n")))
	assert.Equal(t, []string{"a\n", "b\n"}, splitLines([]byte("a\nb")))
	assert.Nil(t, splitLines(nil))
}
