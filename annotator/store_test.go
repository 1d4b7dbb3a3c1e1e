package annotator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tasksFixture = "原形,校对前,校对后,候选项\n" +
	"发,發 髮,殘留,\"[發,10] [髮,5]\"\n" +
	"后,後,,\"[後,8] [后,2]\"\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTasksMissingFile(t *testing.T) {
	_, err := LoadTasks(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadTasksMissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tasks.csv", "原形,校对前,校对后\n发,發,\n")
	_, err := LoadTasks(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ColCandidates)
}

func TestLoadTasks(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tasks.csv", tasksFixture)
	table, err := LoadTasks(path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	row, err := table.Row(0)
	require.NoError(t, err)
	assert.Equal(t, "发", row.OriginalForm)
	assert.Equal(t, "發 髮", row.PreCorrection)
	assert.Equal(t, "[發,10] [髮,5]", row.Candidates)
}

func TestLoadOrInitBootstrap(t *testing.T) {
	dir := t.TempDir()
	tasks := writeFile(t, dir, "tasks.csv", tasksFixture)
	progress := filepath.Join(dir, "progress.csv")

	store, err := LoadOrInit(progress, tasks)
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	// Residual 校对后 values from the task file must not leak into progress.
	for i := 0; i < store.Len(); i++ {
		row, err := store.Row(i)
		require.NoError(t, err)
		assert.Empty(t, row.Corrected)
	}

	// The initial file is written eagerly and is re-readable.
	require.FileExists(t, progress)
	again, err := LoadOrInit(progress, "")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Len())
}

func TestLoadOrInitBackfillsMissingColumns(t *testing.T) {
	dir := t.TempDir()
	progress := writeFile(t, dir, "progress.csv", "原形,校对前,候选项\n发,發,\"[發,10]\"\n")

	store, err := LoadOrInit(progress, "")
	require.NoError(t, err)
	row, err := store.Row(0)
	require.NoError(t, err)
	assert.Equal(t, "发", row.OriginalForm)
	assert.Empty(t, row.Corrected)
}

func TestLoadOrInitToleratesBOM(t *testing.T) {
	dir := t.TempDir()
	progress := writeFile(t, dir, "progress.csv", "\uFEFF"+tasksFixture)

	store, err := LoadOrInit(progress, "")
	require.NoError(t, err)
	row, err := store.Row(0)
	require.NoError(t, err)
	assert.Equal(t, "发", row.OriginalForm)
}

func TestPersistRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tasks := writeFile(t, dir, "tasks.csv", tasksFixture)
	progress := filepath.Join(dir, "progress.csv")

	store, err := LoadOrInit(progress, tasks)
	require.NoError(t, err)
	require.NoError(t, store.SetCorrected(0, "發 髮"))
	require.NoError(t, store.SetCorrected(1, NotAWord))
	require.NoError(t, store.Persist())

	reloaded, err := LoadOrInit(progress, "")
	require.NoError(t, err)
	require.Equal(t, store.Len(), reloaded.Len())
	for i := 0; i < store.Len(); i++ {
		want, err := store.Row(i)
		require.NoError(t, err)
		got, err := reloaded.Row(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestRowOutOfRange(t *testing.T) {
	dir := t.TempDir()
	progress := writeFile(t, dir, "progress.csv", tasksFixture)
	store, err := LoadOrInit(progress, "")
	require.NoError(t, err)

	_, err = store.Row(-1)
	assert.ErrorContains(t, err, "out of range")
	_, err = store.Row(store.Len())
	assert.ErrorContains(t, err, "out of range")
	assert.ErrorContains(t, store.SetCorrected(99, "x"), "out of range")
}

func TestExportCSVPreservesScript(t *testing.T) {
	dir := t.TempDir()
	progress := writeFile(t, dir, "progress.csv", tasksFixture)
	store, err := LoadOrInit(progress, "")
	require.NoError(t, err)
	require.NoError(t, store.SetCorrected(0, "發 髮"))

	data, err := store.ExportCSV()
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "原形,校对前,校对后,候选项")
	assert.Contains(t, out, "發 髮")
}
