package annotator

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, "tasks.csv", cfg.TasksPath)
	assert.Equal(t, "progress.csv", cfg.ProgressPath)
	assert.Equal(t, DefaultReviewLimit, cfg.ReviewLimit)
	assert.False(t, cfg.DefaultToPreCorrection)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	want := Config{
		TasksPath:              "data/tasks.csv",
		ProgressPath:           "data/progress.csv",
		DefaultToPreCorrection: true,
		ReviewLimit:            100,
	}
	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestConfigPolicy(t *testing.T) {
	cfg := Config{DefaultToPreCorrection: true}
	assert.True(t, cfg.Policy().DefaultToPreCorrection)
}
