package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/insights/internal/config"
	"github.com/rileyhilliard/insights/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearInitEnv unsets every variable getInitDefaults reads.
func clearInitEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"INSIGHTS_STORE", "INSIGHTS_DATASET", "INSIGHTS_NON_INTERACTIVE", "CI"} {
		t.Setenv(key, "")
	}
}

func TestGetInitDefaults(t *testing.T) {
	t.Run("env vars populated", func(t *testing.T) {
		clearInitEnv(t)
		t.Setenv("INSIGHTS_STORE", "sqlite")
		t.Setenv("INSIGHTS_DATASET", "exports/campaigns.yaml")
		t.Setenv("INSIGHTS_NON_INTERACTIVE", "true")

		defaults := getInitDefaults(InitOptions{})
		assert.Equal(t, "sqlite", defaults.Store)
		assert.Equal(t, "exports/campaigns.yaml", defaults.Dataset)
		assert.True(t, defaults.NonInteractive)
	})

	t.Run("flags win over env", func(t *testing.T) {
		clearInitEnv(t)
		t.Setenv("INSIGHTS_STORE", "sqlite")

		defaults := getInitDefaults(InitOptions{Store: "file"})
		assert.Equal(t, "file", defaults.Store)
	})

	t.Run("CI env triggers non-interactive", func(t *testing.T) {
		clearInitEnv(t)
		t.Setenv("CI", "1")

		assert.True(t, getInitDefaults(InitOptions{}).NonInteractive)
	})

	t.Run("empty env vars", func(t *testing.T) {
		clearInitEnv(t)

		defaults := getInitDefaults(InitOptions{})
		assert.Empty(t, defaults.Store)
		assert.Empty(t, defaults.Dataset)
		assert.False(t, defaults.NonInteractive)
	})
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", " t "} {
		assert.True(t, isTruthy(v), v)
	}
	for _, v := range []string{"", "0", "false", "yes-please"} {
		assert.False(t, isTruthy(v), v)
	}
}

func TestInit_NonInteractive_Success(t *testing.T) {
	clearInitEnv(t)
	oldQuiet := quiet
	defer func() { quiet = oldQuiet }()
	quiet = false

	dir := t.TempDir()
	var buf bytes.Buffer
	err := Init(&buf, InitOptions{Dir: dir, NonInteractive: true, Store: config.StoreSQLite, Dataset: "campaigns.yaml"})
	require.NoError(t, err)

	path := filepath.Join(dir, config.ConfigFileName)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# insights dashboard configuration")
	assert.Contains(t, buf.String(), "Created "+path)
	assert.Contains(t, buf.String(), "Next steps:")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, config.Validate(cfg))
	assert.Equal(t, config.StoreSQLite, cfg.Store.Driver)
	assert.Equal(t, "campaigns.yaml", cfg.Dataset)
	assert.Equal(t, config.LayoutGrid, cfg.LayoutMode)
	assert.Equal(t, config.DefaultRefreshInterval, cfg.RefreshInterval)
	assert.Len(t, cfg.Registry().Enabled(), 7)
}

func TestInit_NonInteractive_ConfigExists(t *testing.T) {
	clearInitEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nlayoutMode: list\n"), 0644))

	err := Init(&bytes.Buffer{}, InitOptions{Dir: dir, NonInteractive: true})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "already exists")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\nlayoutMode: list\n", string(content))
}

func TestInit_NonInteractive_ForceOverwrite(t *testing.T) {
	clearInitEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nlayoutMode: list\n"), 0644))

	require.NoError(t, Init(&bytes.Buffer{}, InitOptions{Dir: dir, NonInteractive: true, Overwrite: true}))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.LayoutGrid, cfg.LayoutMode)
}

func TestInit_InvalidStoreDriver(t *testing.T) {
	clearInitEnv(t)
	dir := t.TempDir()

	err := Init(&bytes.Buffer{}, InitOptions{Dir: dir, NonInteractive: true, Store: "redis"})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, config.ConfigFileName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestInit_EnvForcesNonInteractive(t *testing.T) {
	clearInitEnv(t)
	t.Setenv("CI", "true")
	t.Setenv("INSIGHTS_STORE", "sqlite")
	dir := t.TempDir()

	require.NoError(t, Init(&bytes.Buffer{}, InitOptions{Dir: dir}))

	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, config.StoreSQLite, cfg.Store.Driver)
}

func TestInit_JSON(t *testing.T) {
	clearInitEnv(t)
	oldMode := machineMode
	defer func() { machineMode = oldMode }()
	machineMode = true

	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, Init(&buf, InitOptions{Dir: dir, NonInteractive: true}))
	assert.Contains(t, buf.String(), `"success": true`)
	assert.Contains(t, buf.String(), config.ConfigFileName)
}
