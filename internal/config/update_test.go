package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/insights/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)

	content := `# Team dashboard
version: 1
dataset: ./campaigns.yaml # shared export
refreshInterval: 5 # seconds
store:
  driver: file
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	cfg.ApplyRegistry(cfg.Registry().Toggle(layout.QuickStats))
	cfg.RefreshInterval = 30
	cfg.AutoRefresh = true

	require.NoError(t, Update(configPath, cfg))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "# Team dashboard")
	assert.Contains(t, text, "# shared export")
	assert.Contains(t, text, "# seconds")
	assert.Contains(t, text, "dataset: ./campaigns.yaml")

	reloaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 30, reloaded.RefreshInterval)
	assert.True(t, reloaded.AutoRefresh)
	assert.False(t, reloaded.Sections[layout.QuickStats].Enabled)
	assert.Equal(t, "./campaigns.yaml", reloaded.Dataset)
}

func TestUpdate_RemovesClearedSort(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	content := `version: 1
sort:
  key: clicks
  direction: asc
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg.Sort)

	cfg.Sort = nil
	require.NoError(t, Update(configPath, cfg))

	reloaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Nil(t, reloaded.Sort)
}

func TestUpdate_CreatesMissingFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)

	cfg := DefaultConfig()
	cfg.LayoutMode = LayoutList
	require.NoError(t, Update(configPath, cfg))

	reloaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestUpdate_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, nil, 0644))

	require.NoError(t, Update(configPath, DefaultConfig()))

	reloaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), reloaded)
}

func TestUpdate_RejectsNonMapping(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("- a\n- b\n"), 0644))

	err := Update(configPath, DefaultConfig())
	assert.Error(t, err)
}
