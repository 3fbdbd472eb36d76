package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/insights/internal/campaign"
	"github.com/rileyhilliard/insights/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, LayoutGrid, cfg.LayoutMode)
	assert.False(t, cfg.AutoRefresh)
	assert.Equal(t, 5, cfg.RefreshInterval)
	assert.Equal(t, campaign.DefaultCriteria(), cfg.Filters)
	assert.Nil(t, cfg.Sort)
	assert.Empty(t, cfg.Dataset)
	assert.Equal(t, StoreFile, cfg.Store.Driver)
	assert.Equal(t, "default", cfg.Store.Profile)

	require.Len(t, cfg.Sections, 7)
	assert.Equal(t, 0, cfg.Sections[layout.QuickStats].Order)
	assert.Equal(t, 6, cfg.Sections[layout.PredictiveAnalytics].Order)
	for _, s := range cfg.Sections {
		assert.True(t, s.Enabled, s.ID)
	}

	require.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	// Create a temp config file
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)

	content := `
version: 1
sections:
  campaign-performance:
    enabled: true
    order: 0
  quick-stats:
    enabled: false
    order: 1
  made-up:
    enabled: true
    order: 2
layoutMode: list
autoRefresh: true
refreshInterval: 10
filters:
  timePeriod: 30d
  revenueRange: 1000-5000
sort:
  key: revenue
  direction: desc
dataset: ./campaigns.yaml
store:
  driver: sqlite
  path: ./insights.db
  profile: team
`
	err := os.WriteFile(configPath, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, LayoutList, cfg.LayoutMode)
	assert.True(t, cfg.AutoRefresh)
	assert.Equal(t, 10, cfg.RefreshInterval)
	assert.Equal(t, campaign.Period30Days, cfg.Filters.TimePeriod)
	assert.Equal(t, "1000-5000", cfg.Filters.RevenueRange)
	assert.Equal(t, campaign.All, cfg.Filters.TrafficSource, "unset filters keep defaults")
	require.NotNil(t, cfg.Sort)
	assert.Equal(t, campaign.SortSpec{Key: "revenue", Direction: campaign.Desc}, *cfg.Sort)
	assert.Equal(t, "./campaigns.yaml", cfg.Dataset)
	assert.Equal(t, StoreConfig{Driver: StoreSQLite, Path: "./insights.db", Profile: "team"}, cfg.Store)

	// Closed catalog: unknown ids dropped, missing ids appended after saved ones.
	require.Len(t, cfg.Sections, 7)
	assert.NotContains(t, cfg.Sections, "made-up")
	snap := cfg.Registry().Snapshot()
	assert.Equal(t, layout.CampaignPerformance, snap[0].ID)
	assert.Equal(t, layout.QuickStats, snap[1].ID)
	assert.False(t, snap[1].Enabled)
	assert.Equal(t, "Quick Stats", snap[1].Title, "titles come from the catalog")
	assert.Equal(t, layout.PerformanceMetrics, snap[2].ID)
	assert.True(t, layout.IsDense(snap))

	require.NoError(t, Validate(cfg))
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("version: 1\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/.insights.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Config file not found")
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("sections: [unclosed"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", ConfigFileName)

	cfg := DefaultConfig()
	cfg.ApplyRegistry(cfg.Registry().Toggle(layout.AIInsights).Move(0, layout.Index(2)))
	cfg.Filters.HighValue = true
	cfg.Sort = &campaign.SortSpec{Key: "clicks", Direction: campaign.Asc}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestFind(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) (string, func())
		explicit string
		wantErr  bool
		wantPath string
	}{
		{
			name: "explicit path exists",
			setup: func(t *testing.T) (string, func()) {
				dir := t.TempDir()
				path := filepath.Join(dir, "custom.yaml")
				err := os.WriteFile(path, []byte("version: 1"), 0644)
				require.NoError(t, err)
				return path, func() {}
			},
			wantErr: false,
		},
		{
			name: "explicit path not found",
			setup: func(t *testing.T) (string, func()) {
				return "/nonexistent/config.yaml", func() {}
			},
			wantErr: true,
		},
		{
			name: "current directory has config",
			setup: func(t *testing.T) (string, func()) {
				dir := t.TempDir()
				path := filepath.Join(dir, ConfigFileName)
				err := os.WriteFile(path, []byte("version: 1"), 0644)
				require.NoError(t, err)

				oldWd, _ := os.Getwd()
				err = os.Chdir(dir)
				require.NoError(t, err)

				return "", func() { os.Chdir(oldWd) }
			},
			wantErr: false,
		},
		{
			name: "parent directory has config",
			setup: func(t *testing.T) (string, func()) {
				dir := t.TempDir()
				path := filepath.Join(dir, ConfigFileName)
				err := os.WriteFile(path, []byte("version: 1"), 0644)
				require.NoError(t, err)

				child := filepath.Join(dir, "a", "b")
				require.NoError(t, os.MkdirAll(child, 0755))

				oldWd, _ := os.Getwd()
				err = os.Chdir(child)
				require.NoError(t, err)

				return "", func() { os.Chdir(oldWd) }
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			explicit, cleanup := tt.setup(t)
			defer cleanup()

			path, err := Find(explicit)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if explicit != "" {
					assert.Equal(t, explicit, path)
				} else {
					assert.NotEmpty(t, path)
				}
			}
		})
	}
}

func TestFind_StopsAtGitRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 1"), 0644))

	repo := filepath.Join(dir, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0755))
	child := filepath.Join(repo, "pkg")
	require.NoError(t, os.MkdirAll(child, 0755))

	t.Setenv("HOME", t.TempDir())
	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(child))
	defer os.Chdir(oldWd)

	path, err := Find("")
	require.NoError(t, err)
	assert.Empty(t, path, "search must not climb past the git root")
}

func TestLoadOrDefault(t *testing.T) {
	// Change to a directory without config
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	oldWd, _ := os.Getwd()
	err := os.Chdir(dir)
	require.NoError(t, err)
	defer os.Chdir(oldWd)

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.NotNil(t, cfg)
	assert.Equal(t, CurrentConfigVersion, cfg.Version)
}

func TestLoadOrDefault_Global(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(global), 0755))
	require.NoError(t, os.WriteFile(global, []byte("refreshInterval: 15\n"), 0644))

	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(oldWd)

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, global, path)
	assert.Equal(t, 15, cfg.RefreshInterval)
}

func TestClone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sort = &campaign.SortSpec{Key: "clicks", Direction: campaign.Asc}

	clone := cfg.Clone()
	clone.ApplyRegistry(clone.Registry().Toggle(layout.QuickStats))
	clone.Sort.Direction = campaign.Desc

	assert.True(t, cfg.Sections[layout.QuickStats].Enabled)
	assert.Equal(t, campaign.Asc, cfg.Sort.Direction)
	assert.False(t, clone.Sections[layout.QuickStats].Enabled)
}

func TestRefresh(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoRefresh = true
	cfg.RefreshInterval = 30

	rc := cfg.Refresh()
	assert.True(t, rc.Enabled)
	assert.Equal(t, 30, rc.IntervalSeconds)
}
