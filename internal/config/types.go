package config

import (
	"github.com/rileyhilliard/insights/internal/campaign"
	"github.com/rileyhilliard/insights/internal/layout"
	"github.com/rileyhilliard/insights/internal/refresh"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// DefaultRefreshInterval is the auto-refresh period in seconds.
const DefaultRefreshInterval = 5

// Layout modes.
const (
	LayoutGrid = "grid"
	LayoutList = "list"
)

// LayoutModes lists the accepted layoutMode values.
var LayoutModes = []string{LayoutGrid, LayoutList}

// Store drivers.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config represents the complete .insights.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Sections is keyed by section id. Ids outside the built-in catalog are
	// dropped on load; missing ones are restored.
	Sections map[string]layout.Section `yaml:"sections" mapstructure:"sections"`

	LayoutMode string `yaml:"layoutMode" mapstructure:"layoutMode"`

	AutoRefresh bool `yaml:"autoRefresh" mapstructure:"autoRefresh"`

	// RefreshInterval is in seconds and must be positive.
	RefreshInterval int `yaml:"refreshInterval" mapstructure:"refreshInterval"`

	Filters campaign.Criteria `yaml:"filters" mapstructure:"filters"`

	// Sort is optional. Absent means rows keep dataset order.
	Sort *campaign.SortSpec `yaml:"sort,omitempty" mapstructure:"sort"`

	// Dataset is a path to a campaigns YAML file. Empty uses the built-in sample.
	Dataset string `yaml:"dataset,omitempty" mapstructure:"dataset"`

	Store StoreConfig `yaml:"store" mapstructure:"store"`
}

// StoreConfig selects where the dashboard arrangement is saved.
type StoreConfig struct {
	// Driver is "file" (this YAML file) or "sqlite" (revision history).
	Driver string `yaml:"driver" mapstructure:"driver"`

	// Path is the SQLite database path. Ignored by the file driver.
	Path string `yaml:"path,omitempty" mapstructure:"path"`

	// Profile namespaces revisions so several layouts can share one database.
	Profile string `yaml:"profile,omitempty" mapstructure:"profile"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	cfg := &Config{
		Version:         CurrentConfigVersion,
		LayoutMode:      LayoutGrid,
		AutoRefresh:     false,
		RefreshInterval: DefaultRefreshInterval,
		Filters:         campaign.DefaultCriteria(),
		Store: StoreConfig{
			Driver:  StoreFile,
			Profile: "default",
		},
	}
	cfg.ApplyRegistry(layout.NewRegistry(layout.DefaultCatalog()))
	return cfg
}

// Registry rebuilds the section registry from the persisted sections.
func (c *Config) Registry() layout.Registry {
	return layout.Restore(layout.DefaultCatalog(), c.Sections)
}

// ApplyRegistry replaces the persisted sections with r's state.
func (c *Config) ApplyRegistry(r layout.Registry) {
	c.Sections = r.Sections()
}

// Refresh derives the scheduler settings.
func (c *Config) Refresh() refresh.Config {
	return refresh.Config{
		Enabled:         c.AutoRefresh,
		IntervalSeconds: c.RefreshInterval,
	}
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Sections != nil {
		out.Sections = make(map[string]layout.Section, len(c.Sections))
		for id, s := range c.Sections {
			out.Sections[id] = s
		}
	}
	if c.Sort != nil {
		s := *c.Sort
		out.Sort = &s
	}
	return &out
}
