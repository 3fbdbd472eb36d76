// Package store persists the dashboard arrangement.
//
// The dashboard hands a complete configuration to Save and gets one back
// from Load; where it lives is up to the driver. The file driver rewrites
// the dashboard keys of the config file in place. The sqlite driver appends
// a revision per save so earlier layouts can be listed and restored.
package store

import (
	"context"

	"github.com/rileyhilliard/insights/internal/campaign"
	"github.com/rileyhilliard/insights/internal/config"
	"github.com/rileyhilliard/insights/internal/errors"
	"github.com/rileyhilliard/insights/internal/layout"
)

// Store is the save/load boundary for dashboard configuration.
type Store interface {
	// Load returns the last saved configuration, or the base configuration
	// when nothing has been saved yet.
	Load(ctx context.Context) (*config.Config, error)
	// Save persists the dashboard state of cfg.
	Save(ctx context.Context, cfg *config.Config) error
	Close() error
}

// Open returns the store selected by cfg.Store. configPath is the file the
// config was loaded from; the file driver writes back to it, falling back to
// .insights.yaml in the working directory.
func Open(cfg *config.Config, configPath string) (Store, error) {
	switch cfg.Store.Driver {
	case config.StoreFile, "":
		if configPath == "" {
			configPath = config.ConfigFileName
		}
		return NewFileStore(configPath, cfg), nil
	case config.StoreSQLite:
		path := cfg.Store.Path
		if path == "" {
			path = DefaultSQLitePath()
		}
		return OpenSQLite(path, cfg.Store.Profile, cfg)
	default:
		return nil, errors.New(errors.ErrStore,
			"Unknown store driver '"+cfg.Store.Driver+"'",
			"Set store.driver to 'file' or 'sqlite'.")
	}
}

// state is the part of the config a save records.
type state struct {
	Sections        map[string]layout.Section `yaml:"sections"`
	LayoutMode      string                    `yaml:"layoutMode"`
	AutoRefresh     bool                      `yaml:"autoRefresh"`
	RefreshInterval int                       `yaml:"refreshInterval"`
	Filters         campaign.Criteria         `yaml:"filters"`
	Sort            *campaign.SortSpec        `yaml:"sort,omitempty"`
}

func stateOf(cfg *config.Config) state {
	return state{
		Sections:        cfg.Sections,
		LayoutMode:      cfg.LayoutMode,
		AutoRefresh:     cfg.AutoRefresh,
		RefreshInterval: cfg.RefreshInterval,
		Filters:         cfg.Filters,
		Sort:            cfg.Sort,
	}
}

// applyTo overlays s onto a copy of base. Sections go through the catalog
// so ids removed since the save are dropped and new ones appear.
func (s state) applyTo(base *config.Config) *config.Config {
	cfg := base.Clone()
	cfg.Sections = s.Sections
	cfg.LayoutMode = s.LayoutMode
	cfg.AutoRefresh = s.AutoRefresh
	cfg.RefreshInterval = s.RefreshInterval
	cfg.Filters = s.Filters
	cfg.Sort = s.Sort
	cfg.ApplyRegistry(cfg.Registry())
	return cfg
}
