package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rileyhilliard/insights/internal/campaign"
	"github.com/rileyhilliard/insights/internal/errors"
)

// StoreDrivers lists the accepted store.driver values.
var StoreDrivers = []string{StoreFile, StoreSQLite}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	// Check version
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but insights only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade insights to read this file.")
	}

	if cfg.RefreshInterval <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("refreshInterval must be a positive number of seconds, got %d", cfg.RefreshInterval),
			fmt.Sprintf("Try refreshInterval: %d.", DefaultRefreshInterval))
	}

	if !slices.Contains(LayoutModes, cfg.LayoutMode) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown layoutMode '%s'", cfg.LayoutMode),
			"Use one of "+describeValues(LayoutModes)+".")
	}

	if err := cfg.Filters.Validate(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid filter defaults",
			"Check the 'filters' section in your .insights.yaml.")
	}

	if err := validateSort(cfg.Sort); err != nil {
		return err
	}

	if err := validateStore(cfg.Store); err != nil {
		return err
	}

	return nil
}

// validateSort checks the optional default sort.
func validateSort(s *campaign.SortSpec) error {
	if s == nil {
		return nil
	}
	if !campaign.IsField(s.Key) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Can't sort by '%s' - no such column", s.Key),
			"Sortable columns: "+describeValues(campaign.Fields)+".")
	}
	if s.Direction != campaign.Asc && s.Direction != campaign.Desc {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Sort direction must be 'asc' or 'desc', got '%s'", s.Direction),
			"Check the 'sort' section in your .insights.yaml.")
	}
	return nil
}

// validateStore checks the persistence settings.
func validateStore(s StoreConfig) error {
	if !slices.Contains(StoreDrivers, s.Driver) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown store driver '%s'", s.Driver),
			"Use one of "+describeValues(StoreDrivers)+".")
	}
	if strings.TrimSpace(s.Profile) == "" && s.Driver == StoreSQLite {
		return errors.New(errors.ErrConfig,
			"The sqlite store needs a profile name",
			"Set store.profile, e.g. 'default'.")
	}
	return nil
}

// describeValues formats accepted values for error suggestions.
func describeValues(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("'%s'", v)
	}
	return strings.Join(quoted, ", ")
}
