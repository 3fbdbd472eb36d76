package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/insights/internal/config"
	"github.com/rileyhilliard/insights/internal/errors"
	"github.com/rileyhilliard/insights/internal/layout"
	"github.com/rileyhilliard/insights/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // Directory to write .insights.yaml in; default "."
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults and flags
	Store          string // Store driver; default file
	Dataset        string // Campaign dataset path; empty uses the built-in sample
}

// initHeader is written above the generated YAML.
const initHeader = `# insights dashboard configuration
# Run 'insights dashboard' to open the dashboard.
# Sections, filters, and sort are rewritten when you save from the dashboard.

`

// getInitDefaults fills unset options from INSIGHTS_* environment variables.
// CI or INSIGHTS_NON_INTERACTIVE forces non-interactive mode.
func getInitDefaults(opts InitOptions) InitOptions {
	if opts.Store == "" {
		opts.Store = os.Getenv("INSIGHTS_STORE")
	}
	if opts.Dataset == "" {
		opts.Dataset = os.Getenv("INSIGHTS_DATASET")
	}
	if isTruthy(os.Getenv("INSIGHTS_NON_INTERACTIVE")) || isTruthy(os.Getenv("CI")) {
		opts.NonInteractive = true
	}
	return opts
}

func isTruthy(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

// Init creates a new .insights.yaml configuration file.
func Init(w io.Writer, opts InitOptions) error {
	opts = getInitDefaults(opts)
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	configPath := filepath.Join(dir, config.ConfigFileName)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if opts.Store != "" {
		cfg.Store.Driver = opts.Store
	}
	cfg.Dataset = opts.Dataset

	if !opts.NonInteractive {
		if err := promptInit(cfg); err != nil {
			return err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot create directory "+dir,
			"Check directory permissions")
	}
	if err := os.WriteFile(configPath, []byte(initHeader+string(data)), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	if machineMode {
		return WriteJSONSuccess(w, map[string]string{"path": configPath})
	}
	fmt.Fprintf(w, "%s Created %s\n", ui.SymbolSuccess, configPath)
	if !quiet {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Next steps:")
		fmt.Fprintln(w, "  insights dashboard       - Open the dashboard")
		fmt.Fprintln(w, "  insights sections list   - Review the layout")
		fmt.Fprintln(w, "  insights campaigns       - Print the campaign table")
	}
	return nil
}

// promptInit asks for the dashboard settings and writes the answers to cfg.
func promptInit(cfg *config.Config) error {
	catalog := layout.DefaultCatalog()
	sectionOpts := make([]huh.Option[string], len(catalog))
	shown := make([]string, 0, len(catalog))
	for i, s := range catalog {
		sectionOpts[i] = huh.NewOption(s.Title, s.ID)
		shown = append(shown, s.ID)
	}

	layoutMode := cfg.LayoutMode
	autoRefresh := cfg.AutoRefresh
	interval := strconv.Itoa(cfg.RefreshInterval)
	driver := cfg.Store.Driver
	dataset := cfg.Dataset

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Sections to show").
				Description("Hidden sections can be turned back on from the dashboard").
				Options(sectionOpts...).
				Value(&shown),
			huh.NewSelect[string]().
				Title("Layout").
				Options(
					huh.NewOption("Grid (two columns on wide terminals)", config.LayoutGrid),
					huh.NewOption("List (one section per row)", config.LayoutList),
				).
				Value(&layoutMode),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Start with real-time refresh on?").
				Value(&autoRefresh),
			huh.NewInput().
				Title("Refresh interval (seconds)").
				Value(&interval).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("enter a whole number of seconds, 1 or more")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should saved layouts go?").
				Options(
					huh.NewOption("This config file", config.StoreFile),
					huh.NewOption("SQLite history (keeps every save)", config.StoreSQLite),
				).
				Value(&driver),
			huh.NewInput().
				Title("Campaign dataset (optional)").
				Description("YAML export of campaign rows; leave empty for the built-in sample").
				Placeholder("campaigns.yaml").
				Value(&dataset),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}

	r := cfg.Registry()
	for _, s := range catalog {
		r = r.SetEnabled(s.ID, slices.Contains(shown, s.ID))
	}
	cfg.ApplyRegistry(r)
	cfg.LayoutMode = layoutMode
	cfg.AutoRefresh = autoRefresh
	cfg.RefreshInterval, _ = strconv.Atoi(strings.TrimSpace(interval))
	cfg.Store.Driver = driver
	cfg.Dataset = strings.TrimSpace(dataset)
	return nil
}

// initCommand is the implementation called by the cobra command.
func initCommand(w io.Writer, force, nonInteractive bool, storeDriver, dataset string) error {
	return Init(w, InitOptions{
		Overwrite:      force,
		NonInteractive: nonInteractive,
		Store:          storeDriver,
		Dataset:        dataset,
	})
}
