package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rileyhilliard/insights/internal/config"
	"github.com/rileyhilliard/insights/internal/errors"
	"github.com/rileyhilliard/insights/internal/store"
	"github.com/rileyhilliard/insights/internal/ui"
)

// storeTimeout bounds store reads and writes issued by one command.
const storeTimeout = 10 * time.Second

// WorkflowOptions configures workflow setup behavior.
type WorkflowOptions struct {
	ConfigPath string // Explicit config file; empty searches for one
	SkipStore  bool   // Load config only, without opening the layout store
}

// WorkflowContext holds state from workflow setup for use during execution.
type WorkflowContext struct {
	// Config is the dashboard configuration with the last saved layout
	// applied on top of the config file.
	Config *config.Config
	// ConfigPath is the file Config was loaded from, or empty for defaults.
	ConfigPath string
	Store      store.Store
}

// Close releases workflow resources.
func (w *WorkflowContext) Close() {
	if w.Store != nil {
		w.Store.Close() //nolint:errcheck // close errors are non-fatal on exit
	}
}

// SQLite returns the store as a revision history, or an error explaining how
// to enable one.
func (w *WorkflowContext) SQLite() (*store.SQLiteStore, error) {
	if s, ok := w.Store.(*store.SQLiteStore); ok {
		return s, nil
	}
	return nil, errors.New(errors.ErrStore,
		"Layout history needs the sqlite store",
		"Set 'store: {driver: sqlite}' in .insights.yaml to keep a revision per save.")
}

// Save writes cfg through the store.
func (w *WorkflowContext) Save(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	return w.Store.Save(ctx, cfg)
}

// SetupWorkflow performs the common phases: find and load config, validate
// it, then open the layout store and apply the last saved layout.
// The caller must Close() the returned context when done.
func SetupWorkflow(opts WorkflowOptions) (*WorkflowContext, error) {
	cfg, path, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	w := &WorkflowContext{Config: cfg, ConfigPath: path}
	if opts.SkipStore {
		return w, nil
	}

	w.Store, err = store.Open(cfg, path)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	saved, err := w.Store.Load(ctx)
	if err != nil {
		w.Close()
		return nil, err
	}
	w.Config = saved
	return w, nil
}

// printHeader writes the branded header above human-readable output.
func printHeader(w io.Writer, wf *WorkflowContext) {
	if machineMode || quiet {
		return
	}
	source := wf.ConfigPath
	if source == "" {
		source = "built-in defaults"
	}
	ui.PrintHeader(w, ui.HeaderInfo{
		Version: formatVersion(version),
		Tagline: "campaign analytics dashboard",
		Source:  source,
	})
	fmt.Fprintln(w)
}
