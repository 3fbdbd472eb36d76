package cli

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/insights/internal/dashboard"
	"github.com/rileyhilliard/insights/internal/errors"
	"github.com/rileyhilliard/insights/internal/logger"
	"golang.org/x/term"
)

// DashboardLogFile receives dashboard logs when --verbose is set.
const DashboardLogFile = "insights-debug.log"

// DashboardOptions holds command line overrides for the dashboard.
type DashboardOptions struct {
	Interval time.Duration // Overrides refreshInterval when non-zero
	Realtime *bool         // Overrides autoRefresh when set
	Dataset  string        // Overrides the dataset path when set
}

// dashboardCommand starts the TUI dashboard.
func dashboardCommand(opts DashboardOptions) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrConfig,
			"The dashboard needs an interactive terminal",
			"Use 'insights campaigns' or 'insights sections list' for plain output.")
	}

	w, err := SetupWorkflow(WorkflowOptions{ConfigPath: Config()})
	if err != nil {
		return err
	}
	defer w.Close()

	cfg := w.Config.Clone()
	if opts.Interval > 0 {
		cfg.RefreshInterval = int(opts.Interval / time.Second)
	}
	if opts.Realtime != nil {
		cfg.AutoRefresh = *opts.Realtime
	}
	if opts.Dataset != "" {
		cfg.Dataset = opts.Dataset
	}

	// The alt screen owns the terminal, so logs go to a file or nowhere.
	log := logger.Noop()
	if Verbose() {
		f, err := tea.LogToFile(DashboardLogFile, "dashboard")
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot open "+DashboardLogFile,
				"Check write permissions in the current directory")
		}
		defer f.Close()
		log = logger.NewEnvLogger("")
	}

	model, err := dashboard.New(dashboard.Options{
		Config: cfg,
		Store:  w.Store,
		Logger: log,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
