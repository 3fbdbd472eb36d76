package cli

import (
	"os"
	"strings"

	"github.com/rileyhilliard/insights/internal/campaign"
	"github.com/rileyhilliard/insights/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	dashboardIntervalFlag string
	dashboardRealtimeFlag bool
	dashboardDatasetFlag  string

	campaignsPeriodFlag    string
	campaignsRevenueFlag   string
	campaignsSourceFlag    string
	campaignsSearchFlag    string
	campaignsHighValueFlag bool
	campaignsRepeatFlag    bool
	campaignsSortFlag      string
	campaignsDescFlag      bool
	campaignsAsOfFlag      string
	campaignsDatasetFlag   string
	campaignsLimitFlag     int

	historyLimitFlag int
	pruneKeepFlag    int

	initForce          bool
	initNonInteractive bool
	initStoreFlag      string
	initDatasetFlag    string
)

// dashboardCmd starts the TUI dashboard
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "ui"},
	Short:   "Open the interactive analytics dashboard",
	Long: `Open the analytics dashboard in the terminal.

The dashboard shows the enabled sections in layout order. Sections can be
selected, moved, and hidden with the keyboard, and the layout is saved with
Ctrl+Alt+S.

Keyboard shortcuts:
  Ctrl+Alt+R   Toggle real-time refresh
  Ctrl+Alt+S   Save the layout
  r / F5       Refresh now
  up/k down/j  Select section
  Shift+up/dn  Move the selected section
  space / x    Show or hide the selected section
  l            Switch grid/list layout
  s / S        Cycle sort column / flip direction
  p m t        Cycle period, revenue range, traffic source
  v c 0        High-value, repeat customers, reset filters
  ? / F1       Show help
  q / Ctrl+C   Quit

Examples:
  insights dashboard
  insights dashboard --realtime --interval 2s
  insights dashboard --dataset exports/campaigns.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, err := ParseInterval(dashboardIntervalFlag)
		if err != nil {
			return err
		}
		opts := DashboardOptions{
			Interval: interval,
			Dataset:  dashboardDatasetFlag,
		}
		if cmd.Flags().Changed("realtime") {
			opts.Realtime = &dashboardRealtimeFlag
		}
		return dashboardCommand(opts)
	},
}

// campaignsCmd prints the filtered campaign table
var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Print the filtered and sorted campaign table",
	Long: `Print the campaign performance table with the dashboard's saved filters.

Flags override individual filters for this run only; the saved dashboard
filters are not changed.

Examples:
  insights campaigns
  insights campaigns --period 30d --source organic
  insights campaigns --revenue 1000-5000 --sort revenue --desc
  insights campaigns --high-value --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return campaignsCommand(cmd.OutOrStdout(), campaignsOptionsFromFlags(cmd))
	},
}

// campaignsOptionsFromFlags patches only the filters given on the command line.
func campaignsOptionsFromFlags(cmd *cobra.Command) CampaignsOptions {
	var patch campaign.Patch
	flags := cmd.Flags()
	if flags.Changed("period") {
		p := campaign.TimePeriod(strings.ToLower(campaignsPeriodFlag))
		patch.TimePeriod = &p
	}
	if flags.Changed("revenue") {
		patch.RevenueRange = &campaignsRevenueFlag
	}
	if flags.Changed("source") {
		patch.TrafficSource = &campaignsSourceFlag
	}
	if flags.Changed("search") {
		patch.Search = &campaignsSearchFlag
	}
	if flags.Changed("high-value") {
		patch.HighValue = &campaignsHighValueFlag
	}
	if flags.Changed("repeat") {
		patch.RepeatCustomers = &campaignsRepeatFlag
	}
	return CampaignsOptions{
		Patch:   patch,
		Sort:    campaignsSortFlag,
		Desc:    campaignsDescFlag,
		AsOf:    campaignsAsOfFlag,
		Dataset: campaignsDatasetFlag,
		Limit:   campaignsLimitFlag,
	}
}

// sectionsCmd groups the layout commands
var sectionsCmd = &cobra.Command{
	Use:     "sections",
	Aliases: []string{"layout"},
	Short:   "Show, hide, and reorder dashboard sections",
	Long: `Manage the dashboard layout without opening the dashboard.

Changes are saved through the configured store, the same way Ctrl+Alt+S
saves from the dashboard.

Examples:
  insights sections list
  insights sections hide ai-insights predictive-analytics
  insights sections move campaign-performance 1
  insights sections history`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sectionsListCommand(cmd.OutOrStdout())
	},
}

var sectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sections in layout order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sectionsListCommand(cmd.OutOrStdout())
	},
}

var sectionsShowCmd = &cobra.Command{
	Use:   "show <section-id>...",
	Short: "Show sections",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled := true
		return sectionsSetCommand(cmd.OutOrStdout(), args, &enabled)
	},
}

var sectionsHideCmd = &cobra.Command{
	Use:   "hide <section-id>...",
	Short: "Hide sections",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled := false
		return sectionsSetCommand(cmd.OutOrStdout(), args, &enabled)
	},
}

var sectionsToggleCmd = &cobra.Command{
	Use:   "toggle <section-id>...",
	Short: "Flip section visibility",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sectionsSetCommand(cmd.OutOrStdout(), args, nil)
	},
}

var sectionsMoveCmd = &cobra.Command{
	Use:   "move <section-id> <position>",
	Short: "Move a section to a 1-based position",
	Long: `Move a section to a new position in the layout. Positions start at 1;
the sections in between shift by one.

Examples:
  insights sections move campaign-performance 1
  insights sections move quick-stats 7`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sectionsMoveCommand(cmd.OutOrStdout(), args[0], args[1])
	},
}

var sectionsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default order and visibility",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sectionsResetCommand(cmd.OutOrStdout())
	},
}

var sectionsModeCmd = &cobra.Command{
	Use:       "mode <grid|list>",
	Short:     "Set the layout mode",
	ValidArgs: []string{"grid", "list"},
	Args:      cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return layoutModeCommand(cmd.OutOrStdout(), args[0])
	},
}

var sectionsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved layouts (sqlite store)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sectionsHistoryCommand(cmd.OutOrStdout(), historyLimitFlag)
	},
}

var sectionsRestoreCmd = &cobra.Command{
	Use:   "restore <revision>",
	Short: "Restore a saved layout (sqlite store)",
	Long: `Restore a layout from the sqlite history. The revision can be given as
the short id printed by 'insights sections history'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sectionsRestoreCommand(cmd.OutOrStdout(), args[0])
	},
}

var sectionsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old saved layouts (sqlite store)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sectionsPruneCommand(cmd.OutOrStdout(), pruneKeepFlag)
	},
}

// initCmd creates a new .insights.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .insights.yaml configuration",
	Long: `Create an .insights.yaml file in the current directory.

Prompts for the visible sections, layout, refresh, and where saved layouts
go. Set CI or INSIGHTS_NON_INTERACTIVE to skip prompts.

Examples:
  insights init
  insights init --non-interactive --store sqlite
  insights init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(cmd.OutOrStdout(), initForce, initNonInteractive, initStoreFlag, initDatasetFlag)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for insights.

Examples:
  # Bash
  insights completion bash > /etc/bash_completion.d/insights

  # Zsh
  insights completion zsh > "${fpath[1]}/_insights"

  # Fish
  insights completion fish > ~/.config/fish/completions/insights.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// dashboard command flags
	dashboardCmd.Flags().StringVar(&dashboardIntervalFlag, "interval", "", "refresh interval (e.g., 5, 5s, 1m)")
	dashboardCmd.Flags().BoolVar(&dashboardRealtimeFlag, "realtime", false, "start with real-time refresh on (--realtime=false to force off)")
	dashboardCmd.Flags().StringVar(&dashboardDatasetFlag, "dataset", "", "campaign dataset YAML (default: configured dataset or built-in sample)")

	// campaigns command flags
	campaignsCmd.Flags().StringVar(&campaignsPeriodFlag, "period", "", "time period: 7d, 30d, 90d, or 1y")
	campaignsCmd.Flags().StringVar(&campaignsRevenueFlag, "revenue", "", "revenue range: all, 1000-5000, 10000+")
	campaignsCmd.Flags().StringVar(&campaignsSourceFlag, "source", "", "traffic source or 'all'")
	campaignsCmd.Flags().StringVar(&campaignsSearchFlag, "search", "", "campaign name contains (case-insensitive)")
	campaignsCmd.Flags().BoolVar(&campaignsHighValueFlag, "high-value", false, "only high-value campaigns")
	campaignsCmd.Flags().BoolVar(&campaignsRepeatFlag, "repeat", false, "only campaigns with repeat customers")
	campaignsCmd.Flags().StringVar(&campaignsSortFlag, "sort", "", "sort column (campaign, clicks, impressions, ctr, conversions, revenue, status, date)")
	campaignsCmd.Flags().BoolVar(&campaignsDescFlag, "desc", false, "sort descending")
	campaignsCmd.Flags().StringVar(&campaignsAsOfFlag, "as-of", "", "measure time periods from this date (YYYY-MM-DD)")
	campaignsCmd.Flags().StringVar(&campaignsDatasetFlag, "dataset", "", "campaign dataset YAML")
	campaignsCmd.Flags().IntVar(&campaignsLimitFlag, "limit", 0, "print at most this many rows")

	// sections subcommands
	sectionsHistoryCmd.Flags().IntVar(&historyLimitFlag, "limit", 20, "number of revisions to list (0 for all)")
	sectionsPruneCmd.Flags().IntVar(&pruneKeepFlag, "keep", 20, "number of newest revisions to keep")
	sectionsCmd.AddCommand(sectionsListCmd, sectionsShowCmd, sectionsHideCmd, sectionsToggleCmd,
		sectionsMoveCmd, sectionsResetCmd, sectionsModeCmd, sectionsHistoryCmd, sectionsRestoreCmd,
		sectionsPruneCmd)

	// init command flags
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts and use defaults")
	initCmd.Flags().StringVar(&initStoreFlag, "store", "", "where saved layouts go: file or sqlite")
	initCmd.Flags().StringVar(&initDatasetFlag, "dataset", "", "campaign dataset YAML")

	// Register all commands
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(campaignsCmd)
	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
