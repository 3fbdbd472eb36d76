package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/insights/internal/logger"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "insights",
	Short: "Terminal analytics dashboard with a configurable layout",
	Long: `insights is a terminal analytics dashboard for campaign performance.

Sections can be shown, hidden, and reordered, the campaign table can be
filtered and sorted, and metrics can refresh in real time. The layout is
saved to .insights.yaml or to a local SQLite history.

Examples:
  insights dashboard
  insights campaigns --period 30d --sort revenue --desc
  insights sections move campaign-performance 1`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor || os.Getenv("NO_COLOR") != "" {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		if verbose {
			os.Setenv(logger.DebugEnv, "1")
		}
		logger.SetDefault(logger.NewEnvLogger("[insights]"))
	},
}

func init() {
	rootCmd.SuggestionsMinimumDistance = 2
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .insights.yaml, searched upward)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&machineMode, "json", false, "machine-readable JSON output")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(handleError(os.Stdout, os.Stderr, err))
	}
}

// handleError prints err in the active output mode and returns the exit code.
func handleError(stdout, stderr io.Writer, err error) int {
	if machineMode {
		_ = WriteJSONFromError(stdout, err)
		return 1
	}

	if isUnknownCommandError(err) {
		// Cobra appends its own suggestions after the first line.
		msg, _, _ := strings.Cut(err.Error(), "\n")
		fmt.Fprintf(stderr, "Error: %s\n", msg)
		if name := extractUnknownCommand(err); name != "" {
			if suggestions := rootCmd.SuggestionsFor(name); len(suggestions) > 0 {
				fmt.Fprintf(stderr, "\nDid you mean this?\n\t%s\n", strings.Join(suggestions, "\n\t"))
			}
		}
		fmt.Fprintln(stderr, "\nRun 'insights --help' for usage.")
		return 1
	}

	fmt.Fprintln(stderr, err)
	return 1
}

// isUnknownCommandError reports whether err came from cobra rejecting the
// command line rather than from a command.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "insights"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// Config returns the --config flag value.
func Config() string {
	return cfgFile
}

// Verbose reports whether --verbose was given.
func Verbose() bool {
	return verbose
}

// Quiet reports whether --quiet was given.
func Quiet() bool {
	return quiet
}
