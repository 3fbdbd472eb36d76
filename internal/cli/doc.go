// Package cli implements the insights command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a command function that does the work against the
// internal packages:
//
//   - Command definitions (cobra.Command instances in commands.go)
//   - Workflow setup (SetupWorkflow: config, validation, layout store)
//   - Implementation details (layout, campaign, dashboard, store)
//
// # Command Structure
//
// The root command is "insights" with subcommands:
//
//	insights dashboard              - Interactive dashboard
//	insights campaigns              - Filtered campaign table
//	insights sections [list]        - Layout in order
//	insights sections show|hide|toggle <id>...
//	insights sections move <id> <position>
//	insights sections reset|mode|history|restore
//	insights init                   - Create .insights.yaml
//	insights version
//
// # Workflow System
//
// SetupWorkflow loads the config (or built-in defaults), validates it, opens
// the configured layout store and overlays the last saved layout. Commands
// that change the layout write it back through WorkflowContext.Save, which
// is the same path the dashboard's save shortcut uses. The context must be
// closed to release the store.
//
// # Flag Handling
//
// Global flags (--config, --verbose, --quiet, --no-color, --json) are
// defined on the root command. Command flags that override a saved value
// only apply when given explicitly; cobra's Changed tells an unset flag
// from one set to its zero value.
//
// # Machine Mode
//
// With --json every command writes a single JSONEnvelope to stdout. Errors
// are mapped from internal error codes to the stable ErrCode values.
package cli
