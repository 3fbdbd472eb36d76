package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/insights/internal/shortcut"
)

// Action is a dashboard command triggered by a shortcut. Shortcut handlers
// emit actions as messages and Update applies them.
type Action int

const (
	ActionToggleRealtime Action = iota
	ActionSave
	ActionToggleHelp
	ActionCloseHelp
	ActionRefreshNow
	ActionQuit
	ActionSelectPrev
	ActionSelectNext
	ActionMoveUp
	ActionMoveDown
	ActionToggleSection
	ActionCycleSort
	ActionFlipSort
	ActionCyclePeriod
	ActionCycleRevenue
	ActionCycleSource
	ActionToggleHighValue
	ActionToggleRepeat
	ActionResetFilters
	ActionToggleLayoutMode
	ActionFocusSearch
)

// String returns a label for logs and tests.
func (a Action) String() string {
	switch a {
	case ActionToggleRealtime:
		return "toggle-realtime"
	case ActionSave:
		return "save"
	case ActionToggleHelp:
		return "toggle-help"
	case ActionCloseHelp:
		return "close-help"
	case ActionRefreshNow:
		return "refresh-now"
	case ActionQuit:
		return "quit"
	case ActionSelectPrev:
		return "select-prev"
	case ActionSelectNext:
		return "select-next"
	case ActionMoveUp:
		return "move-up"
	case ActionMoveDown:
		return "move-down"
	case ActionToggleSection:
		return "toggle-section"
	case ActionCycleSort:
		return "cycle-sort"
	case ActionFlipSort:
		return "flip-sort"
	case ActionCyclePeriod:
		return "cycle-period"
	case ActionCycleRevenue:
		return "cycle-revenue"
	case ActionCycleSource:
		return "cycle-source"
	case ActionToggleHighValue:
		return "toggle-high-value"
	case ActionToggleRepeat:
		return "toggle-repeat"
	case ActionResetFilters:
		return "reset-filters"
	case ActionToggleLayoutMode:
		return "toggle-layout"
	case ActionFocusSearch:
		return "focus-search"
	default:
		return "unknown"
	}
}

// Key combos for the global shortcuts.
const (
	KeyToggleRealtime = "ctrl+alt+r"
	KeySave           = "ctrl+alt+s"
	KeyHelp           = "?"
	KeyHelpAlt        = "f1"
	KeyRefresh        = "f5"
	KeyRefreshAlt     = "r"
	KeyQuit           = "q"
	KeyQuitAlt        = "ctrl+c"
	KeyCloseHelp      = "esc"
	KeySearch         = "ctrl+alt+f"
	KeySearchAlt      = "/"
)

// emit returns a handler that sends a as a message.
func emit(a Action) shortcut.Handler {
	return func(shortcut.KeyEvent) tea.Cmd {
		return func() tea.Msg { return a }
	}
}

// DefaultBindings is the dashboard shortcut table, in priority order.
func DefaultBindings() []shortcut.Binding {
	return []shortcut.Binding{
		shortcut.Bind("toggle real-time", emit(ActionToggleRealtime), KeyToggleRealtime).InShortHelp().InGroup("refresh"),
		shortcut.Bind("refresh now", emit(ActionRefreshNow), KeyRefresh, KeyRefreshAlt).InGroup("refresh"),
		shortcut.Bind("save layout", emit(ActionSave), KeySave).InShortHelp().InGroup("refresh"),

		shortcut.Bind("previous section", emit(ActionSelectPrev), "up", "k").InGroup("layout"),
		shortcut.Bind("next section", emit(ActionSelectNext), "down", "j").InGroup("layout"),
		shortcut.Bind("move section up", emit(ActionMoveUp), "shift+up", "shift+k").InGroup("layout"),
		shortcut.Bind("move section down", emit(ActionMoveDown), "shift+down", "shift+j").InGroup("layout"),
		shortcut.Bind("show/hide section", emit(ActionToggleSection), "space", "x").InShortHelp().InGroup("layout"),
		shortcut.Bind("grid/list layout", emit(ActionToggleLayoutMode), "l").InGroup("layout"),

		shortcut.Bind("sort column", emit(ActionCycleSort), "s").InGroup("table"),
		shortcut.Bind("flip sort", emit(ActionFlipSort), "shift+s").InGroup("table"),
		shortcut.Bind("time period", emit(ActionCyclePeriod), "p").InShortHelp().InGroup("table"),
		shortcut.Bind("revenue range", emit(ActionCycleRevenue), "m").InGroup("table"),
		shortcut.Bind("traffic source", emit(ActionCycleSource), "t").InGroup("table"),
		shortcut.Bind("high value only", emit(ActionToggleHighValue), "v").InGroup("table"),
		shortcut.Bind("repeat customers", emit(ActionToggleRepeat), "c").InGroup("table"),
		shortcut.Bind("search campaigns", emit(ActionFocusSearch), KeySearch, KeySearchAlt).InGroup("table"),
		shortcut.Bind("reset filters", emit(ActionResetFilters), "0").InGroup("table"),

		shortcut.Bind("help", emit(ActionToggleHelp), KeyHelp, KeyHelpAlt).InShortHelp().InGroup("general"),
		shortcut.Bind("close help", emit(ActionCloseHelp), KeyCloseHelp).InGroup("general"),
		shortcut.Bind("quit", emit(ActionQuit), KeyQuit, KeyQuitAlt).InShortHelp().InGroup("general"),
	}
}
