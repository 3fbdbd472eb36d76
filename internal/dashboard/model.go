package dashboard

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/insights/internal/campaign"
	"github.com/rileyhilliard/insights/internal/config"
	"github.com/rileyhilliard/insights/internal/layout"
	"github.com/rileyhilliard/insights/internal/logger"
	"github.com/rileyhilliard/insights/internal/refresh"
	"github.com/rileyhilliard/insights/internal/shortcut"
	"github.com/rileyhilliard/insights/internal/store"
)

// saveTimeout bounds a single store write.
const saveTimeout = 10 * time.Second

// searchLimit caps the campaign search query length.
const searchLimit = 64

// sortColumns is the order the sort key cycles through.
var sortColumns = []string{
	campaign.FieldCampaign,
	campaign.FieldClicks,
	campaign.FieldImpressions,
	campaign.FieldCTR,
	campaign.FieldConversions,
	campaign.FieldRevenue,
	campaign.FieldStatus,
	campaign.FieldDate,
}

// Options configures a dashboard Model.
type Options struct {
	// Config supplies the initial layout, filters and refresh settings.
	// Nil uses config.DefaultConfig().
	Config *config.Config
	// Dataset overrides loading Config.Dataset.
	Dataset *campaign.Dataset
	// Store receives saves. Nil disables saving.
	Store store.Store
	// Rand drives metric regeneration. Nil uses a random seed.
	Rand *rand.Rand
	// Now defaults to time.Now.
	Now func() time.Time
	// TickFunc defaults to tea.Tick.
	TickFunc refresh.TickFunc
	Logger   logger.Logger
}

// savedMsg reports the outcome of a store write.
type savedMsg struct {
	err error
	at  time.Time
}

// Model is the Bubble Tea model for the analytics dashboard.
type Model struct {
	base        *config.Config
	registry    layout.Registry
	layoutMode  string
	criteria    campaign.Criteria
	sortSpec    *campaign.SortSpec
	interval    time.Duration
	autoRefresh bool

	feed       *feed
	scheduler  *refresh.Scheduler
	dispatcher *shortcut.Dispatcher
	keys       *shortcut.Table
	help       help.Model
	store      store.Store

	// search is the campaign name filter input. While searching, keys go
	// to the input instead of the shortcut table.
	search      textinput.Model
	searching   bool
	searchPrev  string
	pendingSave int

	selected  int
	showHelp  bool
	status    string
	statusErr bool
	width     int
	height    int
	quitting  bool
	// quitAfterSave defers quitting until in-flight saves report back.
	quitAfterSave bool

	now func() time.Time
	log logger.Logger
}

// New builds a dashboard model from opts.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	log := logger.OrDefault(opts.Logger)

	ds := opts.Dataset
	datasetPath := ""
	if ds == nil {
		var err error
		ds, err = campaign.LoadDataset(cfg.Dataset)
		if err != nil {
			return Model{}, err
		}
		datasetPath = cfg.Dataset
	}

	keys, err := shortcut.NewTable(DefaultBindings()...)
	if err != nil {
		return Model{}, err
	}
	dispatcher := shortcut.NewDispatcher(log)
	dispatcher.Attach(keys)

	f := &feed{
		board:       NewBoard(DefaultMetrics(), opts.Rand),
		history:     NewHistory(DefaultHistorySize),
		datasetPath: datasetPath,
		dataset:     ds,
		now:         now,
	}
	f.seed()
	f.updated = now()

	schedOpts := []refresh.Option{
		refresh.WithLogger(log),
		refresh.WithErrorHandler(f.fail),
	}
	if opts.TickFunc != nil {
		schedOpts = append(schedOpts, refresh.WithTickFunc(opts.TickFunc))
	}

	interval := cfg.Refresh().Interval()
	if interval <= 0 {
		interval = config.DefaultRefreshInterval * time.Second
	}

	search := textinput.New()
	search.Prompt = "search: "
	search.Placeholder = "campaign name"
	search.CharLimit = searchLimit

	var sortSpec *campaign.SortSpec
	if cfg.Sort != nil {
		s := *cfg.Sort
		sortSpec = &s
	}

	return Model{
		base:        cfg.Clone(),
		registry:    cfg.Registry(),
		layoutMode:  cfg.LayoutMode,
		criteria:    cfg.Filters,
		sortSpec:    sortSpec,
		interval:    interval,
		autoRefresh: cfg.AutoRefresh,
		feed:        f,
		scheduler:   refresh.New(schedOpts...),
		dispatcher:  dispatcher,
		keys:        keys,
		help:        help.New(),
		store:       opts.Store,
		search:      search,
		now:         now,
		log:         log,
	}, nil
}

// Init starts real-time refresh when the config enables it.
func (m Model) Init() tea.Cmd {
	if !m.autoRefresh {
		return nil
	}
	cmd, err := m.scheduler.Start(m.interval, m.feed.refresh)
	if err != nil {
		m.log.Warn("auto-refresh not started: %v", err)
		return nil
	}
	return cmd
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching && msg.Type != tea.KeyCtrlC {
			cmd := m.updateSearch(msg)
			return m, cmd
		}
		res, cmd := m.dispatcher.DispatchKey(msg)
		if res.Handled {
			return m, cmd
		}

	case Action:
		cmd := m.apply(msg)
		return m, cmd

	case refresh.TickMsg:
		_, cmd := m.scheduler.Update(msg)
		return m, cmd

	case savedMsg:
		if m.pendingSave > 0 {
			m.pendingSave--
		}
		if msg.err != nil {
			m.setError("save failed: %v", msg.err)
		} else {
			m.setStatus("layout saved at %s", msg.at.Format("15:04:05"))
		}
		if m.quitAfterSave && m.pendingSave == 0 {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// apply runs an action against the model.
func (m *Model) apply(a Action) tea.Cmd {
	switch a {
	case ActionToggleRealtime:
		return m.toggleRealtime()

	case ActionSave:
		return m.save()

	case ActionToggleHelp:
		m.showHelp = !m.showHelp

	case ActionCloseHelp:
		m.showHelp = false

	case ActionRefreshNow:
		if err := m.feed.refresh(); err != nil {
			m.feed.fail(err)
			m.setError("refresh failed: %v", err)
		} else {
			m.setStatus("refreshed")
		}

	case ActionQuit:
		m.scheduler.Stop()
		m.dispatcher.Detach()
		m.searching = false
		if m.pendingSave > 0 {
			m.quitAfterSave = true
			m.setStatus("waiting for save to finish...")
			return nil
		}
		m.quitting = true
		return tea.Quit

	case ActionFocusSearch:
		m.showHelp = false
		m.searching = true
		m.searchPrev = m.criteria.Search
		m.search.SetValue(m.criteria.Search)
		m.search.CursorEnd()
		return m.search.Focus()

	case ActionSelectPrev:
		if m.selected > 0 {
			m.selected--
		}

	case ActionSelectNext:
		if m.selected < m.registry.Len()-1 {
			m.selected++
		}

	case ActionMoveUp:
		if m.selected > 0 {
			m.registry = m.registry.Move(m.selected, layout.Index(m.selected-1))
			m.selected--
		}

	case ActionMoveDown:
		if m.selected < m.registry.Len()-1 {
			m.registry = m.registry.Move(m.selected, layout.Index(m.selected+1))
			m.selected++
		}

	case ActionToggleSection:
		if s, ok := m.SelectedSection(); ok {
			m.registry = m.registry.Toggle(s.ID)
		}

	case ActionToggleLayoutMode:
		if m.layoutMode == config.LayoutList {
			m.layoutMode = config.LayoutGrid
		} else {
			m.layoutMode = config.LayoutList
		}

	case ActionCycleSort:
		m.sortSpec = nextSortColumn(m.sortSpec)

	case ActionFlipSort:
		if m.sortSpec != nil {
			m.sortSpec = campaign.NextSort(m.sortSpec, m.sortSpec.Key)
		}

	case ActionCyclePeriod:
		p := m.criteria.TimePeriod.Next()
		m.criteria = m.criteria.With(campaign.Patch{TimePeriod: &p})

	case ActionCycleRevenue:
		r := campaign.Cycle(campaign.RevenueRanges, m.criteria.RevenueRange)
		m.criteria = m.criteria.With(campaign.Patch{RevenueRange: &r})

	case ActionCycleSource:
		src := campaign.Cycle(m.sourceChoices(), m.criteria.TrafficSource)
		m.criteria = m.criteria.With(campaign.Patch{TrafficSource: &src})

	case ActionToggleHighValue:
		v := !m.criteria.HighValue
		m.criteria = m.criteria.With(campaign.Patch{HighValue: &v})

	case ActionToggleRepeat:
		v := !m.criteria.RepeatCustomers
		m.criteria = m.criteria.With(campaign.Patch{RepeatCustomers: &v})

	case ActionResetFilters:
		m.criteria = campaign.DefaultCriteria()
		m.sortSpec = nil
	}
	return nil
}

// updateSearch feeds a key to the search input and filters the table live.
// Enter keeps the query; esc restores the one active before searching.
func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.endSearch()
		return nil
	case tea.KeyEsc:
		m.setSearch(m.searchPrev)
		m.endSearch()
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.setSearch(m.search.Value())
	return cmd
}

func (m *Model) setSearch(q string) {
	m.criteria = m.criteria.With(campaign.Patch{Search: &q})
}

func (m *Model) endSearch() {
	m.searching = false
	m.search.Blur()
}

func (m *Model) toggleRealtime() tea.Cmd {
	cmd, err := m.scheduler.Toggle(m.interval, m.feed.refresh)
	if err != nil {
		m.setError("real-time refresh: %v", err)
		return nil
	}
	if m.scheduler.Running() {
		m.setStatus("real-time on, every %s", m.interval)
	} else {
		m.setStatus("real-time off")
	}
	return cmd
}

func (m *Model) save() tea.Cmd {
	if m.store == nil {
		m.setError("saving is disabled")
		return nil
	}
	m.setStatus("saving...")
	m.pendingSave++
	return saveCmd(m.store, m.Config(), m.now)
}

func saveCmd(s store.Store, cfg *config.Config, now func() time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		return savedMsg{err: s.Save(ctx, cfg), at: now()}
	}
}

// nextSortColumn advances through sortColumns ascending, then back to no sort.
func nextSortColumn(current *campaign.SortSpec) *campaign.SortSpec {
	if current == nil {
		return &campaign.SortSpec{Key: sortColumns[0], Direction: campaign.Asc}
	}
	i := slices.Index(sortColumns, current.Key)
	if i < 0 || i == len(sortColumns)-1 {
		return nil
	}
	return campaign.NextSort(current, sortColumns[i+1])
}

// sourceChoices is the preset source list plus any sources only the
// dataset knows about.
func (m Model) sourceChoices() []string {
	choices := slices.Clone(campaign.TrafficSources)
	for _, s := range campaign.Sources(m.feed.dataset.Campaigns) {
		if !slices.Contains(choices, s) {
			choices = append(choices, s)
		}
	}
	return choices
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *Model) setError(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = true
}

// Config returns the current dashboard state as a configuration to save.
func (m Model) Config() *config.Config {
	cfg := m.base.Clone()
	cfg.ApplyRegistry(m.registry)
	cfg.LayoutMode = m.layoutMode
	cfg.AutoRefresh = m.scheduler.Running()
	cfg.RefreshInterval = int(m.interval / time.Second)
	cfg.Filters = m.criteria
	cfg.Sort = nil
	if m.sortSpec != nil {
		s := *m.sortSpec
		cfg.Sort = &s
	}
	return cfg
}

// Registry returns the current section layout.
func (m Model) Registry() layout.Registry {
	return m.registry
}

// Criteria returns the active filters.
func (m Model) Criteria() campaign.Criteria {
	return m.criteria
}

// Sort returns the active sort, or nil.
func (m Model) Sort() *campaign.SortSpec {
	return m.sortSpec
}

// Rows returns the campaign rows currently displayed.
func (m Model) Rows() []campaign.Row {
	ds := m.feed.dataset
	return campaign.View(ds.Campaigns, m.criteria, m.sortSpec, ds.Reference(m.now()))
}

// Metrics returns the live metric cards.
func (m Model) Metrics() []Metric {
	return m.feed.board.Metrics()
}

// Selected returns the index of the selected section in layout order.
func (m Model) Selected() int {
	return m.selected
}

// SelectedSection returns the selected section.
func (m Model) SelectedSection() (layout.Section, bool) {
	snap := m.registry.Snapshot()
	if m.selected < 0 || m.selected >= len(snap) {
		return layout.Section{}, false
	}
	return snap[m.selected], true
}

// Realtime reports whether periodic refresh is running.
func (m Model) Realtime() bool {
	return m.scheduler.Running()
}

// Searching reports whether the campaign search input has focus.
func (m Model) Searching() bool {
	return m.searching
}

// HelpVisible reports whether the help overlay is open.
func (m Model) HelpVisible() bool {
	return m.showHelp
}

// Status returns the status line text and whether it reports an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

// Quitting reports whether the dashboard is shutting down.
func (m Model) Quitting() bool {
	return m.quitting
}

// Keys returns the shortcut table, which doubles as the help key map.
func (m Model) Keys() *shortcut.Table {
	return m.keys
}
