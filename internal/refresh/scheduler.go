// Package refresh implements the cancellable periodic refresh of dashboard
// metrics as an explicit Stopped/Running state machine.
//
// The scheduler never owns a goroutine or timer. Start returns a Bubble Tea
// command that delivers a TickMsg after one interval; the host routes that
// message back through Update, which runs the callback and schedules the next
// tick. Every Start and Stop bumps a generation counter, and ticks carrying a
// stale generation are dropped. Because Update runs on the Bubble Tea event
// loop, no callback fires once Stop has returned.
package refresh

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/insights/internal/errors"
	"github.com/rileyhilliard/insights/internal/logger"
)

// State is the scheduler's lifecycle state.
type State int

const (
	Stopped State = iota
	Running
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	default:
		return "stopped"
	}
}

// Callback regenerates the displayed metrics. It must not call Start or Stop.
type Callback func() error

// TickFunc schedules fn to produce a message after d. tea.Tick in production.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// TickMsg is delivered once per interval while running.
type TickMsg struct {
	Generation uint64
	Time       time.Time
}

// Config is the persisted refresh setting.
type Config struct {
	Enabled         bool
	IntervalSeconds int
}

// Interval converts IntervalSeconds to a duration.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Scheduler drives the refresh callback. The zero value is not usable; use New.
type Scheduler struct {
	state      State
	interval   time.Duration
	callback   Callback
	generation uint64
	ticks      int

	tick    TickFunc
	onError func(error)
	log     logger.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTickFunc replaces tea.Tick, typically with a simulated clock in tests.
func WithTickFunc(fn TickFunc) Option {
	return func(s *Scheduler) { s.tick = fn }
}

// WithErrorHandler receives callback failures. The schedule continues regardless.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Scheduler) { s.onError = fn }
}

// WithLogger sets the logger used for tick and failure reporting.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

// New creates a stopped scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		tick: tea.Tick,
		log:  logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start transitions to Running and returns the command for the first tick,
// which fires after one full interval. Starting while running replaces the
// previous schedule. A non-positive interval or nil callback is rejected and
// leaves the scheduler stopped.
func (s *Scheduler) Start(interval time.Duration, cb Callback) (tea.Cmd, error) {
	if interval <= 0 {
		s.Stop()
		return nil, errors.New(errors.ErrRefresh,
			fmt.Sprintf("Refresh interval must be positive, got %s", interval),
			"Set refreshInterval to 1 or more seconds.")
	}
	if cb == nil {
		s.Stop()
		return nil, errors.New(errors.ErrRefresh,
			"Refresh callback is missing",
			"Pass the function that regenerates metrics.")
	}

	s.generation++
	s.state = Running
	s.interval = interval
	s.callback = cb
	s.log.Debug("refresh started: every %s (generation %d)", interval, s.generation)

	return s.schedule(), nil
}

// Stop transitions to Stopped. Pending ticks become stale and are ignored.
// Calling Stop while stopped is a no-op.
func (s *Scheduler) Stop() {
	if s.state == Stopped {
		return
	}
	s.generation++
	s.state = Stopped
	s.callback = nil
	s.log.Debug("refresh stopped (generation %d)", s.generation)
}

// Toggle stops a running scheduler, or starts a stopped one with the given
// interval and callback.
func (s *Scheduler) Toggle(interval time.Duration, cb Callback) (tea.Cmd, error) {
	if s.state == Running {
		s.Stop()
		return nil, nil
	}
	return s.Start(interval, cb)
}

// Update handles a TickMsg. For a current tick it runs the callback and
// returns the command for the next tick; stale ticks and ticks received
// while stopped return nil. fired reports whether the callback ran.
func (s *Scheduler) Update(msg TickMsg) (fired bool, cmd tea.Cmd) {
	if s.state != Running || msg.Generation != s.generation {
		return false, nil
	}

	s.ticks++
	if err := s.invoke(); err != nil {
		s.log.Warn("refresh callback failed: %v", err)
		if s.onError != nil {
			s.onError(err)
		}
	}

	// The callback is not supposed to touch the schedule, but guard anyway.
	if s.state != Running || msg.Generation != s.generation {
		return true, nil
	}
	return true, s.schedule()
}

// invoke runs the callback, converting a panic into an error.
func (s *Scheduler) invoke() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrRefresh,
				fmt.Sprintf("Refresh callback panicked: %v", r),
				"")
		}
	}()
	return s.callback()
}

func (s *Scheduler) schedule() tea.Cmd {
	gen := s.generation
	return s.tick(s.interval, func(t time.Time) tea.Msg {
		return TickMsg{Generation: gen, Time: t}
	})
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	return s.state
}

// Running reports whether the scheduler is running.
func (s *Scheduler) Running() bool {
	return s.state == Running
}

// Interval returns the active tick period, or zero when stopped.
func (s *Scheduler) Interval() time.Duration {
	if s.state != Running {
		return 0
	}
	return s.interval
}

// Ticks returns how many ticks have fired since the scheduler was created.
func (s *Scheduler) Ticks() int {
	return s.ticks
}
