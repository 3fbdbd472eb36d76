package refresh

import (
	"fmt"
	"sort"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/insights/internal/errors"
	"github.com/rileyhilliard/insights/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 7, 20, 9, 0, 0, 0, time.UTC)

type pendingTick struct {
	at time.Duration
	fn func(time.Time) tea.Msg
}

// simClock stands in for tea.Tick. Ticks are delivered to the scheduler
// when simulated time passes their due time.
type simClock struct {
	now     time.Duration
	pending []pendingTick
}

func (c *simClock) Tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	c.pending = append(c.pending, pendingTick{at: c.now + d, fn: fn})
	return func() tea.Msg { return nil }
}

// Advance moves simulated time to t, delivering due ticks in time order.
func (c *simClock) Advance(s *Scheduler, t time.Duration) {
	for {
		sort.SliceStable(c.pending, func(i, j int) bool { return c.pending[i].at < c.pending[j].at })
		if len(c.pending) == 0 || c.pending[0].at > t {
			break
		}
		next := c.pending[0]
		c.pending = c.pending[1:]
		c.now = next.at
		msg, ok := next.fn(epoch.Add(next.at)).(TickMsg)
		if ok {
			s.Update(msg)
		}
	}
	c.now = t
}

func newSimScheduler(opts ...Option) (*Scheduler, *simClock) {
	clock := &simClock{}
	opts = append([]Option{WithTickFunc(clock.Tick), WithLogger(logger.Noop())}, opts...)
	return New(opts...), clock
}

func TestScheduler_StartsStopped(t *testing.T) {
	s, _ := newSimScheduler()
	assert.Equal(t, Stopped, s.State())
	assert.False(t, s.Running())
	assert.Zero(t, s.Interval())
}

func TestScheduler_FiveSecondScenario(t *testing.T) {
	s, clock := newSimScheduler()
	calls := 0

	cmd, err := s.Start(5*time.Second, func() error { calls++; return nil })
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, 0, calls, "first invocation waits a full interval")

	clock.Advance(s, 5*time.Second)
	assert.Equal(t, 1, calls)

	clock.Advance(s, 6*time.Second)
	s.Stop()
	assert.Equal(t, Stopped, s.State())

	clock.Advance(s, 10*time.Second)
	assert.Equal(t, 1, calls, "no invocation after stop")
}

func TestScheduler_FiresOncePerInterval(t *testing.T) {
	s, clock := newSimScheduler()
	calls := 0
	_, err := s.Start(2*time.Second, func() error { calls++; return nil })
	require.NoError(t, err)

	clock.Advance(s, 11*time.Second)

	assert.Equal(t, 5, calls)
	assert.Equal(t, 5, s.Ticks())
}

func TestScheduler_RestartReplacesSchedule(t *testing.T) {
	s, clock := newSimScheduler()
	first, second := 0, 0

	_, err := s.Start(5*time.Second, func() error { first++; return nil })
	require.NoError(t, err)
	clock.Advance(s, 3*time.Second)

	_, err = s.Start(2*time.Second, func() error { second++; return nil })
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, s.Interval())

	clock.Advance(s, 9*time.Second)

	assert.Equal(t, 0, first, "the replaced schedule never fires")
	assert.Equal(t, 3, second, "ticks at 5s, 7s, 9s")
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	s, _ := newSimScheduler()
	s.Stop()
	s.Stop()
	assert.Equal(t, Stopped, s.State())

	_, err := s.Start(time.Second, func() error { return nil })
	require.NoError(t, err)
	s.Stop()
	s.Stop()
	assert.Equal(t, Stopped, s.State())
}

func TestScheduler_StaleTickIgnored(t *testing.T) {
	s, _ := newSimScheduler()
	calls := 0
	_, err := s.Start(time.Second, func() error { calls++; return nil })
	require.NoError(t, err)

	fired, cmd := s.Update(TickMsg{Generation: 999})
	assert.False(t, fired)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, calls)
}

func TestScheduler_CallbackErrorKeepsRunning(t *testing.T) {
	var reported []error
	s, clock := newSimScheduler(WithErrorHandler(func(err error) { reported = append(reported, err) }))
	calls := 0

	_, err := s.Start(time.Second, func() error {
		calls++
		if calls == 1 {
			return fmt.Errorf("metrics backend unavailable")
		}
		return nil
	})
	require.NoError(t, err)

	clock.Advance(s, 3*time.Second)

	assert.Equal(t, 3, calls, "schedule continues after a failure")
	require.Len(t, reported, 1)
	assert.Contains(t, reported[0].Error(), "metrics backend unavailable")
	assert.True(t, s.Running())
}

func TestScheduler_CallbackPanicIsRecovered(t *testing.T) {
	var reported []error
	buf := logger.NewBufferLogger()
	clock := &simClock{}
	s := New(WithTickFunc(clock.Tick), WithLogger(buf), WithErrorHandler(func(err error) { reported = append(reported, err) }))
	calls := 0

	_, err := s.Start(time.Second, func() error {
		calls++
		if calls == 2 {
			panic("boom")
		}
		return nil
	})
	require.NoError(t, err)

	clock.Advance(s, 4*time.Second)

	assert.Equal(t, 4, calls)
	require.Len(t, reported, 1)
	assert.True(t, errors.IsCode(reported[0], errors.ErrRefresh))
	assert.Contains(t, reported[0].Error(), "boom")
	assert.True(t, buf.HasLevel("warn"))
}

func TestScheduler_CallbackThatStopsDoesNotReschedule(t *testing.T) {
	s, clock := newSimScheduler()
	calls := 0
	_, err := s.Start(time.Second, func() error {
		calls++
		s.Stop()
		return nil
	})
	require.NoError(t, err)

	clock.Advance(s, 5*time.Second)

	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.pending)
}

func TestScheduler_InvalidStart(t *testing.T) {
	s, _ := newSimScheduler()

	cmd, err := s.Start(0, func() error { return nil })
	assert.Nil(t, cmd)
	assert.True(t, errors.IsCode(err, errors.ErrRefresh))
	assert.Equal(t, Stopped, s.State())

	cmd, err = s.Start(time.Second, nil)
	assert.Nil(t, cmd)
	assert.True(t, errors.IsCode(err, errors.ErrRefresh))
}

func TestScheduler_InvalidStartStopsRunningSchedule(t *testing.T) {
	s, clock := newSimScheduler()
	calls := 0
	_, err := s.Start(time.Second, func() error { calls++; return nil })
	require.NoError(t, err)

	_, err = s.Start(-time.Second, func() error { return nil })
	require.Error(t, err)

	clock.Advance(s, 3*time.Second)
	assert.Equal(t, 0, calls)
}

func TestScheduler_Toggle(t *testing.T) {
	s, clock := newSimScheduler()
	calls := 0
	cb := func() error { calls++; return nil }

	cmd, err := s.Toggle(time.Second, cb)
	require.NoError(t, err)
	assert.NotNil(t, cmd)
	assert.True(t, s.Running())

	clock.Advance(s, time.Second)
	assert.Equal(t, 1, calls)

	cmd, err = s.Toggle(time.Second, cb)
	require.NoError(t, err)
	assert.Nil(t, cmd)
	assert.False(t, s.Running())

	clock.Advance(s, 5*time.Second)
	assert.Equal(t, 1, calls)
}

func TestScheduler_TickMsgCarriesTime(t *testing.T) {
	s, clock := newSimScheduler()
	_, err := s.Start(5*time.Second, func() error { return nil })
	require.NoError(t, err)

	require.Len(t, clock.pending, 1)
	msg := clock.pending[0].fn(epoch.Add(5 * time.Second)).(TickMsg)
	assert.Equal(t, epoch.Add(5*time.Second), msg.Time)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "stopped", Stopped.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "stopped", State(42).String())
}

func TestConfig_Interval(t *testing.T) {
	assert.Equal(t, 5*time.Second, Config{Enabled: true, IntervalSeconds: 5}.Interval())
	assert.Zero(t, Config{}.Interval())
}
