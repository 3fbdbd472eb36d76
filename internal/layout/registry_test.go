package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_DefaultCatalog(t *testing.T) {
	reg := NewRegistry(DefaultCatalog())

	require.Equal(t, 7, reg.Len())
	snap := reg.Snapshot()
	assert.Equal(t, QuickStats, snap[0].ID)
	assert.Equal(t, PredictiveAnalytics, snap[6].ID)
	assert.True(t, IsDense(snap))
}

func TestNewRegistry_DropsDuplicateIDs(t *testing.T) {
	reg := NewRegistry([]Section{
		{ID: "a", Title: "first", Order: 0},
		{ID: "a", Title: "second", Order: 1},
		{ID: "b", Order: 2},
	})

	require.Equal(t, 2, reg.Len())
	s, ok := reg.Get("a")
	require.True(t, ok)
	assert.Equal(t, "first", s.Title)
	assert.True(t, IsDense(reg.Snapshot()))
}

func TestRegistry_SnapshotTieBreakByInsertionIndex(t *testing.T) {
	reg := NewRegistry([]Section{
		{ID: "x", Order: 5},
		{ID: "y", Order: 5},
		{ID: "z", Order: 1},
	})

	assert.Equal(t, []string{"z", "x", "y"}, ids(reg.Snapshot()))
	assert.True(t, IsDense(reg.Snapshot()))
}

func TestRegistry_Toggle(t *testing.T) {
	reg := NewRegistry(abc())

	toggled := reg.Toggle("b")

	s, _ := toggled.Get("b")
	assert.True(t, s.Enabled)
	before, _ := reg.Get("b")
	assert.False(t, before.Enabled, "receiver must not change")

	again := toggled.Toggle("b")
	s, _ = again.Get("b")
	assert.False(t, s.Enabled)
}

func TestRegistry_ToggleUnknownIsNoOp(t *testing.T) {
	reg := NewRegistry(DefaultCatalog())
	assert.Equal(t, reg.Snapshot(), reg.Toggle("does-not-exist").Snapshot())
}

func TestRegistry_Enabled(t *testing.T) {
	reg := NewRegistry(DefaultCatalog()).Toggle(AIInsights).Toggle(QuickStats)

	enabled := reg.Enabled()
	assert.Len(t, enabled, 5)
	for _, s := range enabled {
		assert.NotEqual(t, AIInsights, s.ID)
		assert.NotEqual(t, QuickStats, s.ID)
	}
}

func TestRegistry_Move(t *testing.T) {
	reg := NewRegistry(abc())

	moved := reg.Move(0, Index(2))

	assert.Equal(t, []string{"b", "c", "a"}, ids(moved.Snapshot()))
	assert.Equal(t, []string{"a", "b", "c"}, ids(reg.Snapshot()), "receiver must not change")
	assert.Equal(t, 2, moved.IndexOf("a"))
}

func TestRegistry_MoveNoOps(t *testing.T) {
	reg := NewRegistry(abc())

	assert.Equal(t, reg.Snapshot(), reg.Move(0, nil).Snapshot())
	assert.Equal(t, reg.Snapshot(), reg.Move(1, Index(1)).Snapshot())
	assert.Equal(t, reg.Snapshot(), reg.Move(9, Index(0)).Snapshot())
	assert.Equal(t, reg.Snapshot(), reg.Move(0, Index(9)).Snapshot())
}

func TestRegistry_MoveKeepsToggleState(t *testing.T) {
	reg := NewRegistry(abc()).Toggle("a")

	moved := reg.Move(0, Index(1))

	a, _ := moved.Get("a")
	assert.True(t, a.Enabled)
	assert.Equal(t, 1, a.Order)
}

func TestRegistry_Apply(t *testing.T) {
	reg := NewRegistry(abc())

	reg = reg.Apply(MoveAction{Source: 2, Destination: Index(0)})
	reg = reg.Apply(ToggleAction{ID: "c"})
	reg = reg.Apply(nil)

	assert.Equal(t, []string{"c", "a", "b"}, ids(reg.Snapshot()))
	c, _ := reg.Get("c")
	assert.True(t, c.Enabled)
}

func TestRegistry_Sections(t *testing.T) {
	reg := NewRegistry(abc()).Move(0, Index(2))

	m := reg.Sections()
	require.Len(t, m, 3)
	assert.Equal(t, 2, m["a"].Order)
	assert.Equal(t, 0, m["b"].Order)
}

func TestRestore(t *testing.T) {
	saved := map[string]Section{
		AIInsights: {ID: AIInsights, Title: "Renamed", Enabled: false, Order: 0},
		QuickStats: {ID: QuickStats, Enabled: true, Order: 1},
		"retired":  {ID: "retired", Enabled: true, Order: 2},
	}

	reg := Restore(DefaultCatalog(), saved)

	require.Equal(t, 7, reg.Len())
	assert.False(t, reg.Has("retired"))
	snap := reg.Snapshot()
	assert.True(t, IsDense(snap))
	assert.Equal(t, AIInsights, snap[0].ID)
	assert.Equal(t, QuickStats, snap[1].ID)
	assert.Equal(t, "AI Insights", snap[0].Title, "titles come from the catalog")
	assert.False(t, snap[0].Enabled)
	// Unsaved sections follow in catalog order.
	assert.Equal(t, PerformanceMetrics, snap[2].ID)
	assert.Equal(t, PredictiveAnalytics, snap[6].ID)
}

func TestRestore_EmptySavedReturnsCatalog(t *testing.T) {
	assert.Equal(t, NewRegistry(DefaultCatalog()).Snapshot(), Restore(DefaultCatalog(), nil).Snapshot())
}

func TestRegistry_ZeroValue(t *testing.T) {
	var reg Registry
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.Snapshot())
	assert.Equal(t, 0, reg.Toggle("a").Len())
	assert.Equal(t, -1, reg.IndexOf("a"))
}
