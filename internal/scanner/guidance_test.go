package scanner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mmcdole/whatsleft/internal/domain"
	"github.com/mmcdole/whatsleft/internal/schedule"
)

type memFlags struct {
	set  map[domain.PreferenceKey]bool
	sets int
}

func newMemFlags() *memFlags {
	return &memFlags{set: make(map[domain.PreferenceKey]bool)}
}

func (f *memFlags) Flag(key domain.PreferenceKey) (bool, error) {
	return f.set[key], nil
}

func (f *memFlags) SetFlag(key domain.PreferenceKey) error {
	f.set[key] = true
	f.sets++
	return nil
}

func TestGuidanceAutoHides(t *testing.T) {
	q := schedule.NewQueue(time.Unix(0, 0))
	flags := newMemFlags()
	g := NewGuidance(flags, q, 0, nil)

	g.Open()
	require.True(t, g.Visible())

	q.AdvanceBy(4 * time.Second)
	require.True(t, g.Visible())
	q.AdvanceBy(time.Second)
	require.False(t, g.Visible())
	require.True(t, flags.set[domain.PrefScannerGuidanceShown])
	require.Equal(t, 1, flags.sets)
}

func TestGuidanceShownOnlyOnce(t *testing.T) {
	q := schedule.NewQueue(time.Unix(0, 0))
	flags := newMemFlags()
	g := NewGuidance(flags, q, time.Second, nil)

	g.Open()
	g.Dismiss()
	g.Dismiss()
	require.Equal(t, 1, flags.sets)
	require.Equal(t, 0, q.Pending())

	g.Close()
	g.Open()
	require.False(t, g.Visible())
	require.True(t, g.IsOpen())
}

func TestScanRecordsFlag(t *testing.T) {
	q := schedule.NewQueue(time.Unix(0, 0))
	flags := newMemFlags()
	g := NewGuidance(flags, q, time.Second, nil)
	g.Open()

	_, ok := g.Scanned("   ")
	require.False(t, ok)
	require.True(t, g.Visible())

	code, ok := g.Scanned(" 4710088412345 ")
	require.True(t, ok)
	require.Equal(t, "4710088412345", code)
	require.False(t, g.IsOpen())
	require.False(t, g.Visible())
	require.True(t, flags.set[domain.PrefScannerGuidanceShown])
	require.Equal(t, 0, q.Pending())
}

func TestCloseBeforeTimeoutLeavesFlagUnset(t *testing.T) {
	q := schedule.NewQueue(time.Unix(0, 0))
	flags := newMemFlags()
	g := NewGuidance(flags, q, time.Second, nil)

	g.Open()
	g.Close()
	q.AdvanceBy(time.Minute)
	require.Equal(t, 0, flags.sets)
}
