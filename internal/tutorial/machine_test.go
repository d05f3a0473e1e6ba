package tutorial

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mmcdole/whatsleft/internal/domain"
	"github.com/mmcdole/whatsleft/internal/schedule"
)

type countingPrefs struct {
	sets []domain.PreferenceKey
	err  error
}

func (p *countingPrefs) SetFlag(key domain.PreferenceKey) error {
	p.sets = append(p.sets, key)
	return p.err
}

type harness struct {
	m        *Machine
	queue    *schedule.Queue
	controls *Registry
	prefs    *countingPrefs
	closes   int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		queue:    schedule.NewQueue(time.Unix(0, 0)),
		controls: NewRegistry(),
		prefs:    &countingPrefs{},
	}
	for _, c := range []struct {
		id    ControlID
		label string
	}{
		{ControlAddButton, "+"},
		{ControlItemCards, "Items"},
		{ControlFilterButton, "Filter"},
		{ControlSortButton, "Sort"},
		{ControlNavBar, ""},
		{NavTab("/dashboard"), "Home"},
		{NavTab("/stats"), "Stats"},
		{NavTab("/shoplist"), "Shopping"},
	} {
		h.controls.Register(c.id, c.label)
	}
	h.m = New(Deps{
		Prefs:     h.prefs,
		Scheduler: h.queue,
		Controls:  h.controls,
		OnClose:   func() { h.closes++ },
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return h
}

func (h *harness) wait(d time.Duration) { h.queue.AdvanceBy(d) }

// openForm mirrors the item form mounting its controls
func (h *harness) openForm() {
	h.controls.Register(ControlItemNameField, "Item name")
	h.controls.Register(ControlSaveButton, "Save Item")
}

func (h *harness) closeForm() {
	h.controls.Unregister(ControlItemNameField)
	h.controls.Unregister(ControlSaveButton)
}

// toDashboard drives a fresh walkthrough to dashboard substep 0
func (h *harness) toDashboard(t *testing.T) {
	t.Helper()
	h.m.Open()
	require.True(t, h.m.ControlActivated(ControlAddButton, "+"))
	h.openForm()
	h.wait(800 * time.Millisecond)
	require.True(t, h.m.ControlActivated(ControlSaveButton, "Save Item"))
	h.closeForm()
	h.wait(500 * time.Millisecond)
	require.Equal(t, StepDashboard, h.m.State().Step)
}

func TestOpenHighlightsAddButton(t *testing.T) {
	h := newHarness(t)
	h.m.Open()

	require.True(t, h.m.Active())
	require.Equal(t, StepAddButton, h.m.State().Step)
	require.True(t, h.controls.Highlighted(ControlAddButton))
	require.True(t, h.m.observing(ControlAddButton))
	require.Equal(t, 1, h.m.StepNumber())
	require.Equal(t, 0, h.m.Progress())
	require.False(t, h.m.HidesAddButton())
}

func TestFullWalkthrough(t *testing.T) {
	h := newHarness(t)
	h.m.Open()

	require.False(t, h.m.ControlActivated(ControlFilterButton, "Filter"))
	require.True(t, h.m.ControlActivated(ControlAddButton, "+"))
	require.Equal(t, StepItemForm, h.m.State().Step)
	require.True(t, h.m.State().FormOpened)
	require.False(t, h.controls.Highlighted(ControlAddButton))
	require.Equal(t, 2, h.m.StepNumber())
	require.Equal(t, 20, h.m.Progress())

	h.openForm()
	h.wait(500 * time.Millisecond)
	require.True(t, h.controls.Highlighted(ControlItemNameField))
	require.False(t, h.controls.Highlighted(ControlSaveButton))

	// save observers are not bound yet
	require.False(t, h.m.ControlActivated(ControlSaveButton, "Save Item"))

	h.wait(300 * time.Millisecond)
	require.True(t, h.m.observing(ControlSaveButton))
	h.wait(200 * time.Millisecond)
	require.True(t, h.controls.Highlighted(ControlSaveButton))

	require.True(t, h.m.ControlActivated(ControlSaveButton, "Save Item"))
	require.Equal(t, StepItemForm, h.m.State().Step)
	h.closeForm()
	h.wait(500 * time.Millisecond)

	require.Equal(t, StepDashboard, h.m.State().Step)
	require.Equal(t, 0, h.m.State().DashboardSubstep)
	require.Equal(t, 3, h.m.StepNumber())
	require.Equal(t, 40, h.m.Progress())
	require.True(t, h.m.HidesAddButton())
	require.True(t, h.controls.Highlighted(ControlItemCards))
	require.False(t, h.m.NextVisible())

	h.wait(time.Second)
	require.True(t, h.controls.Highlighted(ControlFilterButton))
	require.True(t, h.m.NextVisible())

	require.True(t, h.m.Next())
	require.Equal(t, 1, h.m.State().DashboardSubstep)
	require.Equal(t, 4, h.m.StepNumber())
	require.Equal(t, 60, h.m.Progress())
	require.False(t, h.controls.Highlighted(ControlItemCards))
	require.True(t, h.controls.Highlighted(ControlNavBar))
	_, ok := h.m.Closing()
	require.True(t, ok)

	h.wait(300 * time.Millisecond)
	require.True(t, h.controls.Highlighted(ControlSortButton))
	require.True(t, h.controls.Highlighted(NavTab("/dashboard")))
	require.False(t, h.controls.Highlighted(NavTab("/stats")))
	h.wait(200 * time.Millisecond)
	require.True(t, h.controls.Highlighted(NavTab("/shoplist")))

	h.m.ScreenTapped()
	require.False(t, h.m.Active())
	require.Equal(t, StepCompleted, h.m.State().Step)
	require.Equal(t, []domain.PreferenceKey{domain.PrefTutorialCompleted}, h.prefs.sets)
	require.Equal(t, 1, h.closes)
	require.Equal(t, 0, h.controls.HighlightCount())
	require.Equal(t, 0, h.m.PendingTimers())
}

func TestSavePredicate(t *testing.T) {
	tests := []struct {
		id    ControlID
		label string
		want  bool
	}{
		{ControlSaveButton, "", true},
		{"save-item-button", "", true},
		{"save-your-item-button", "", true},
		{"confirm", "SAVE changes", true},
		{"confirm", "Done", false},
		{ControlAddButton, "+", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, IsSaveControl(tt.id, tt.label), "%s %q", tt.id, tt.label)
	}
}

func TestSaveByLabelAdvances(t *testing.T) {
	h := newHarness(t)
	h.m.Open()
	h.m.ControlActivated(ControlAddButton, "+")
	h.wait(800 * time.Millisecond)

	require.False(t, h.m.ControlActivated("cancel-button", "Cancel"))
	require.True(t, h.m.ControlActivated("form-submit", "Save"))
	// a second press while the form closes does not arm another transition
	require.False(t, h.m.ControlActivated("form-submit", "Save"))
	h.wait(500 * time.Millisecond)
	require.Equal(t, StepDashboard, h.m.State().Step)
}

func TestCompletionIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.toDashboard(t)
	h.wait(time.Second)
	require.True(t, h.m.Next())

	// skip, tap and history pop all race for the same completion
	h.m.Skip()
	h.m.ScreenTapped()
	h.m.HistoryPopped()
	h.m.Skip()
	require.False(t, h.m.Next())

	require.Len(t, h.prefs.sets, 1)
	require.Equal(t, 1, h.closes)
	require.True(t, h.m.Completed())

	h.m.Open()
	require.False(t, h.m.Active())
}

func TestSkipFromFirstStep(t *testing.T) {
	h := newHarness(t)
	h.m.Open()
	h.m.Skip()

	require.False(t, h.m.Active())
	require.Len(t, h.prefs.sets, 1)
	require.Equal(t, 1, h.closes)
	require.Equal(t, 0, h.controls.HighlightCount())
	require.Equal(t, 100, h.m.Progress())
	require.Equal(t, 0, h.m.StepNumber())
}

func TestPersistFailureStillCloses(t *testing.T) {
	h := newHarness(t)
	h.prefs.err = errors.New("disk full")
	h.m.Open()
	h.m.Skip()

	require.False(t, h.m.Active())
	require.Equal(t, 1, h.closes)
}

func TestHistoryPop(t *testing.T) {
	t.Run("ignored on first step", func(t *testing.T) {
		h := newHarness(t)
		h.m.Open()
		h.m.HistoryPopped()
		require.True(t, h.m.Active())
		require.Empty(t, h.prefs.sets)
	})

	t.Run("completes past first step", func(t *testing.T) {
		h := newHarness(t)
		h.m.Open()
		h.m.ControlActivated(ControlAddButton, "+")
		h.m.HistoryPopped()
		require.False(t, h.m.Active())
		require.Len(t, h.prefs.sets, 1)
	})
}

func TestCloseCancelsTimers(t *testing.T) {
	h := newHarness(t)
	h.m.Open()
	h.m.ControlActivated(ControlAddButton, "+")
	h.openForm()
	require.Positive(t, h.m.PendingTimers())

	h.m.Close()
	require.Equal(t, 0, h.m.PendingTimers())
	require.Equal(t, 0, h.queue.Pending())
	require.Equal(t, 0, h.controls.HighlightCount())

	h.wait(10 * time.Second)
	require.Equal(t, 0, h.controls.HighlightCount())
	require.Empty(t, h.prefs.sets)
	require.Equal(t, 0, h.closes)

	// reopening starts fresh
	h.m.Open()
	require.Equal(t, StepAddButton, h.m.State().Step)
}

func TestHideKeepsPosition(t *testing.T) {
	h := newHarness(t)
	h.toDashboard(t)
	h.wait(time.Second)
	require.True(t, h.m.Next())
	require.Equal(t, 1, h.m.State().DashboardSubstep)

	h.m.Hide()
	require.False(t, h.m.Active())
	require.True(t, h.m.Suspended())
	require.Equal(t, 0, h.m.PendingTimers())
	require.Equal(t, 0, h.controls.HighlightCount())
	require.False(t, h.m.HidesAddButton())

	h.wait(10 * time.Second)
	require.Empty(t, h.prefs.sets)
	require.Equal(t, 0, h.closes)

	h.m.Show()
	require.True(t, h.m.Active())
	require.Equal(t, StepDashboard, h.m.State().Step)
	require.Equal(t, 1, h.m.State().DashboardSubstep)
	require.True(t, h.controls.Highlighted(ControlNavBar))

	// a full close forgets the position
	h.m.Close()
	require.False(t, h.m.Suspended())
	h.m.Show()
	require.Equal(t, StepAddButton, h.m.State().Step)
}

func TestShowRearmsAutoAdvance(t *testing.T) {
	h := newHarness(t)
	h.toDashboard(t)
	h.wait(600 * time.Millisecond) // first touch fires

	h.m.Hide()
	h.wait(10 * time.Second)
	require.Equal(t, 0, h.m.State().DashboardSubstep)

	h.m.Show()
	require.True(t, h.controls.Highlighted(ControlItemCards))
	h.wait(4 * time.Second)
	require.Equal(t, 1, h.m.State().DashboardSubstep)
}

func TestShowAfterSaveWhileHidden(t *testing.T) {
	h := newHarness(t)
	h.m.Open()
	h.m.ControlActivated(ControlAddButton, "+")
	h.openForm()
	h.wait(800 * time.Millisecond)
	require.True(t, h.m.ControlActivated(ControlSaveButton, "Save Item"))
	h.closeForm()

	h.m.Hide()
	h.m.Show()
	require.Equal(t, StepDashboard, h.m.State().Step)
	require.Equal(t, 0, h.m.State().DashboardSubstep)
}

func TestMissingTargetIsNotFatal(t *testing.T) {
	h := newHarness(t)
	h.controls.Unregister(ControlItemCards)
	h.toDashboard(t)

	require.False(t, h.controls.Highlighted(ControlItemCards))
	h.wait(time.Second)
	require.True(t, h.controls.Highlighted(ControlFilterButton))
	require.True(t, h.m.Next())
}

func TestAutoAdvanceAfterFirstTouch(t *testing.T) {
	h := newHarness(t)
	h.toDashboard(t)

	// first-touch guard fires by itself at 500ms, auto-advance 4s later
	h.wait(4400 * time.Millisecond)
	require.Equal(t, 0, h.m.State().DashboardSubstep)
	h.wait(100 * time.Millisecond)
	require.Equal(t, 1, h.m.State().DashboardSubstep)

	// no second auto-advance on substep 1
	h.wait(10 * time.Second)
	require.True(t, h.m.Active())
	require.Equal(t, 1, h.m.State().DashboardSubstep)
}

func TestTapArmsAutoAdvanceEarly(t *testing.T) {
	h := newHarness(t)
	h.toDashboard(t)

	h.m.ScreenTapped()
	h.wait(4 * time.Second)
	require.Equal(t, 1, h.m.State().DashboardSubstep)
}

func TestManualAdvanceCancelsAutoAdvance(t *testing.T) {
	h := newHarness(t)
	h.toDashboard(t)
	h.m.ScreenTapped()
	h.wait(time.Second)

	require.True(t, h.m.Next())
	require.Equal(t, 1, h.m.State().DashboardSubstep)

	// the pending auto-advance would otherwise complete the walkthrough
	h.wait(5 * time.Second)
	require.True(t, h.m.Active())
	require.Empty(t, h.prefs.sets)
}

func TestNextHiddenUntilRevealed(t *testing.T) {
	h := newHarness(t)
	h.toDashboard(t)

	require.False(t, h.m.Next())
	h.wait(time.Second)
	require.True(t, h.m.Next())
}

func TestResizeHidesNext(t *testing.T) {
	h := newHarness(t)
	h.toDashboard(t)
	h.wait(time.Second)
	require.True(t, h.m.NextVisible())

	h.m.Resized()
	require.False(t, h.m.NextVisible())
	h.wait(200 * time.Millisecond)
	h.m.Resized()
	h.wait(200 * time.Millisecond)
	require.False(t, h.m.NextVisible())
	h.wait(100 * time.Millisecond)
	require.True(t, h.m.NextVisible())
}

func TestResizeOutsideDashboardKeepsNextHidden(t *testing.T) {
	h := newHarness(t)
	h.m.Open()
	h.m.Resized()
	h.wait(time.Second)
	require.False(t, h.m.NextVisible())
	require.Equal(t, StepAddButton, h.m.State().Step)
}

func TestResetAllowsReplay(t *testing.T) {
	h := newHarness(t)
	h.m.Open()
	h.m.Skip()

	h.m.Reset()
	h.m.Open()
	require.True(t, h.m.Active())
	require.Equal(t, StepAddButton, h.m.State().Step)
}

func TestTipsFollowStep(t *testing.T) {
	h := newHarness(t)
	require.Empty(t, h.m.Tips())

	h.m.Open()
	require.Equal(t, ControlAddButton, h.m.Tips()[0].Anchor)

	h.m.ControlActivated(ControlAddButton, "+")
	require.Len(t, h.m.Tips(), 2)
	require.Equal(t, ControlItemNameField, h.m.Tips()[0].Anchor)
}
