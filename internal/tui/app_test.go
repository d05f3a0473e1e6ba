package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/whatsleft/internal/appstate"
	"github.com/mmcdole/whatsleft/internal/config"
	"github.com/mmcdole/whatsleft/internal/domain"
	"github.com/mmcdole/whatsleft/internal/store"
	"github.com/mmcdole/whatsleft/internal/tutorial"
)

type fakeShell struct {
	native bool
	exits  int
}

func (s *fakeShell) IsNative() bool { return s.native }
func (s *fakeShell) Exit()          { s.exits++ }

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type testApp struct {
	m     Model
	store *store.LocalStore
	shell *fakeShell
}

func newTestApp(t *testing.T, onboarded bool) *testApp {
	t.Helper()
	st, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	if onboarded {
		require.NoError(t, st.SetFlag(domain.PrefTutorialCompleted))
	}

	shell := &fakeShell{native: true}
	m := NewModel(Deps{
		Config: config.DefaultConfig(),
		Store:  st,
		Shell:  shell,
		Logger: config.NullLogger(),
		Start:  t0,
	})
	a := &testApp{m: m, store: st, shell: shell}
	a.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return a
}

func (a *testApp) send(msg tea.Msg) tea.Cmd {
	next, cmd := a.m.Update(msg)
	a.m = next.(Model)
	return cmd
}

func (a *testApp) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = a.send(keyMsg(k))
	}
	return cmd
}

func (a *testApp) tickTo(d time.Duration) {
	a.send(TickMsg{Time: t0.Add(d)})
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func sampleItems() []domain.Item {
	return []domain.Item{
		{ID: "a", Name: "Apples", Category: domain.CategoryFood, Quantity: 1, ExpiresOn: t0.AddDate(0, 0, 5), AddedAt: t0},
		{ID: "b", Name: "Bread", Category: domain.CategoryFood, Quantity: 1, ExpiresOn: t0.AddDate(0, 0, 2), AddedAt: t0},
		{ID: "c", Name: "Soap", Category: domain.CategoryHousehold, Quantity: 2, ExpiresOn: t0.AddDate(0, 1, 0), AddedAt: t0},
	}
}

func TestBackClosesModalsInPriorityOrder(t *testing.T) {
	a := newTestApp(t, true)
	st := a.m.State()

	st.Open(appstate.ModalSort)
	st.Open(appstate.ModalProfile)

	a.press("esc")
	require.False(t, st.IsOpen(appstate.ModalProfile))
	require.True(t, st.IsOpen(appstate.ModalSort))

	a.press("esc")
	require.False(t, st.IsOpen(appstate.ModalSort))
	require.False(t, st.IsOpen(appstate.ModalExitPrompt))
}

func TestBackAtHomeRaisesExitPrompt(t *testing.T) {
	a := newTestApp(t, true)
	st := a.m.State()

	a.press("esc")
	require.True(t, st.IsOpen(appstate.ModalExitPrompt))
	require.Equal(t, 1, st.Depth())

	a.press("n")
	require.False(t, st.IsOpen(appstate.ModalExitPrompt))
	require.Zero(t, a.shell.exits)

	a.press("esc")
	cmd := a.press("y")
	require.False(t, st.IsOpen(appstate.ModalExitPrompt))
	require.Equal(t, 1, a.shell.exits)
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestExitOutsideNativeShellStaysOpen(t *testing.T) {
	a := newTestApp(t, true)
	a.shell.native = false

	a.press("esc", "y")
	require.False(t, a.m.State().IsOpen(appstate.ModalExitPrompt))
	require.Zero(t, a.shell.exits)
	require.True(t, a.m.StatusIsErr)
}

func TestBackFromStatsNavigatesBack(t *testing.T) {
	a := newTestApp(t, true)
	st := a.m.State()

	a.press("3")
	require.Equal(t, appstate.RouteStats, st.Location())

	a.press("esc")
	require.Equal(t, appstate.RouteDashboard, st.Location())
	require.False(t, st.IsOpen(appstate.ModalExitPrompt))
}

func TestBackLeavesMultiSelectBeforeNavigating(t *testing.T) {
	a := newTestApp(t, true)
	st := a.m.State()
	a.send(ShoppingLoadedMsg{Items: []domain.ShoppingItem{{ID: "s1", Name: "Milk"}}})

	a.press("2", "v")
	require.True(t, st.MultiSelect(appstate.ListShopping))

	a.press("esc")
	require.False(t, st.MultiSelect(appstate.ListShopping))
	require.Equal(t, appstate.RouteShopList, st.Location())

	a.press("esc")
	require.Equal(t, appstate.RouteDashboard, st.Location())
}

func TestTutorialShownOnlyOnDashboard(t *testing.T) {
	a := newTestApp(t, false)
	tut := a.m.Tutorial()

	require.True(t, tut.Active())
	require.True(t, a.m.Controls().Highlighted(tutorial.ControlAddButton))

	a.press("3")
	require.False(t, tut.Active())
	require.Zero(t, a.m.Controls().HighlightCount())

	a.press("1")
	require.True(t, tut.Active())
	require.Equal(t, tutorial.StepAddButton, tut.State().Step)
}

func TestTutorialHiddenOnceOnboarded(t *testing.T) {
	a := newTestApp(t, true)
	require.False(t, a.m.Tutorial().Active())
}

func TestItemDetailHidesTutorial(t *testing.T) {
	a := newTestApp(t, false)
	a.send(ItemsLoadedMsg{Items: sampleItems()})
	st := a.m.State()

	a.press("enter")
	require.True(t, st.IsOpen(appstate.ModalItemDetail))
	require.False(t, a.m.Tutorial().Active())

	a.press("esc")
	require.False(t, st.IsOpen(appstate.ModalItemDetail))
	require.True(t, a.m.Tutorial().Active())
}

func TestItemDetailKeepsTutorialPosition(t *testing.T) {
	a := newTestApp(t, false)
	tut := a.m.Tutorial()
	st := a.m.State()

	a.press("a", "Milk")
	a.tickTo(900 * time.Millisecond)
	added := a.press("ctrl+s")().(ItemAddedMsg)
	a.send(ItemsLoadedMsg{Items: []domain.Item{added.Item}})
	a.tickTo(1400 * time.Millisecond)
	require.Equal(t, tutorial.StepDashboard, tut.State().Step)

	a.press("enter")
	require.True(t, st.IsOpen(appstate.ModalItemDetail))
	require.False(t, tut.Active())
	require.Zero(t, a.m.Controls().HighlightCount())

	a.press("esc")
	require.False(t, st.IsOpen(appstate.ModalItemDetail))
	require.True(t, tut.Active())
	require.Equal(t, tutorial.StepDashboard, tut.State().Step)
	require.Equal(t, 0, tut.State().DashboardSubstep)
	require.True(t, a.m.Controls().Highlighted(tutorial.ControlItemCards))
	require.False(t, a.m.Controls().Registered(tutorial.ControlAddButton))
}

func TestTabSwitchKeepsTutorialPosition(t *testing.T) {
	a := newTestApp(t, false)
	tut := a.m.Tutorial()

	a.press("a")
	require.Equal(t, tutorial.StepItemForm, tut.State().Step)
	a.press("esc")
	require.False(t, a.m.Form.IsVisible())

	a.press("3")
	require.False(t, tut.Active())
	a.press("1")
	require.True(t, tut.Active())
	require.Equal(t, tutorial.StepItemForm, tut.State().Step)
}

func TestTickAdvancesTutorialTimers(t *testing.T) {
	a := newTestApp(t, false)
	controls := a.m.Controls()

	a.press("a")
	require.True(t, a.m.Form.IsVisible())
	require.Equal(t, tutorial.StepItemForm, a.m.Tutorial().State().Step)
	require.Positive(t, a.m.Tutorial().PendingTimers())

	a.tickTo(600 * time.Millisecond)
	require.True(t, controls.Highlighted(tutorial.ControlItemNameField))
	require.False(t, controls.Highlighted(tutorial.ControlSaveButton))

	a.tickTo(1100 * time.Millisecond)
	require.True(t, controls.Highlighted(tutorial.ControlSaveButton))
}

func TestAddItemWalksThroughTutorial(t *testing.T) {
	a := newTestApp(t, false)
	tut := a.m.Tutorial()

	a.press("a", "Milk")
	a.tickTo(900 * time.Millisecond)

	cmd := a.press("ctrl+s")
	require.False(t, a.m.Form.IsVisible())
	require.NotNil(t, cmd)
	added, ok := cmd().(ItemAddedMsg)
	require.True(t, ok)
	require.Equal(t, "Milk", added.Item.Name)
	a.send(added)
	a.send(ItemsLoadedMsg{Items: []domain.Item{added.Item}})

	a.tickTo(1400 * time.Millisecond)
	require.Equal(t, tutorial.StepDashboard, tut.State().Step)
	require.True(t, tut.HidesAddButton())
	require.False(t, a.m.Controls().Registered(tutorial.ControlAddButton))
	require.True(t, a.m.Controls().Highlighted(tutorial.ControlItemCards))

	a.tickTo(2500 * time.Millisecond)
	require.True(t, tut.NextVisible())
	a.press("n")
	require.Equal(t, 1, tut.State().DashboardSubstep)

	a.tickTo(3600 * time.Millisecond)
	a.press("n")
	require.False(t, tut.Active())
	require.True(t, tut.Completed())
	require.Equal(t, "Tutorial complete", a.m.StatusMsg)

	done, err := a.store.Flag(domain.PrefTutorialCompleted)
	require.NoError(t, err)
	require.True(t, done)
}

func TestEmptyNameDoesNotAdvanceTutorial(t *testing.T) {
	a := newTestApp(t, false)

	a.press("a")
	a.tickTo(900 * time.Millisecond)
	a.press("ctrl+s")

	require.True(t, a.m.Form.IsVisible())
	require.True(t, a.m.StatusIsErr)
	a.tickTo(2 * time.Second)
	require.Equal(t, tutorial.StepItemForm, a.m.Tutorial().State().Step)
}

func TestReplayTutorialFromSettings(t *testing.T) {
	a := newTestApp(t, false)
	tut := a.m.Tutorial()

	a.press("S")
	require.True(t, tut.Completed())
	require.False(t, tut.Active())

	a.press("4", "r")
	require.Equal(t, appstate.RouteDashboard, a.m.State().Location())
	require.True(t, tut.Active())

	done, err := a.store.Flag(domain.PrefTutorialCompleted)
	require.NoError(t, err)
	require.False(t, done)
}

func TestMultiSelectDelete(t *testing.T) {
	a := newTestApp(t, true)
	st := a.m.State()
	a.send(ItemsLoadedMsg{Items: sampleItems()})

	a.press("v", "space", "j", "space")
	require.True(t, st.MultiSelect(appstate.ListDashboard))
	require.Len(t, a.m.markedItems, 2)

	cmd := a.press("x")
	require.False(t, st.MultiSelect(appstate.ListDashboard))
	require.Empty(t, a.m.markedItems)
	require.NotNil(t, cmd)

	msg, ok := cmd().(ItemsDeletedMsg)
	require.True(t, ok)
	require.Equal(t, appstate.ListDashboard, msg.List)
	require.Equal(t, 2, msg.Count)
}

func TestMouseTapCompletesClosingStep(t *testing.T) {
	a := newTestApp(t, false)
	tut := a.m.Tutorial()

	a.press("a", "Eggs")
	a.tickTo(900 * time.Millisecond)
	added := a.press("ctrl+s")().(ItemAddedMsg)
	a.send(ItemsLoadedMsg{Items: []domain.Item{added.Item}})
	a.tickTo(2500 * time.Millisecond)
	a.press("n")

	a.send(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, tut.Completed())
}
