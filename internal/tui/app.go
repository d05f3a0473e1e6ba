package tui

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/whatsleft/internal/appstate"
	"github.com/mmcdole/whatsleft/internal/backnav"
	"github.com/mmcdole/whatsleft/internal/config"
	"github.com/mmcdole/whatsleft/internal/domain"
	"github.com/mmcdole/whatsleft/internal/scanner"
	"github.com/mmcdole/whatsleft/internal/schedule"
	"github.com/mmcdole/whatsleft/internal/service"
	"github.com/mmcdole/whatsleft/internal/tui/components"
	"github.com/mmcdole/whatsleft/internal/tutorial"
)

// Deps are the collaborators of the terminal UI
type Deps struct {
	Config *config.Config
	Store  domain.Store
	Shell  backnav.Shell // nil detects the terminal
	Logger *slog.Logger
	Start  time.Time // timer queue clock start; zero uses time.Now
}

// session holds the coordinators. Every copy of Model shares it, so timer
// callbacks and listeners always act on the live state.
type session struct {
	cfg       *config.Config
	logger    *slog.Logger
	prefs     domain.PreferenceStore
	inventory *service.InventoryService

	state    *appstate.State
	back     *backnav.Dispatcher
	handler  *backnav.Handler
	exit     *backnav.ExitPrompt
	queue    *schedule.Queue
	controls *tutorial.Registry
	tutorial *tutorial.Machine
	guidance *scanner.Guidance

	onboarded bool
	notice    string
	unwatch   func()
}

// Model is the main Bubble Tea model for the application
type Model struct {
	s *session

	Ready  bool
	Width  int
	Height int

	// Data
	Items    []domain.Item
	Shopping []domain.ShoppingItem
	Stats    service.Stats
	Query    service.ItemQuery

	// Cursors and multi-select marks
	cursor         int
	shopCursor     int
	markedItems    map[string]bool
	markedShopping map[string]bool

	// UI Components
	Form    components.ItemForm
	Scanner components.ScannerOverlay
	Filter  components.FilterModal
	Sort    components.SortModal
	Input   components.InputModal
	FAQ     components.FAQ
	Help    help.Model

	// Status line
	StatusMsg   string
	StatusIsErr bool
}

// NewModel creates a new application model and starts the back handler
func NewModel(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	start := deps.Start
	if start.IsZero() {
		start = time.Now()
	}
	shell := deps.Shell
	if shell == nil {
		shell = backnav.NewTermShell()
	}

	s := &session{
		cfg:       cfg,
		logger:    logger,
		prefs:     deps.Store,
		inventory: service.NewInventoryService(deps.Store, logger),
		state:     appstate.New(),
		back:      backnav.NewDispatcher(),
		queue:     schedule.NewQueue(start),
		controls:  tutorial.NewRegistry(),
	}
	s.handler = backnav.NewHandler(s.state, s.back, logger)
	s.exit = backnav.NewExitPrompt(s.state, shell, logger)
	s.guidance = scanner.NewGuidance(deps.Store, s.queue, cfg.Scanner.GuidanceTimeout, logger)
	s.tutorial = tutorial.New(tutorial.Deps{
		Prefs:     deps.Store,
		Scheduler: s.queue,
		Controls:  s.controls,
		Timings:   cfg.Tutorial.Timings(),
		OnClose: func() {
			s.onboarded = true
			s.notice = "Tutorial complete"
		},
		Logger: logger,
	})

	done, err := deps.Store.Flag(domain.PrefTutorialCompleted)
	if err != nil {
		logger.Warn("failed to read onboarding flag", "error", err)
	}
	s.onboarded = done

	s.unwatch = s.state.Subscribe(func(c appstate.Change) {
		if c.Kind == appstate.ChangeRoute && c.Pop {
			s.tutorial.HistoryPopped()
		}
	})
	s.handler.Start()

	m := Model{
		s:              s,
		markedItems:    make(map[string]bool),
		markedShopping: make(map[string]bool),
		Form:           components.NewItemForm(),
		Scanner:        components.NewScannerOverlay(),
		Filter:         components.NewFilterModal(),
		Sort:           components.NewSortModal(),
		Input:          components.NewInputModal(),
		FAQ:            components.NewFAQ(components.DefaultFAQ()),
		Help:           help.New(),
	}
	m.sync()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadItemsCmd(m.s.inventory),
		LoadShoppingCmd(m.s.inventory),
		TickCmd(m.s.cfg.UI.TickInterval),
	)
}

// Shutdown releases listeners and pending timers
func (m Model) Shutdown() {
	m.s.tutorial.Close()
	m.s.guidance.Close()
	m.s.handler.Stop()
	if m.s.unwatch != nil {
		m.s.unwatch()
	}
}

// State exposes the shared application state
func (m Model) State() *appstate.State { return m.s.state }

// Tutorial exposes the walkthrough
func (m Model) Tutorial() *tutorial.Machine { return m.s.tutorial }

// Controls exposes the on-screen control registry
func (m Model) Controls() *tutorial.Registry { return m.s.controls }

// Guidance exposes the scanner guidance
func (m Model) Guidance() *scanner.Guidance { return m.s.guidance }

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.Ready {
			m.s.tutorial.Resized()
		}
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		m.Ready = true

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKeyMsg(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case TickMsg:
		m.s.queue.Advance(msg.Time)
		cmds = append(cmds, TickCmd(m.s.cfg.UI.TickInterval))

	case ItemsLoadedMsg:
		m.Items = msg.Items

	case ShoppingLoadedMsg:
		m.Shopping = msg.Items

	case StatsLoadedMsg:
		m.Stats = msg.Stats

	case ItemAddedMsg:
		m.StatusMsg = "Added " + msg.Item.Name
		m.StatusIsErr = false
		cmds = append(cmds, LoadItemsCmd(m.s.inventory), ClearStatusCmd(3*time.Second))

	case ItemsDeletedMsg:
		m.StatusMsg = pluralStatus(msg.Count)
		m.StatusIsErr = false
		if msg.List == appstate.ListShopping {
			cmds = append(cmds, LoadShoppingCmd(m.s.inventory))
		} else {
			cmds = append(cmds, LoadItemsCmd(m.s.inventory))
		}
		cmds = append(cmds, ClearStatusCmd(3*time.Second))

	case ErrMsg:
		m.s.logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		cmds = append(cmds, ClearStatusCmd(5*time.Second))

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		cmds = append(cmds, ClearStatusCmd(3*time.Second))

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
	}

	if cmd := m.sync(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// sync reconciles everything derived from the shared state after an event:
// on-screen controls, the walkthrough gate, multi-select marks and notices.
func (m *Model) sync() tea.Cmd {
	st := m.s.state

	if !st.MultiSelect(appstate.ListDashboard) {
		clear(m.markedItems)
	}
	if !st.MultiSelect(appstate.ListShopping) {
		clear(m.markedShopping)
	}
	if st.IsOpen(appstate.ModalItemDetail) {
		if _, ok := m.selectedItem(); !ok {
			st.Close(appstate.ModalItemDetail)
		}
	}
	m.cursor = clampCursor(m.cursor, len(m.visibleItems()))
	m.shopCursor = clampCursor(m.shopCursor, len(m.Shopping))

	m.registerControls()
	m.gateTutorial()
	m.registerControls()

	if m.s.notice != "" {
		m.StatusMsg = m.s.notice
		m.StatusIsErr = false
		m.s.notice = ""
		return ClearStatusCmd(3 * time.Second)
	}
	return nil
}

// gateTutorial shows the walkthrough only while onboarding is pending, the
// dashboard is the current route and no item detail covers it.
func (m *Model) gateTutorial() {
	st := m.s.state
	want := m.s.cfg.Tutorial.Enabled &&
		!m.s.onboarded &&
		st.AtHome() &&
		!st.IsOpen(appstate.ModalItemDetail)

	t := m.s.tutorial
	switch {
	case want && !t.Active() && !t.Completed():
		t.Show()
	case !want && t.Active():
		t.Hide()
	}
}

// registerControls records which named controls are on screen
func (m *Model) registerControls() {
	reg := m.s.controls
	onDashboard := m.s.state.Location() == appstate.RouteDashboard

	set := func(id tutorial.ControlID, label string, shown bool) {
		if shown {
			reg.Register(id, label)
		} else {
			reg.Unregister(id)
		}
	}

	set(tutorial.ControlAddButton, "+", onDashboard && !m.s.tutorial.HidesAddButton())
	set(tutorial.ControlItemCards, "Items", onDashboard && len(m.visibleItems()) > 0)
	set(tutorial.ControlFilterButton, "Filter", onDashboard)
	set(tutorial.ControlSortButton, "Sort", onDashboard)
	set(tutorial.ControlItemNameField, components.NameFieldLabel, m.Form.IsVisible())
	set(tutorial.ControlSaveButton, components.SaveButtonLabel, m.Form.IsVisible())
	set(tutorial.ControlNavBar, "", true)
	for _, r := range appstate.Routes() {
		set(tutorial.NavTab(string(r)), r.Title(), true)
	}
}

// visibleItems returns the dashboard items after filter and sort
func (m Model) visibleItems() []domain.Item {
	return m.Query.Apply(m.Items)
}

func (m Model) selectedItem() (domain.Item, bool) {
	id := m.s.state.SelectedItem()
	for _, item := range m.Items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.Item{}, false
}

func clampCursor(cursor, n int) int {
	if n == 0 {
		return 0
	}
	return max(0, min(cursor, n-1))
}

func pluralStatus(n int) string {
	if n == 1 {
		return "Deleted 1 entry"
	}
	return "Deleted " + strconv.Itoa(n) + " entries"
}
