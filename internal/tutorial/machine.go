// Package tutorial drives the first-run walkthrough: highlight the add
// button, then the item form fields, then two dashboard substeps, and
// persist completion exactly once.
package tutorial

import (
	"log/slog"
	"time"

	"github.com/mmcdole/whatsleft/internal/domain"
	"github.com/mmcdole/whatsleft/internal/schedule"
)

// FlagSetter persists the completion flag
type FlagSetter interface {
	SetFlag(key domain.PreferenceKey) error
}

// Deps are the collaborators a Machine needs
type Deps struct {
	Prefs     FlagSetter
	Scheduler schedule.Scheduler
	Controls  *Registry
	Timings   Timings
	// OnClose runs once when the walkthrough completes or is skipped
	OnClose func()
	Logger  *slog.Logger
}

// Machine is the walkthrough state machine. All methods must be called from
// the UI event loop; timers fire through the same loop.
type Machine struct {
	prefs    FlagSetter
	controls *Registry
	timings  Timings
	onClose  func()
	logger   *slog.Logger

	// timers armed for the current step; dropped on every transition
	timers *schedule.Group

	state       State
	active      bool
	suspended   bool
	completed   bool
	nextVisible bool
	untouched   bool
	savePending bool

	observeAdd  bool
	observeSave bool

	autoAdvance schedule.Handle
	resize      schedule.Handle
}

// New creates an inactive walkthrough
func New(deps Deps) *Machine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	controls := deps.Controls
	if controls == nil {
		controls = NewRegistry()
	}
	if deps.Timings == (Timings{}) {
		deps.Timings = DefaultTimings()
	}
	return &Machine{
		prefs:    deps.Prefs,
		controls: controls,
		timings:  deps.Timings,
		onClose:  deps.OnClose,
		logger:   logger.With("component", "tutorial"),
		timers:   schedule.NewGroup(deps.Scheduler),
	}
}

// Open starts the walkthrough at the add button step. It does nothing
// while already open or once completed.
func (m *Machine) Open() {
	if m.active || m.completed {
		return
	}
	m.active = true
	m.suspended = false
	m.untouched = true
	m.savePending = false
	m.state = State{}
	m.logger.Info("tutorial opened")
	m.enter(StepAddButton, 0)
}

// Close tears the walkthrough down without marking it complete. A later
// Open starts over.
func (m *Machine) Close() {
	if !m.active && !m.suspended {
		return
	}
	m.teardown()
	m.suspended = false
	m.state = State{}
	m.logger.Info("tutorial closed before completion")
}

// Hide takes the walkthrough off screen while keeping its position.
// Timers, highlights and observers are dropped until Show.
func (m *Machine) Hide() {
	if !m.active {
		return
	}
	pending := m.savePending
	m.teardown()
	m.suspended = true
	m.savePending = pending
	m.logger.Debug("tutorial hidden", "step", m.state.Step, "substep", m.state.DashboardSubstep)
}

// Show puts a hidden walkthrough back on screen at the step it left,
// or opens a fresh one.
func (m *Machine) Show() {
	if !m.suspended {
		m.Open()
		return
	}
	if m.active || m.completed {
		return
	}
	m.active = true
	m.suspended = false

	step, substep := m.state.Step, m.state.DashboardSubstep
	if step == StepItemForm && m.savePending {
		// the save landed while hidden
		step, substep = StepDashboard, 0
	}
	m.savePending = false
	m.logger.Debug("tutorial shown", "step", step, "substep", substep)
	m.enter(step, substep)
	if step == StepDashboard && substep == 0 && !m.untouched {
		m.armAutoAdvance()
	}
}

// Suspended reports whether the walkthrough is hidden mid-way
func (m *Machine) Suspended() bool { return m.suspended }

// Reset allows a completed walkthrough to be opened again
func (m *Machine) Reset() {
	if m.active {
		return
	}
	m.completed = false
	m.suspended = false
	m.state = State{}
}

// ControlActivated reports a press on a registered control. Reports
// whether the walkthrough consumed it as a step trigger.
func (m *Machine) ControlActivated(id ControlID, label string) bool {
	if !m.active {
		return false
	}
	switch m.state.Step {
	case StepAddButton:
		if m.observeAdd && id == ControlAddButton {
			m.enter(StepItemForm, 0)
			return true
		}
	case StepItemForm:
		if m.observeSave && !m.savePending && IsSaveControl(id, label) {
			m.savePending = true
			m.observeSave = false
			m.timers.After(m.timings.SaveSettle, func() {
				m.enter(StepDashboard, 0)
			})
			return true
		}
	case StepDashboard:
		// the dashboard steps listen to any press, controls included
		m.ScreenTapped()
	}
	return false
}

// ScreenTapped reports a press anywhere on screen
func (m *Machine) ScreenTapped() {
	if !m.active || m.state.Step != StepDashboard {
		return
	}
	if m.state.DashboardSubstep == 1 {
		m.complete()
		return
	}
	m.firstTouch()
}

// Next advances the dashboard substeps. Reports false when the "next"
// affordance is not visible.
func (m *Machine) Next() bool {
	if !m.active || !m.nextVisible || m.state.Step != StepDashboard {
		return false
	}
	m.advance()
	return true
}

// Skip completes the walkthrough from any step
func (m *Machine) Skip() {
	if !m.active {
		return
	}
	m.logger.Info("tutorial skipped", "step", m.state.Step)
	m.complete()
}

// HistoryPopped reports a history pop. Past the first step it completes
// the walkthrough.
func (m *Machine) HistoryPopped() {
	if !m.active || m.state.Step == StepAddButton {
		return
	}
	m.complete()
}

// Resized hides the "next" affordance and brings it back once the layout
// settles.
func (m *Machine) Resized() {
	if !m.active {
		return
	}
	m.nextVisible = false
	if m.resize != nil {
		m.resize.Cancel()
	}
	m.resize = m.timers.After(m.timings.ResizeSettle, func() {
		m.resize = nil
		if m.state.Step == StepDashboard {
			m.nextVisible = true
		}
	})
}

// State returns the current position
func (m *Machine) State() State { return m.state }

// Active reports whether the walkthrough is on screen
func (m *Machine) Active() bool { return m.active }

// Completed reports whether the walkthrough finished in this session
func (m *Machine) Completed() bool { return m.completed }

// NextVisible reports whether the "next" affordance is shown
func (m *Machine) NextVisible() bool { return m.active && m.nextVisible }

// HidesAddButton reports whether the add control is hidden behind the
// dashboard steps
func (m *Machine) HidesAddButton() bool {
	return m.active && m.state.Step == StepDashboard
}

// Progress returns the percentage shown in the overlay
func (m *Machine) Progress() int { return m.state.Progress() }

// StepNumber returns the step shown to the user, 1..4
func (m *Machine) StepNumber() int { return m.state.Number() }

// Tips returns the callouts for the current step
func (m *Machine) Tips() []Tip {
	if !m.active {
		return nil
	}
	return tips(m.state)
}

// Closing returns the final message, present only on the last substep
func (m *Machine) Closing() (Closing, bool) {
	if !m.active || m.state.Step != StepDashboard || m.state.DashboardSubstep != 1 {
		return Closing{}, false
	}
	return finalClosing, true
}

// observing reports whether a press on id would currently trigger a step
func (m *Machine) observing(id ControlID) bool {
	switch {
	case !m.active:
		return false
	case m.observeAdd:
		return id == ControlAddButton
	case m.observeSave:
		return IsSaveControl(id, m.controls.Label(id))
	}
	return false
}

// PendingTimers returns the number of armed walkthrough timers
func (m *Machine) PendingTimers() int { return m.timers.Len() }

// retract drops everything the previous step put in place
func (m *Machine) retract() {
	m.timers.CancelAll()
	m.autoAdvance = nil
	m.resize = nil
	m.controls.ClearHighlights()
	m.observeAdd = false
	m.observeSave = false
	m.nextVisible = false
}

func (m *Machine) enter(step Step, substep int) {
	m.retract()
	m.state.Step = step
	m.state.DashboardSubstep = substep
	m.logger.Debug("tutorial step", "step", step, "substep", substep)

	t := m.timings
	switch step {
	case StepAddButton:
		m.highlight(ControlAddButton)
		m.observeAdd = true

	case StepItemForm:
		m.state.FormOpened = true
		m.savePending = false
		m.timers.After(t.FormSettle, func() {
			m.highlight(ControlItemNameField)
			m.timers.After(t.Stagger, func() { m.highlight(ControlSaveButton) })
		})
		m.timers.After(t.SaveBind, func() { m.observeSave = true })

	case StepDashboard:
		m.state.FormOpened = false
		if substep == 0 {
			m.highlight(ControlItemCards)
			m.timers.After(t.Stagger, func() { m.highlight(ControlFilterButton) })
			if m.untouched {
				m.timers.After(t.FirstTouch, m.firstTouch)
			}
		} else {
			m.highlight(ControlNavBar)
			m.timers.After(t.NavLead, func() { m.highlight(ControlSortButton) })
			for i, tab := range m.controls.NavTabs() {
				tab := tab
				m.timers.After(t.NavLead+t.NavStagger*time.Duration(i), func() { m.highlight(tab) })
			}
		}
		m.timers.After(t.NextReveal, func() { m.nextVisible = true })
	}
}

// firstTouch runs once per session on the first dashboard interaction and
// arms the substep 0 auto-advance.
func (m *Machine) firstTouch() {
	if !m.untouched || m.state.Step != StepDashboard {
		return
	}
	m.untouched = false
	if m.state.DashboardSubstep != 0 {
		return
	}
	m.armAutoAdvance()
}

func (m *Machine) armAutoAdvance() {
	m.autoAdvance = m.timers.After(m.timings.AutoAdvance, func() {
		m.autoAdvance = nil
		m.logger.Debug("tutorial auto-advance")
		m.advance()
	})
}

func (m *Machine) advance() {
	if m.autoAdvance != nil {
		m.autoAdvance.Cancel()
		m.autoAdvance = nil
	}
	if m.state.DashboardSubstep == 0 {
		m.enter(StepDashboard, 1)
		return
	}
	m.complete()
}

func (m *Machine) highlight(id ControlID) {
	if !m.controls.Highlight(id) {
		m.logger.Debug("tutorial highlight target missing", "control", id)
	}
}

// complete persists the flag, closes the surface and strips all residue.
// Runs at most once per Open.
func (m *Machine) complete() {
	if m.completed {
		return
	}
	m.completed = true
	m.teardown()
	m.state = State{Step: StepCompleted}

	if m.prefs != nil {
		if err := m.prefs.SetFlag(domain.PrefTutorialCompleted); err != nil {
			m.logger.Error("failed to persist tutorial completion", "error", err)
		}
	}
	m.logger.Info("tutorial completed")
	if m.onClose != nil {
		m.onClose()
	}
}

func (m *Machine) teardown() {
	m.retract()
	m.active = false
	m.savePending = false
}
