package tutorial

import (
	"math"
	"time"
)

// Step is a stage of the onboarding walkthrough
type Step int

const (
	StepAddButton Step = iota
	StepItemForm
	StepDashboard
	StepCompleted
)

// String returns the step's log name
func (s Step) String() string {
	switch s {
	case StepAddButton:
		return "add-button"
	case StepItemForm:
		return "item-form"
	case StepDashboard:
		return "dashboard"
	case StepCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// State is the in-memory position of the walkthrough.
// DashboardSubstep is meaningful only on StepDashboard.
type State struct {
	Step             Step
	DashboardSubstep int
	FormOpened       bool
}

// progressUnits is add button, item form, two dashboard substeps and the finish
const progressUnits = 5

// Progress returns the walkthrough progress as a whole percentage
func (s State) Progress() int {
	done := 0
	if s.Step > StepAddButton {
		done++
	}
	if s.Step > StepItemForm {
		done++
	}
	switch s.Step {
	case StepDashboard:
		done += s.DashboardSubstep
	case StepCompleted:
		done = progressUnits
	}
	return int(math.Round(float64(done) * 100 / progressUnits))
}

// Number returns the 1-based step shown to the user (1..4)
func (s State) Number() int {
	switch s.Step {
	case StepAddButton:
		return 1
	case StepItemForm:
		return 2
	case StepDashboard:
		return 3 + s.DashboardSubstep
	default:
		return 0
	}
}

// Timings are the fixed delays of the walkthrough
type Timings struct {
	FormSettle   time.Duration // item form finishes opening before its highlights
	Stagger      time.Duration // second highlight of a step
	SaveBind     time.Duration // save observers attach
	SaveSettle   time.Duration // form closes after save before the dashboard step
	NextReveal   time.Duration // "next" affordance appears on a dashboard substep
	FirstTouch   time.Duration // first-touch guard runs on its own if no tap came
	AutoAdvance  time.Duration // substep 0 moves on by itself
	ResizeSettle time.Duration // "next" affordance reappears after a resize
	NavLead      time.Duration // nav highlights start on substep 1
	NavStagger   time.Duration // between nav tab highlights
}

// DefaultTimings returns the stock delays
func DefaultTimings() Timings {
	return Timings{
		FormSettle:   500 * time.Millisecond,
		Stagger:      500 * time.Millisecond,
		SaveBind:     800 * time.Millisecond,
		SaveSettle:   500 * time.Millisecond,
		NextReveal:   time.Second,
		FirstTouch:   500 * time.Millisecond,
		AutoAdvance:  4 * time.Second,
		ResizeSettle: 300 * time.Millisecond,
		NavLead:      300 * time.Millisecond,
		NavStagger:   100 * time.Millisecond,
	}
}
