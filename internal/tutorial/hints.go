package tutorial

// Tip is one callout the overlay draws next to a control
type Tip struct {
	Anchor ControlID
	Title  string
	Body   string
}

// Closing is the centered message of the last dashboard substep
type Closing struct {
	Title  string
	Body   string
	Prompt string
}

var (
	addButtonTips = []Tip{
		{ControlAddButton, "Add Your First Item", "Press a or click + to get started"},
	}
	itemFormTips = []Tip{
		{ControlItemNameField, "Name Your Item", "Type the name of your item here"},
		{ControlSaveButton, "Save Your Item", "Press enter on Save when you're done"},
	}
	dashboardTips = [][]Tip{
		{
			{ControlItemCards, "Item Cards", "View all your items here. Select a card to see details."},
			{ControlFilterButton, "Filter View", "Press f to customize your dashboard view"},
		},
		{
			{ControlNavBar, "Navigation Tabs", "Switch between different views"},
			{ControlSortButton, "Sort Items", "Arrange your items by expiry date, name or category"},
		},
	}
	finalClosing = Closing{
		Title:  "You're All Set!",
		Body:   "Explore your app and start tracking your items.",
		Prompt: "Click anywhere to finish the tutorial",
	}
)

// tips returns the callouts for a state
func tips(s State) []Tip {
	switch s.Step {
	case StepAddButton:
		return addButtonTips
	case StepItemForm:
		if !s.FormOpened {
			return nil
		}
		return itemFormTips
	case StepDashboard:
		if s.DashboardSubstep >= 0 && s.DashboardSubstep < len(dashboardTips) {
			return dashboardTips[s.DashboardSubstep]
		}
	}
	return nil
}
