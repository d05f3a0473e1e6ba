package appstate

// Route is an in-app location
type Route string

const (
	RouteDashboard Route = "/dashboard"
	RouteStats     Route = "/stats"
	RouteShopList  Route = "/shoplist"
	RouteSettings  Route = "/settings"
	RouteFAQ       Route = "/faq"

	// RouteHome is where back navigation stops and offers to exit
	RouteHome = RouteDashboard
)

// Routes returns the named routes in bottom-navigation order
func Routes() []Route {
	return []Route{RouteDashboard, RouteShopList, RouteStats, RouteSettings, RouteFAQ}
}

// Known reports whether r is a named route. Anything else renders the
// not-found page.
func (r Route) Known() bool {
	for _, known := range Routes() {
		if r == known {
			return true
		}
	}
	return false
}

// Title returns the navigation label for r
func (r Route) Title() string {
	switch r {
	case RouteDashboard:
		return "Dashboard"
	case RouteStats:
		return "Stats"
	case RouteShopList:
		return "Shopping"
	case RouteSettings:
		return "Settings"
	case RouteFAQ:
		return "FAQ"
	default:
		return "Not Found"
	}
}
