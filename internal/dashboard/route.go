package dashboard

import "strings"

// Routed paths.
const (
	PathHome   = "/"
	PathManage = "/manage"

	splitPrefix = "/split/"
)

// RouteKind identifies which view a path selects.
type RouteKind int

const (
	RouteHome RouteKind = iota
	RouteSplit
	RouteManage
)

func (k RouteKind) String() string {
	switch k {
	case RouteSplit:
		return "split"
	case RouteManage:
		return "manage"
	default:
		return "home"
	}
}

// Route is a parsed path.
type Route struct {
	Kind RouteKind
	Name string // split name for RouteSplit
}

// ParseRoute maps a path to a route. /split/<name> selects a split, exactly
// /manage selects management and every other path is home.
func ParseRoute(path string) Route {
	if strings.HasPrefix(path, splitPrefix) {
		return Route{Kind: RouteSplit, Name: strings.TrimPrefix(path, splitPrefix)}
	}
	if path == PathManage {
		return Route{Kind: RouteManage}
	}
	return Route{Kind: RouteHome}
}

// SplitPath returns the path routed to the split called name.
func SplitPath(name string) string {
	return splitPrefix + name
}
