// Package linkpolicy classifies hrefs found in rendered home pages.
package linkpolicy

import "strings"

// Kind says how a link should be followed.
type Kind string

const (
	// KindApp links navigate inside the app.
	KindApp Kind = "app"
	// KindExternal links open in a browser.
	KindExternal Kind = "external"
	// KindBlocked links are rendered inert.
	KindBlocked Kind = "blocked"
)

const (
	appScheme = "app://"

	ReasonEmpty      = "empty"
	ReasonNotAllowed = "scheme not allowed"
)

var appRoutes = map[string]string{
	"chat":  "/(tabs)/chat",
	"posts": "/(tabs)/posts",
}

// Action is the result of classifying an href. Path is set for app links,
// URL for external links and Reason for blocked ones.
type Action struct {
	Kind   Kind   `json:"kind"`
	Path   string `json:"path,omitempty"`
	URL    string `json:"url,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Classify decides what following href should do.
func Classify(href string) Action {
	href = strings.TrimSpace(href)
	if href == "" {
		return Action{Kind: KindBlocked, Reason: ReasonEmpty}
	}

	lower := strings.ToLower(href)
	switch {
	case strings.HasPrefix(lower, appScheme):
		return Action{Kind: KindApp, Path: appPath(href[len(appScheme):])}
	case strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "http://"):
		return Action{Kind: KindExternal, URL: href}
	default:
		return Action{Kind: KindBlocked, Reason: ReasonNotAllowed}
	}
}

func appPath(rest string) string {
	rest = strings.TrimLeft(rest, "/")
	if route, ok := appRoutes[strings.ToLower(rest)]; ok {
		return route
	}
	return "/" + rest
}
