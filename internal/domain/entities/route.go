package entities

import (
	"fmt"
	"path"
	"strings"

	"kashbill/internal/domain"
)

// PageID identifies one renderable page.
type PageID string

const (
	PageBio      PageID = "bio"
	PageLog      PageID = "log"
	PageWorks    PageID = "works"
	PageLab      PageID = "lab"
	PageNotFound PageID = "not_found"
)

// CatchAll matches every path not claimed by a more specific pattern.
const CatchAll = "*"

// Route binds a path pattern to a page. Patterns are exact paths ("/works"),
// prefixes ending in "/*" ("/works/*"), or the catch-all "*".
type Route struct {
	Pattern string
	Page    PageID
}

// RouteTable is an immutable, validated set of routes.
type RouteTable struct {
	exact    map[string]PageID
	prefixes []Route // longest prefix first
	catchAll PageID
	routes   []Route
}

// routeKey is the form two patterns collide on: exact and prefix patterns
// compare after normalisation.
func routeKey(pattern string) string {
	switch {
	case pattern == CatchAll:
		return pattern
	case strings.HasSuffix(pattern, "/*"):
		return NormalizePath(strings.TrimSuffix(pattern, "/*")) + "/*"
	case strings.HasPrefix(pattern, "/"):
		return NormalizePath(pattern)
	}
	return pattern
}

// NewRouteTable validates routes and builds the lookup structure.
func NewRouteTable(routes ...Route) (*RouteTable, error) {
	if len(routes) == 0 {
		return nil, fmt.Errorf("%w: no routes", domain.ErrInvalidRouteTable)
	}
	t := &RouteTable{exact: map[string]PageID{}}
	seen := map[string]bool{}
	for _, r := range routes {
		pattern := strings.TrimSpace(r.Pattern)
		if pattern == "" {
			return nil, fmt.Errorf("%w: empty pattern for page %q", domain.ErrInvalidRouteTable, r.Page)
		}
		if strings.TrimSpace(string(r.Page)) == "" {
			return nil, fmt.Errorf("%w: empty page for pattern %q", domain.ErrInvalidRouteTable, pattern)
		}
		key := routeKey(pattern)
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate pattern %q", domain.ErrInvalidRouteTable, pattern)
		}
		seen[key] = true

		switch {
		case pattern == CatchAll:
			t.catchAll = r.Page
		case strings.HasSuffix(pattern, "/*"):
			prefix := NormalizePath(strings.TrimSuffix(pattern, "/*"))
			if strings.Contains(prefix, "*") {
				return nil, fmt.Errorf("%w: malformed wildcard in %q", domain.ErrInvalidRouteTable, pattern)
			}
			t.prefixes = append(t.prefixes, Route{Pattern: prefix, Page: r.Page})
		case strings.Contains(pattern, "*"):
			return nil, fmt.Errorf("%w: malformed wildcard in %q", domain.ErrInvalidRouteTable, pattern)
		default:
			if !strings.HasPrefix(pattern, "/") {
				return nil, fmt.Errorf("%w: pattern %q must start with /", domain.ErrInvalidRouteTable, pattern)
			}
			t.exact[NormalizePath(pattern)] = r.Page
		}
		t.routes = append(t.routes, Route{Pattern: pattern, Page: r.Page})
	}
	// Longest prefix wins; insertion sort keeps declaration order on ties.
	for i := 1; i < len(t.prefixes); i++ {
		for j := i; j > 0 && len(t.prefixes[j].Pattern) > len(t.prefixes[j-1].Pattern); j-- {
			t.prefixes[j], t.prefixes[j-1] = t.prefixes[j-1], t.prefixes[j]
		}
	}
	return t, nil
}

// Match resolves a navigation path to a page: exact match, then longest
// prefix, then the catch-all.
func (t *RouteTable) Match(p string) (PageID, bool) {
	if t == nil {
		return "", false
	}
	p = NormalizePath(p)
	if page, ok := t.exact[p]; ok {
		return page, true
	}
	for _, r := range t.prefixes {
		if p == r.Pattern || strings.HasPrefix(p, strings.TrimSuffix(r.Pattern, "/")+"/") {
			return r.Page, true
		}
	}
	if t.catchAll != "" {
		return t.catchAll, true
	}
	return "", false
}

// Routes returns the routes in declaration order.
func (t *RouteTable) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// NormalizePath drops query and fragment, cleans the path and removes any
// trailing slash so "/works/?tab=1#top" and "/works" compare equal.
func NormalizePath(p string) string {
	p = strings.TrimPrefix(strings.TrimSpace(p), "#")
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
