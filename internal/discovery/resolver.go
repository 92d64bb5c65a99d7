package discovery

import (
	"regexp"
	"strings"

	"capctl/internal/capability"
	"capctl/internal/location"
	"capctl/pkg/logging"
)

// Resolver answers discovery queries over a capability store, the current
// location, and the container registry.
type Resolver struct {
	store      *capability.Store
	tracker    *location.Tracker
	containers ContainerResolver
}

// NewResolver creates a resolver. containers may be nil, in which case every
// container id is treated as unresolved (and therefore global).
func NewResolver(store *capability.Store, tracker *location.Tracker, containers ContainerResolver) *Resolver {
	return &Resolver{
		store:      store,
		tracker:    tracker,
		containers: containers,
	}
}

var placeholderRe = regexp.MustCompile(`\{[^}]*\}`)

// stripPlaceholders removes {param} tokens from an example pattern and
// collapses the whitespace they leave behind.
func stripPlaceholders(example string) string {
	stripped := placeholderRe.ReplaceAllString(example, "")
	return strings.Join(strings.Fields(stripped), " ")
}

// fieldMatch reports a case-insensitive containment match in either
// direction between the lower-cased query and a record field.
func fieldMatch(queryLower, field string) bool {
	if field == "" {
		return false
	}
	f := strings.ToLower(field)
	return strings.Contains(f, queryLower) || strings.Contains(queryLower, f)
}

func matchesQuery(rec *capability.Record, queryLower string) bool {
	if fieldMatch(queryLower, rec.Name) ||
		fieldMatch(queryLower, rec.Description) ||
		fieldMatch(queryLower, rec.Category) {
		return true
	}
	for _, ex := range rec.Examples {
		if fieldMatch(queryLower, stripPlaceholders(ex)) {
			return true
		}
	}
	for _, kw := range rec.Keywords {
		if fieldMatch(queryLower, kw) {
			return true
		}
	}
	return false
}

// Search returns capabilities whose name, description, category, examples
// (with placeholders stripped) or keywords match the query.
func (r *Resolver) Search(query string) []*capability.Record {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return nil
	}

	var matches []*capability.Record
	for _, rec := range r.store.All() {
		if matchesQuery(rec, queryLower) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// SearchScoped searches like Search, additionally matching when the query
// starts with one of the capability's example patterns (placeholders
// stripped). When currentContainer is non-empty, matches scoped to it shadow
// all others: if any local match exists only local matches are returned,
// mirroring lexical scoping.
func (r *Resolver) SearchScoped(query, currentContainer string) []*capability.Record {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return nil
	}

	var local, global []*capability.Record
	for _, rec := range r.store.All() {
		if !matchesQuery(rec, queryLower) && !matchesExamplePrefix(rec, queryLower) {
			continue
		}
		if currentContainer != "" && rec.ContainerID == currentContainer {
			local = append(local, rec)
		} else {
			global = append(global, rec)
		}
	}

	if currentContainer == "" {
		return append(local, global...)
	}
	if len(local) > 0 {
		return local
	}
	return global
}

func matchesExamplePrefix(rec *capability.Record, queryLower string) bool {
	for _, ex := range rec.Examples {
		stripped := strings.ToLower(stripPlaceholders(ex))
		if stripped != "" && strings.HasPrefix(queryLower, stripped) {
			return true
		}
	}
	return false
}

// VisibleAt returns the capabilities visible at the given location. The
// locSet flag mirrors Tracker.Current: with no location set, only globally
// scoped capabilities are visible.
func (r *Resolver) VisibleAt(loc location.Location, locSet bool) []*capability.Record {
	var visible []*capability.Record
	for _, rec := range r.store.All() {
		if r.isVisible(rec, loc, locSet) {
			visible = append(visible, rec)
		}
	}
	return visible
}

// VisibleNow returns the capabilities visible at the tracker's current
// location.
func (r *Resolver) VisibleNow() []*capability.Record {
	loc, ok := r.tracker.Current()
	return r.VisibleAt(loc, ok)
}

func (r *Resolver) isVisible(rec *capability.Record, loc location.Location, locSet bool) bool {
	// A rich scope, when declared, is authoritative.
	if rec.Scope != nil {
		return rec.Scope.Matches(loc, locSet)
	}

	if rec.ContainerID != "" {
		if rec.ContainerID == capability.ContainerGlobal {
			return true
		}

		var route string
		var ok bool
		if r.containers != nil {
			route, ok = r.containers.Resolve(rec.ContainerID)
		}
		if !ok {
			// Backward-compatible default: an unregistered container never
			// hides its capabilities.
			logging.Warn("Discovery", "Container %q for capability %s has no registered route; treating as global", rec.ContainerID, rec.ID)
			return true
		}

		if !locSet {
			return false
		}
		return routeMatches(loc.Page, route)
	}

	// Neither scope nor container: always visible.
	return true
}

// routeMatches reports whether page equals route or sits below it
// hierarchically. Routes may be registered with or without a leading slash.
func routeMatches(page, route string) bool {
	if route == "" {
		return false
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	if !strings.HasPrefix(page, "/") {
		page = "/" + page
	}
	return page == route || strings.HasPrefix(page, route+"/")
}
