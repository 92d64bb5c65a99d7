package builtin

import (
	"context"
	"fmt"

	"capctl/internal/capability"
	"capctl/internal/discovery"
	"capctl/internal/location"
)

// Introspector exposes the discovery layer itself as capabilities, so an
// agent can search the catalog and inspect the current context through the
// same tool path it uses for everything else.
type Introspector struct {
	store    *capability.Store
	resolver *discovery.Resolver
	tracker  *location.Tracker
}

// RegisterIntrospection registers and binds the introspect.* capabilities.
func RegisterIntrospection(store *capability.Store, resolver *discovery.Resolver, tracker *location.Tracker) *Introspector {
	in := &Introspector{store: store, resolver: resolver, tracker: tracker}

	store.Register("introspect", "search", &capability.Record{
		Name:        "searchCapabilities",
		Description: "Search the capability catalog by free text, optionally scoped to a container",
		Category:    "introspection",
		Keywords:    []string{"search", "find", "discover", "tools"},
		Examples:    []string{"find capabilities for {topic}", "what can you do with {topic}"},
		Danger:      capability.DangerSafe,
		AIEnabled:   true,
		ContainerID: capability.ContainerGlobal,
		Params: []capability.Param{
			{Name: "query", Type: "string", Description: "Free-text search query", Required: true},
			{Name: "container", Type: "string", Description: "Container to scope the search to; local matches shadow global ones"},
		},
	})

	store.Register("introspect", "describe", &capability.Record{
		Name:        "describeCapability",
		Description: "Show the full record of a capability, looked up by id or component-qualified name",
		Category:    "introspection",
		Keywords:    []string{"describe", "inspect", "details"},
		Danger:      capability.DangerSafe,
		AIEnabled:   true,
		ContainerID: capability.ContainerGlobal,
		Params: []capability.Param{
			{Name: "name", Type: "string", Description: "Capability id or friendly name", Required: true},
		},
	})

	store.Register("introspect", "location", &capability.Record{
		Name:        "currentLocation",
		Description: "Report the application's current location context",
		Category:    "introspection",
		Keywords:    []string{"location", "context", "page", "route"},
		Danger:      capability.DangerSafe,
		AIEnabled:   true,
		ContainerID: capability.ContainerGlobal,
	})

	store.BindOwner("introspect", in, map[string]capability.Handler{
		"search":   in.search,
		"describe": in.describe,
		"location": in.currentLocation,
	})

	return in
}

func (in *Introspector) search(ctx context.Context, args []interface{}) (interface{}, error) {
	query, _ := args[0].(string)
	container, _ := args[1].(string)

	matches := in.resolver.SearchScoped(query, container)
	type hit struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Container   string `json:"container,omitempty"`
	}
	hits := make([]hit, 0, len(matches))
	for _, rec := range matches {
		hits = append(hits, hit{
			ID:          rec.ID,
			Name:        rec.Name,
			Description: rec.Description,
			Container:   rec.ContainerID,
		})
	}
	return hits, nil
}

func (in *Introspector) describe(ctx context.Context, args []interface{}) (interface{}, error) {
	name, _ := args[0].(string)

	rec, ok := in.store.Get(name)
	if !ok {
		suggestions := in.resolver.Suggest(name, discovery.DefaultSuggestionThreshold, discovery.DefaultSuggestionLimit)
		if len(suggestions) > 0 {
			return nil, fmt.Errorf("unknown capability %q, did you mean one of %v", name, suggestions)
		}
		return nil, fmt.Errorf("unknown capability %q", name)
	}
	return rec, nil
}

func (in *Introspector) currentLocation(ctx context.Context, args []interface{}) (interface{}, error) {
	loc, ok := in.tracker.Current()
	if !ok {
		return "no location set", nil
	}
	return loc, nil
}
