package discovery

import "sync"

// ContainerResolver maps a coarse container name to the route it covers.
// The second return value is false when the container is unknown; callers
// treat unresolved containers as globally visible for backward compatibility.
type ContainerResolver interface {
	Resolve(containerID string) (route string, ok bool)
}

// StaticResolver is a ContainerResolver backed by a fixed name->route map,
// typically loaded from the "containers" section of the config file.
type StaticResolver struct {
	mu     sync.RWMutex
	routes map[string]string
}

// NewStaticResolver creates a resolver seeded with the given routes. The map
// may be nil.
func NewStaticResolver(routes map[string]string) *StaticResolver {
	r := &StaticResolver{routes: make(map[string]string)}
	for name, route := range routes {
		r.routes[name] = route
	}
	return r
}

// RegisterContainer adds or replaces a container route.
func (r *StaticResolver) RegisterContainer(name, route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[name] = route
}

// Resolve returns the route registered for the container name.
func (r *StaticResolver) Resolve(containerID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	route, ok := r.routes[containerID]
	return route, ok
}
