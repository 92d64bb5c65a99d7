package location

import (
	"sync"

	"github.com/google/uuid"

	"capctl/pkg/logging"
)

// Location describes where the embedding application currently is: the page
// being shown, the route pattern that produced it, and the UI pieces mounted
// there. All fields are optional; an empty Location is a valid "somewhere".
type Location struct {
	// Page is the concrete page path, e.g. "/blog/my-first-post".
	Page string `json:"page,omitempty" yaml:"page,omitempty"`

	// Route is the route pattern the page was matched from, e.g.
	// "/blog/{slug}". Empty when the application does not use routes.
	Route string `json:"route,omitempty" yaml:"route,omitempty"`

	// Components lists the component names mounted on the page.
	Components []string `json:"components,omitempty" yaml:"components,omitempty"`

	// Elements lists the interactive element ids present on the page.
	Elements []string `json:"elements,omitempty" yaml:"elements,omitempty"`

	// Metadata carries free-form application context.
	Metadata map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// HasComponent reports whether the named component is mounted.
func (l Location) HasComponent(name string) bool {
	for _, c := range l.Components {
		if c == name {
			return true
		}
	}
	return false
}

// HasElement reports whether the element id is present.
func (l Location) HasElement(id string) bool {
	for _, e := range l.Elements {
		if e == id {
			return true
		}
	}
	return false
}

// ChangeListener is notified after every location change. oldSet is false on
// the very first SetCurrent, when there was no previous location.
type ChangeListener func(old Location, oldSet bool, new Location)

type listenerEntry struct {
	id string
	fn ChangeListener
}

// Tracker holds the current location and fans out change notifications.
// It is safe for concurrent use.
type Tracker struct {
	mu        sync.RWMutex
	current   Location
	set       bool
	listeners []listenerEntry
}

// NewTracker creates a tracker with no location set.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Current returns the current location and whether one has been set.
func (t *Tracker) Current() (Location, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current, t.set
}

// SetCurrent replaces the current location and notifies listeners
// synchronously, in registration order. A panicking listener is recovered
// and logged so it cannot break the others.
func (t *Tracker) SetCurrent(loc Location) {
	t.mu.Lock()
	old, oldSet := t.current, t.set
	t.current = loc
	t.set = true
	listeners := make([]listenerEntry, len(t.listeners))
	copy(listeners, t.listeners)
	t.mu.Unlock()

	logging.Debug("Location", "Location changed to page %q (route %q)", loc.Page, loc.Route)
	for _, l := range listeners {
		notify(l, old, oldSet, loc)
	}
}

func notify(l listenerEntry, old Location, oldSet bool, new Location) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("Location", nil, "Change listener %s panicked: %v", l.id, r)
		}
	}()
	l.fn(old, oldSet, new)
}

// OnChange registers a change listener and returns a function that removes
// it again.
func (t *Tracker) OnChange(fn ChangeListener) func() {
	id := uuid.NewString()

	t.mu.Lock()
	t.listeners = append(t.listeners, listenerEntry{id: id, fn: fn})
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for i, l := range t.listeners {
			if l.id == id {
				t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
				return
			}
		}
	}
}

// Reset clears the current location and all listeners.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = Location{}
	t.set = false
	t.listeners = nil
}
