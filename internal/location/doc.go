// Package location models where the embedding application currently is and
// which capabilities that position makes visible. The Tracker holds the
// current Location and notifies listeners on change; a Scope declares the
// pages, routes, components and elements a capability is constrained to.
package location
