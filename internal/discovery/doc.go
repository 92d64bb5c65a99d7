// Package discovery computes which capabilities an agent can see and find:
// free-text search over record metadata, container-scoped search with
// local-over-global shadowing, location-based visibility filtering, and
// fuzzy-name suggestions for near-miss lookups.
//
// The resolver is a read-only view over a capability.Store and a
// location.Tracker; it holds no state of its own beyond its collaborators.
package discovery
