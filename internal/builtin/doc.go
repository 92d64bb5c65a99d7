// Package builtin registers the capabilities capctl itself provides: the
// introspection tools every serve process exposes, and the demo providers
// used to try the system out. They go through the same register-then-bind
// flow as application providers, so they double as living examples of the
// registration API.
package builtin
