// Package capability holds the record store at the heart of capctl: every
// capability a provider exposes to agents is registered here under a unique
// id, looked up here on invocation, and bound here to the owning instance
// once that instance exists.
//
// Registration is append-mostly and happens at provider construction time,
// before discovery or invocation traffic begins. The store is an explicit,
// constructible instance so independent servers and tests never share
// mutable state.
package capability
