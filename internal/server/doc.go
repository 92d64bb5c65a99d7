// Package server dispatches MCP-style JSON-RPC requests (tools/list,
// tools/call, the initialize handshake, location updates) to the capability
// store and discovery resolver.
//
// The server is a stateless dispatcher: it holds references to its
// collaborators and its identity, nothing else, so many instances can be
// constructed over the same store and tracker. The main loop processes one
// request to completion before receiving the next; a capability invocation
// that performs its own concurrent work is opaque to this layer.
package server
