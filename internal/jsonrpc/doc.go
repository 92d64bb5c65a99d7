// Package jsonrpc frames JSON-RPC 2.0 messages over a duplex byte stream,
// one message per newline-terminated line, and correlates arriving messages
// with callers awaiting them.
//
// The transport keeps two FIFO queues: arrived-but-unconsumed messages and
// pending receivers. An inbound line goes straight to the oldest waiting
// receiver when one exists, otherwise it is queued; Receive drains the queue
// before suspending. Closing the transport wakes every pending receiver with
// ErrClosed instead of leaving it hanging.
package jsonrpc
