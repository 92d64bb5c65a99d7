package jsonrpc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	"capctl/pkg/logging"
)

// ErrClosed is the sentinel returned once the transport is closed: pending
// receivers are resolved with it, and subsequent Send/Receive calls fail
// with it immediately.
var ErrClosed = errors.New("jsonrpc: transport closed")

// maxLineSize bounds a single wire message. Lines beyond this are a protocol
// violation and terminate the read loop.
const maxLineSize = 4 * 1024 * 1024

// Transport frames JSON-RPC messages over a duplex stream, one JSON object
// per newline-terminated line. A background read loop splits inbound bytes
// on newlines; unparseable lines are logged and dropped, never fatal.
type Transport struct {
	stream io.ReadWriteCloser

	writeMu sync.Mutex

	mu      sync.Mutex
	inbox   []*Message      // arrived but unconsumed, FIFO
	waiters []chan *Message // pending receivers, FIFO; closed chan = sentinel
	closed  bool

	closeOnce sync.Once
	closeErr  error
}

// NewTransport wraps the stream and starts the read loop. The caller owns
// the transport and must Close it; the underlying stream is closed exactly
// once, when the transport closes.
func NewTransport(stream io.ReadWriteCloser) *Transport {
	t := &Transport{stream: stream}
	go t.readLoop()
	return t
}

func (t *Transport) readLoop() {
	scanner := bufio.NewScanner(t.stream)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var msg Message
		if err := json.Unmarshal(line, &msg); err != nil {
			logging.Warn("Transport", "Dropping unparseable line (%d bytes): %v", len(line), err)
			continue
		}
		t.dispatch(&msg)
	}

	if err := scanner.Err(); err != nil {
		logging.Error("Transport", err, "Read loop terminated")
	}
	// EOF or stream error: nothing more will arrive, release waiters.
	t.Close()
}

// dispatch hands an inbound message to the oldest pending receiver, or
// queues it when nobody is waiting.
func (t *Transport) dispatch(msg *Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	if len(t.waiters) > 0 {
		ch := t.waiters[0]
		t.waiters = t.waiters[1:]
		ch <- msg
		return
	}
	t.inbox = append(t.inbox, msg)
}

// Receive returns the next inbound message in arrival order. It suspends
// until a message arrives, the context is cancelled, or the transport
// closes (ErrClosed).
func (t *Transport) Receive(ctx context.Context) (*Message, error) {
	t.mu.Lock()
	if len(t.inbox) > 0 {
		msg := t.inbox[0]
		t.inbox = t.inbox[1:]
		t.mu.Unlock()
		return msg, nil
	}
	if t.closed {
		t.mu.Unlock()
		return nil, ErrClosed
	}

	ch := make(chan *Message, 1)
	t.waiters = append(t.waiters, ch)
	t.mu.Unlock()

	select {
	case msg, ok := <-ch:
		if !ok || msg == nil {
			return nil, ErrClosed
		}
		return msg, nil
	case <-ctx.Done():
		t.removeWaiter(ch)
		return nil, ctx.Err()
	}
}

func (t *Transport) removeWaiter(ch chan *Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, w := range t.waiters {
		if w == ch {
			t.waiters = append(t.waiters[:i], t.waiters[i+1:]...)
			return
		}
	}
}

// Send serializes the message as a single JSON line. Concurrent senders are
// serialized so lines never interleave.
func (t *Transport) Send(msg *Message) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	t.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	_, err = t.stream.Write(data)
	return err
}

// Close marks the transport closed, resolves every pending receiver with
// the ErrClosed sentinel, and closes the underlying stream exactly once.
func (t *Transport) Close() error {
	t.closeOnce.Do(func() {
		t.mu.Lock()
		t.closed = true
		waiters := t.waiters
		t.waiters = nil
		t.mu.Unlock()

		for _, ch := range waiters {
			close(ch)
		}
		t.closeErr = t.stream.Close()
	})
	return t.closeErr
}

// Closed reports whether Close has been called.
func (t *Transport) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
