package jsonrpc

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTransport returns a transport over one end of an in-memory duplex
// pipe, plus the peer end for the test to drive.
func newTestTransport(t *testing.T) (*Transport, net.Conn) {
	t.Helper()
	local, peer := net.Pipe()
	transport := NewTransport(local)
	t.Cleanup(func() {
		transport.Close()
		peer.Close()
	})
	return transport, peer
}

func writeLine(t *testing.T, peer net.Conn, line string) {
	t.Helper()
	_, err := peer.Write([]byte(line + "\n"))
	require.NoError(t, err)
}

func receiveTimeout(t *testing.T, transport *Transport) (*Message, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return transport.Receive(ctx)
}

func TestTransport_ReceivePreservesArrivalOrder(t *testing.T) {
	transport, peer := newTestTransport(t)

	writeLine(t, peer, `{"jsonrpc":"2.0","id":1,"method":"first"}`)
	writeLine(t, peer, `{"jsonrpc":"2.0","id":2,"method":"second"}`)

	msg, err := receiveTimeout(t, transport)
	require.NoError(t, err)
	assert.Equal(t, "first", msg.Method)

	msg, err = receiveTimeout(t, transport)
	require.NoError(t, err)
	assert.Equal(t, "second", msg.Method)
}

func TestTransport_ReceiveBlocksUntilMessageArrives(t *testing.T) {
	transport, peer := newTestTransport(t)

	done := make(chan *Message, 1)
	go func() {
		msg, err := receiveTimeout(t, transport)
		if err == nil {
			done <- msg
		}
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	writeLine(t, peer, `{"jsonrpc":"2.0","id":7,"method":"late"}`)

	msg, ok := <-done
	require.True(t, ok, "receive should have succeeded")
	assert.Equal(t, "late", msg.Method)
}

func TestTransport_MalformedLineIsDroppedStreamStaysOpen(t *testing.T) {
	transport, peer := newTestTransport(t)

	writeLine(t, peer, `{not json at all`)
	writeLine(t, peer, `{"jsonrpc":"2.0","id":1,"method":"survivor"}`)

	msg, err := receiveTimeout(t, transport)
	require.NoError(t, err)
	assert.Equal(t, "survivor", msg.Method)
	assert.False(t, transport.Closed())
}

func TestTransport_EmptyLinesAreSkipped(t *testing.T) {
	transport, peer := newTestTransport(t)

	writeLine(t, peer, "")
	writeLine(t, peer, `{"jsonrpc":"2.0","id":1,"method":"ping"}`)

	msg, err := receiveTimeout(t, transport)
	require.NoError(t, err)
	assert.Equal(t, "ping", msg.Method)
}

func TestTransport_CloseResolvesPendingReceivers(t *testing.T) {
	transport, _ := newTestTransport(t)

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := transport.Receive(context.Background())
			errs <- err
		}()
	}

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, transport.Close())

	for i := 0; i < 2; i++ {
		select {
		case err := <-errs:
			assert.ErrorIs(t, err, ErrClosed)
		case <-time.After(2 * time.Second):
			t.Fatal("pending receiver was not resolved by Close")
		}
	}
}

func TestTransport_PeerEOFClosesTransport(t *testing.T) {
	transport, peer := newTestTransport(t)

	require.NoError(t, peer.Close())

	_, err := receiveTimeout(t, transport)
	assert.ErrorIs(t, err, ErrClosed)
	assert.True(t, transport.Closed())
}

func TestTransport_SendWritesSingleLine(t *testing.T) {
	transport, peer := newTestTransport(t)

	go func() {
		msg, _ := NewRequest(42, "tools/list", nil)
		transport.Send(msg)
	}()

	line, err := bufio.NewReader(peer).ReadString('\n')
	require.NoError(t, err)

	var decoded Message
	require.NoError(t, json.Unmarshal([]byte(line), &decoded))
	assert.Equal(t, Version, decoded.JSONRPC)
	assert.Equal(t, "tools/list", decoded.Method)
	require.NotNil(t, decoded.ID)
	assert.JSONEq(t, "42", string(*decoded.ID))
}

func TestTransport_UseAfterClose(t *testing.T) {
	transport, _ := newTestTransport(t)
	require.NoError(t, transport.Close())

	err := transport.Send(&Message{JSONRPC: Version, Method: "ping"})
	assert.ErrorIs(t, err, ErrClosed)

	_, err = transport.Receive(context.Background())
	assert.ErrorIs(t, err, ErrClosed)

	// Close is idempotent.
	assert.NoError(t, transport.Close())
}

func TestTransport_ReceiveHonorsContext(t *testing.T) {
	transport, peer := newTestTransport(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := transport.Receive(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The abandoned waiter must not swallow the next message.
	writeLine(t, peer, `{"jsonrpc":"2.0","id":1,"method":"after"}`)
	msg, err := receiveTimeout(t, transport)
	require.NoError(t, err)
	assert.Equal(t, "after", msg.Method)
}
