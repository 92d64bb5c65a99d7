package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_IsNotification(t *testing.T) {
	id := json.RawMessage("1")

	tests := []struct {
		name string
		msg  Message
		want bool
	}{
		{"method without id", Message{Method: "notifications/initialized"}, true},
		{"method with id", Message{Method: "tools/list", ID: &id}, false},
		{"response", Message{ID: &id, Result: "ok"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.msg.IsNotification())
		})
	}
}

func TestMessage_IDRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		wire     string
		wantResp string
	}{
		{"numeric id", `{"jsonrpc":"2.0","id":7,"method":"ping"}`, `{"jsonrpc":"2.0","id":7,"result":"pong"}`},
		{"string id", `{"jsonrpc":"2.0","id":"abc-123","method":"ping"}`, `{"jsonrpc":"2.0","id":"abc-123","result":"pong"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var msg Message
			require.NoError(t, json.Unmarshal([]byte(tt.wire), &msg))
			require.NotNil(t, msg.ID, "an explicit id must survive decoding")
			assert.False(t, msg.IsNotification())

			resp := NewResponse(msg.ID, "pong")
			data, err := json.Marshal(resp)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantResp, string(data))
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	id := json.RawMessage("3")
	resp := NewErrorResponse(&id, CodeToolNotFound, "unknown tool: frobnicate")

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":3,"error":{"code":-1,"message":"unknown tool: frobnicate"}}`, string(data))
}

func TestNewRequest(t *testing.T) {
	msg, err := NewRequest(5, "tools/call", map[string]string{"name": "echo.say"})
	require.NoError(t, err)

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"echo.say"}}`, string(data))

	noParams, err := NewRequest(6, "ping", nil)
	require.NoError(t, err)
	data, err = json.Marshal(noParams)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "params")
}
