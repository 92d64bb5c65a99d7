package jsonrpc

import "encoding/json"

// Version is the JSON-RPC protocol version stamped on every message.
const Version = "2.0"

// Standard JSON-RPC 2.0 error codes plus the tool-layer extensions.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	CodeToolNotFound        = -1
	CodeToolExecutionFailed = -2
)

// Error is a JSON-RPC error object.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Message is a generic JSON-RPC 2.0 message: request, notification or
// response. ID is kept raw to round-trip string and numeric ids untouched;
// an absent or null id marks a notification.
type Message struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  interface{}      `json:"result,omitempty"`
	Error   *Error           `json:"error,omitempty"`
}

// IsNotification reports whether the message is a request without an id,
// which must not be answered.
func (m *Message) IsNotification() bool {
	return m.Method != "" && m.ID == nil
}

// NewResponse builds a success response for the given request id.
func NewResponse(id *json.RawMessage, result interface{}) *Message {
	return &Message{
		JSONRPC: Version,
		ID:      id,
		Result:  result,
	}
}

// NewErrorResponse builds an error response for the given request id.
func NewErrorResponse(id *json.RawMessage, code int, message string) *Message {
	return &Message{
		JSONRPC: Version,
		ID:      id,
		Error:   &Error{Code: code, Message: message},
	}
}

// NewRequest builds a request with the given numeric id, method and params.
// A nil params is omitted from the wire message.
func NewRequest(id int64, method string, params interface{}) (*Message, error) {
	rawID, _ := json.Marshal(id)
	raw := json.RawMessage(rawID)
	msg := &Message{
		JSONRPC: Version,
		ID:      &raw,
		Method:  method,
	}
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		msg.Params = data
	}
	return msg, nil
}
