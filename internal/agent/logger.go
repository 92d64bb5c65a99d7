package agent

import (
	"encoding/json"
	"fmt"
	"os"
)

// Logger prints the agent's activity to the terminal. With jsonRPC enabled
// it also dumps every request and response payload, which is the main
// debugging aid when poking at a serve process.
type Logger struct {
	verbose bool
	jsonRPC bool
}

// NewLogger creates an agent logger.
func NewLogger(verbose, jsonRPC bool) *Logger {
	return &Logger{verbose: verbose, jsonRPC: jsonRPC}
}

// Info prints an informational line.
func (l *Logger) Info(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// Debug prints a line only in verbose mode.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.verbose {
		fmt.Printf(format+"\n", args...)
	}
}

// Error prints an error line to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Request logs an outbound JSON-RPC request payload.
func (l *Logger) Request(method string, params interface{}) {
	if l.jsonRPC {
		fmt.Printf("--> %s\n%s\n", method, prettyJSON(params))
	}
}

// Response logs an inbound JSON-RPC response payload.
func (l *Logger) Response(method string, result interface{}) {
	if l.jsonRPC {
		fmt.Printf("<-- %s\n%s\n", method, prettyJSON(result))
	}
}

func prettyJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}
