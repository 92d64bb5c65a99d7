package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"capctl/internal/capability"
	"capctl/internal/discovery"
	"capctl/internal/jsonrpc"
	"capctl/internal/location"
	"capctl/internal/schema"
	"capctl/pkg/logging"
)

// Server dispatches protocol requests against a capability store, a
// discovery resolver and a location tracker.
type Server struct {
	name    string
	version string

	store    *capability.Store
	resolver *discovery.Resolver
	tracker  *location.Tracker
}

// NewServer creates a protocol server over the given collaborators.
func NewServer(name, version string, store *capability.Store, resolver *discovery.Resolver, tracker *location.Tracker) *Server {
	return &Server{
		name:     name,
		version:  version,
		store:    store,
		resolver: resolver,
		tracker:  tracker,
	}
}

// Run drives the server's main loop: receive one message, process it to
// completion, send the response, repeat. It returns nil when the transport
// closes or the context is cancelled; only unrecoverable stream errors are
// returned.
func (s *Server) Run(ctx context.Context, t *jsonrpc.Transport) error {
	logging.Info("Server", "%s %s serving", s.name, s.version)

	for {
		msg, err := t.Receive(ctx)
		if err != nil {
			if errors.Is(err, jsonrpc.ErrClosed) || errors.Is(err, context.Canceled) {
				logging.Info("Server", "Transport closed, shutting down")
				return nil
			}
			return fmt.Errorf("receive failed: %w", err)
		}

		resp := s.Handle(ctx, msg)
		if resp == nil {
			continue
		}
		if err := t.Send(resp); err != nil {
			if errors.Is(err, jsonrpc.ErrClosed) {
				return nil
			}
			return fmt.Errorf("send failed: %w", err)
		}
	}
}

// Handle processes a single message and returns the response, or nil for
// notifications and inbound responses. It never panics: handler panics are
// converted to internal errors.
func (s *Server) Handle(ctx context.Context, msg *jsonrpc.Message) (resp *jsonrpc.Message) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("Server", nil, "Panic handling %s: %v", msg.Method, r)
			if msg.ID != nil {
				resp = jsonrpc.NewErrorResponse(msg.ID, jsonrpc.CodeInternalError, fmt.Sprintf("internal error: %v", r))
			}
		}
	}()

	// A message without a method is a response to something we sent; this
	// server never sends requests, so log and move on.
	if msg.Method == "" {
		if msg.ID == nil {
			logging.Warn("Server", "Dropping message with neither method nor id")
			return nil
		}
		logging.Debug("Server", "Ignoring unexpected response for id %s", string(*msg.ID))
		return nil
	}

	if msg.IsNotification() {
		s.handleNotification(msg)
		return nil
	}

	switch msg.Method {
	case "initialize":
		return jsonrpc.NewResponse(msg.ID, InitializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities:    ServerCapabilities{Tools: ToolsCapability{ListChanged: false}},
			ServerInfo:      ServerInfo{Name: s.name, Version: s.version},
		})
	case "ping":
		return jsonrpc.NewResponse(msg.ID, struct{}{})
	case "tools/list":
		return s.handleListTools(msg)
	case "tools/call":
		return s.handleCallTool(ctx, msg)
	case "location/update":
		return s.handleLocationUpdate(msg)
	default:
		return jsonrpc.NewErrorResponse(msg.ID, jsonrpc.CodeMethodNotFound, fmt.Sprintf("method not found: %s", msg.Method))
	}
}

func (s *Server) handleNotification(msg *jsonrpc.Message) {
	switch msg.Method {
	case "notifications/initialized":
		logging.Debug("Server", "Client initialized")
	case "location/update":
		// Context updates may arrive as fire-and-forget notifications.
		var loc location.Location
		if err := json.Unmarshal(msg.Params, &loc); err != nil {
			logging.Warn("Server", "Dropping malformed location update: %v", err)
			return
		}
		s.tracker.SetCurrent(loc)
	default:
		logging.Debug("Server", "Ignoring notification %s", msg.Method)
	}
}

func (s *Server) handleListTools(msg *jsonrpc.Message) *jsonrpc.Message {
	visible := s.resolver.VisibleNow()

	tools := make([]ToolDescriptor, 0, len(visible))
	for _, rec := range visible {
		if !rec.AIEnabled {
			continue
		}
		inputSchema, err := schema.ForRecord(rec)
		if err != nil {
			logging.Warn("Server", "Skipping %s in listing, schema generation failed: %v", rec.ID, err)
			continue
		}
		tools = append(tools, ToolDescriptor{
			Name:        rec.ID,
			Description: rec.Description,
			InputSchema: inputSchema,
		})
	}

	logging.Debug("Server", "tools/list returning %d of %d visible capabilities", len(tools), len(visible))
	return jsonrpc.NewResponse(msg.ID, ListToolsResult{Tools: tools})
}

func (s *Server) handleCallTool(ctx context.Context, msg *jsonrpc.Message) *jsonrpc.Message {
	var params CallToolParams
	if len(msg.Params) == 0 {
		return jsonrpc.NewErrorResponse(msg.ID, jsonrpc.CodeInvalidRequest, "tools/call requires params")
	}
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return jsonrpc.NewErrorResponse(msg.ID, jsonrpc.CodeInvalidRequest, fmt.Sprintf("malformed tools/call params: %v", err))
	}
	if params.Name == "" {
		return jsonrpc.NewErrorResponse(msg.ID, jsonrpc.CodeInvalidRequest, "tools/call requires a tool name")
	}

	rec, ok := s.store.Get(params.Name)
	if !ok {
		return jsonrpc.NewErrorResponse(msg.ID, jsonrpc.CodeToolNotFound, s.notFoundMessage(params.Name))
	}
	if !rec.AIEnabled {
		// Not AI-callable capabilities are indistinguishable from unknown
		// ones so agents cannot probe for them.
		return jsonrpc.NewErrorResponse(msg.ID, jsonrpc.CodeToolNotFound, s.notFoundMessage(params.Name))
	}

	approved := consumeApproval(params.Arguments)
	if rec.RequiresApproval && !approved {
		logging.Info("Server", "Capability %s requires approval, returning without executing", rec.ID)
		return jsonrpc.NewResponse(msg.ID, CallToolResult{
			Content: []ContentItem{{
				Type: "text",
				Text: fmt.Sprintf("Capability %s requires approval before execution. Re-invoke with %q: true once a human has approved.", rec.ID, approvedArgument),
			}},
			RequiresApproval: true,
			DangerLevel:      string(rec.Danger),
		})
	}

	if len(rec.Params) > 0 || rec.ArgsType != nil {
		inputSchema, err := schema.ForRecord(rec)
		if err != nil {
			return jsonrpc.NewErrorResponse(msg.ID, jsonrpc.CodeInternalError, fmt.Sprintf("schema generation failed for %s: %v", rec.ID, err))
		}
		if err := schema.Validate(inputSchema, params.Arguments); err != nil {
			return jsonrpc.NewErrorResponse(msg.ID, jsonrpc.CodeInvalidParams, err.Error())
		}
	}

	args, err := mapArguments(rec, params.Arguments)
	if err != nil {
		return jsonrpc.NewErrorResponse(msg.ID, jsonrpc.CodeInvalidParams, err.Error())
	}

	result, err := invoke(ctx, rec, args)
	if err != nil {
		logging.Warn("Server", "Capability %s failed: %v", rec.ID, err)
		return jsonrpc.NewResponse(msg.ID, CallToolResult{
			Content:   []ContentItem{{Type: "text", Text: err.Error()}},
			IsError:   true,
			ErrorCode: jsonrpc.CodeToolExecutionFailed,
		})
	}

	return jsonrpc.NewResponse(msg.ID, CallToolResult{
		Content: []ContentItem{{Type: "text", Text: formatResult(result)}},
	})
}

func (s *Server) handleLocationUpdate(msg *jsonrpc.Message) *jsonrpc.Message {
	var loc location.Location
	if len(msg.Params) == 0 {
		return jsonrpc.NewErrorResponse(msg.ID, jsonrpc.CodeInvalidRequest, "location/update requires params")
	}
	if err := json.Unmarshal(msg.Params, &loc); err != nil {
		return jsonrpc.NewErrorResponse(msg.ID, jsonrpc.CodeInvalidRequest, fmt.Sprintf("malformed location: %v", err))
	}
	s.tracker.SetCurrent(loc)
	return jsonrpc.NewResponse(msg.ID, map[string]interface{}{"ok": true})
}

// invoke calls the bound handler, converting panics and missing bindings
// into errors so a misbehaving capability never takes the server loop down.
func invoke(ctx context.Context, rec *capability.Record, args []interface{}) (result interface{}, err error) {
	if !rec.Bound() {
		return nil, fmt.Errorf("capability %s has no bound handler (owner never constructed?)", rec.ID)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("capability %s panicked: %v", rec.ID, r)
		}
	}()
	return rec.Handler(ctx, args)
}

func (s *Server) notFoundMessage(name string) string {
	msg := fmt.Sprintf("unknown tool: %s", name)
	suggestions := s.resolver.Suggest(name, discovery.DefaultSuggestionThreshold, discovery.DefaultSuggestionLimit)
	if len(suggestions) > 0 {
		msg += fmt.Sprintf(". Did you mean: %s?", strings.Join(suggestions, ", "))
	}
	return msg
}

func formatResult(result interface{}) string {
	switch v := result.(type) {
	case nil:
		return "ok"
	case string:
		return v
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Sprintf("%+v", v)
		}
		return string(data)
	}
}
