package server

// Wire shapes for the MCP-compatible tool surface.

// ToolDescriptor is one entry in a tools/list result.
type ToolDescriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ListToolsResult is the result of tools/list.
type ListToolsResult struct {
	Tools []ToolDescriptor `json:"tools"`
}

// ContentItem is one piece of tool output.
type ContentItem struct {
	Type string `json:"type"` // "text" | "image" | "resource"
	Text string `json:"text,omitempty"`
}

// CallToolResult is the result of tools/call. Execution failures ride in
// the result with IsError set rather than as protocol errors, so the agent
// sees the failure text. RequiresApproval marks the distinguished
// "not executed, ask a human first" outcome.
type CallToolResult struct {
	Content          []ContentItem `json:"content"`
	IsError          bool          `json:"isError,omitempty"`
	ErrorCode        int           `json:"errorCode,omitempty"`
	RequiresApproval bool          `json:"requiresApproval,omitempty"`
	DangerLevel      string        `json:"dangerLevel,omitempty"`
}

// CallToolParams are the params of tools/call.
type CallToolParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// ServerInfo identifies the server in the initialize handshake.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolsCapability advertises tool support in the initialize handshake.
type ToolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// ServerCapabilities is the capabilities object of the initialize result.
type ServerCapabilities struct {
	Tools ToolsCapability `json:"tools"`
}

// InitializeResult is the result of initialize.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      ServerInfo         `json:"serverInfo"`
}

// protocolVersion is the MCP protocol revision the server speaks.
const protocolVersion = "2024-11-05"

// approvedArgument is the argument key an agent sets to confirm a human
// approved a RequiresApproval capability. It is consumed before parameter
// mapping and never reaches the handler.
const approvedArgument = "_approved"
