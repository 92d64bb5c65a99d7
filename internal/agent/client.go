// Package agent is the client side of capctl: it spawns a serve process and
// drives it over stdio as a real MCP client, which doubles as a wire
// compatibility check for the server.
package agent

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// Client wraps an MCP stdio client connected to a spawned capctl serve
// process.
type Client struct {
	command string
	args    []string
	logger  *Logger
	client  client.MCPClient
}

// NewClient creates an agent client that will spawn the given command with
// args and talk MCP over its stdio.
func NewClient(command string, args []string, logger *Logger) *Client {
	return &Client{
		command: command,
		args:    args,
		logger:  logger,
	}
}

// Connect spawns the server process and performs the MCP handshake.
func (c *Client) Connect(ctx context.Context) error {
	c.logger.Debug("Spawning %s %v", c.command, c.args)

	stdioClient, err := client.NewStdioMCPClient(c.command, nil, c.args...)
	if err != nil {
		return fmt.Errorf("failed to spawn server process: %w", err)
	}
	c.client = stdioClient

	req := mcp.InitializeRequest{
		Params: struct {
			ProtocolVersion string                 `json:"protocolVersion"`
			Capabilities    mcp.ClientCapabilities `json:"capabilities"`
			ClientInfo      mcp.Implementation     `json:"clientInfo"`
		}{
			ProtocolVersion: "2024-11-05",
			ClientInfo: mcp.Implementation{
				Name:    "capctl-agent",
				Version: "1.0.0",
			},
			Capabilities: mcp.ClientCapabilities{},
		},
	}

	c.logger.Request("initialize", req.Params)
	result, err := c.client.Initialize(ctx, req)
	if err != nil {
		c.client.Close()
		return fmt.Errorf("initialization failed: %w", err)
	}
	c.logger.Response("initialize", result)
	c.logger.Debug("Connected to %s %s", result.ServerInfo.Name, result.ServerInfo.Version)

	return nil
}

// Close shuts the spawned server process down.
func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// ListTools fetches the agent-visible tool catalog.
func (c *Client) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	req := mcp.ListToolsRequest{}

	c.logger.Request("tools/list", req.Params)
	result, err := c.client.ListTools(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("tools/list failed: %w", err)
	}
	c.logger.Response("tools/list", result)

	return result.Tools, nil
}

// CallTool executes a tool and returns the result.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	req := mcp.CallToolRequest{
		Params: struct {
			Name      string    `json:"name"`
			Arguments any       `json:"arguments,omitempty"`
			Meta      *mcp.Meta `json:"_meta,omitempty"`
		}{
			Name:      name,
			Arguments: args,
		},
	}

	c.logger.Request(fmt.Sprintf("tools/call (%s)", name), req.Params)
	result, err := c.client.CallTool(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("tools/call failed: %w", err)
	}
	c.logger.Response(fmt.Sprintf("tools/call (%s)", name), result)

	return result, nil
}
