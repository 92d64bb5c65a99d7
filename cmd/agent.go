package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"capctl/internal/agent"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

var (
	agentCall    string
	agentArgs    string
	agentTimeout time.Duration
	agentVerbose bool
	agentJSONRPC bool
	agentDemo    bool
)

// agentCmd represents the agent command
var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "MCP client for a capctl serve process",
	Long: `The agent command spawns 'capctl serve' as a child process, connects to
it as an MCP client over stdio, and lists the tools the server exposes.

With --call it also invokes a tool and prints the result:

  capctl agent --demo --call echo.say --args '{"message": "hi"}'

This is the quickest way to check what an AI agent would see, and doubles
as an end-to-end exercise of the wire protocol with a real MCP client.`,
	Args: cobra.NoArgs,
	RunE: runAgent,
}

func init() {
	rootCmd.AddCommand(agentCmd)

	agentCmd.Flags().StringVar(&agentCall, "call", "", "Tool to invoke after listing (e.g. echo.say)")
	agentCmd.Flags().StringVar(&agentArgs, "args", "{}", "JSON object of arguments for --call")
	agentCmd.Flags().DurationVar(&agentTimeout, "timeout", 30*time.Second, "Timeout for the whole session")
	agentCmd.Flags().BoolVar(&agentVerbose, "verbose", false, "Enable verbose logging")
	agentCmd.Flags().BoolVar(&agentJSONRPC, "json-rpc", false, "Dump full JSON-RPC payloads")
	agentCmd.Flags().BoolVar(&agentDemo, "demo", true, "Pass --demo to the spawned serve process")
}

func runAgent(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), agentTimeout)
	defer cancel()

	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate own executable: %w", err)
	}

	serveArgs := []string{"serve"}
	if agentDemo {
		serveArgs = append(serveArgs, "--demo")
	}

	logger := agent.NewLogger(agentVerbose, agentJSONRPC)
	client := agent.NewClient(self, serveArgs, logger)

	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer client.Close()

	tools, err := client.ListTools(ctx)
	if err != nil {
		return err
	}
	logger.Info("%d tools available:", len(tools))
	for _, tool := range tools {
		logger.Info("  %-24s %s", tool.Name, tool.Description)
	}

	if agentCall == "" {
		return nil
	}

	var callArgs map[string]interface{}
	if err := json.Unmarshal([]byte(agentArgs), &callArgs); err != nil {
		return fmt.Errorf("--args must be a JSON object: %w", err)
	}

	result, err := client.CallTool(ctx, agentCall, callArgs)
	if err != nil {
		return err
	}

	if result.IsError {
		logger.Error("Tool reported an error:")
	}
	for _, content := range result.Content {
		if text, ok := content.(mcp.TextContent); ok {
			logger.Info("%s", text.Text)
			continue
		}
		data, _ := json.Marshal(content)
		logger.Info("%s", string(data))
	}
	return nil
}
