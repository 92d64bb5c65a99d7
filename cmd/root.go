package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "capctl",
	Short: "Expose application capabilities to AI agents",
	Long: `capctl serves a registry of named, callable capabilities to AI agents
over an MCP-compatible stdio transport, filtered by the application's
current location context. Capabilities scoped to the current container
shadow global ones, the way local variables shadow outer scopes.`,
	// SilenceUsage prevents printing the usage message on errors we handle
	// ourselves (failed connections, unknown tools).
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "capctl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}
