package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"capctl/internal/builtin"
	"capctl/internal/capability"
	"capctl/internal/config"
	"capctl/internal/discovery"
	"capctl/internal/jsonrpc"
	"capctl/internal/location"
	"capctl/internal/server"
	"capctl/pkg/logging"

	"github.com/spf13/cobra"
)

// serveDebug enables verbose logging across the application.
var serveDebug bool

// serveDemo registers the demo providers even when the config does not
// enable them. Useful together with `capctl agent` for trying things out.
var serveDemo bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the capability registry to an agent over stdio",
	Long: `Starts the capctl protocol server on stdin/stdout. The agent on the
other end of the pipe discovers capabilities with tools/list, invokes them
with tools/call, and can navigate the location context with location/update.

The wire protocol is JSON-RPC 2.0, one message per line, MCP-compatible:
any MCP client that speaks the stdio transport can connect, including
'capctl agent'.

All logging goes to stderr so it never interleaves with wire messages.

Configuration:
  capctl loads .capctl/config.yaml from the current directory, layered over
  ~/.config/capctl/config.yaml and built-in defaults. The containers section
  maps coarse container names to the routes they cover.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// stdioStream adapts the process's stdin/stdout pair to the single duplex
// stream the transport expects. Close closes stdin so the read loop ends;
// stdout is left to the process exit.
type stdioStream struct{}

func (stdioStream) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioStream) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdioStream) Close() error                { return os.Stdin.Close() }

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if serveDebug {
		level = logging.LevelDebug
	}
	logging.Init(level, os.Stderr)

	store := capability.NewStore()
	tracker := location.NewTracker()
	containers := discovery.NewStaticResolver(cfg.Containers)
	resolver := discovery.NewResolver(store, tracker, containers)

	builtin.RegisterIntrospection(store, resolver, tracker)
	if serveDemo || cfg.Demo.Enabled {
		builtin.RegisterDemo(store)
		logging.Info("Serve", "Demo providers registered")
	}
	logging.Info("Serve", "%d capabilities registered", store.Len())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	transport := jsonrpc.NewTransport(stdioStream{})
	defer transport.Close()

	srv := server.NewServer("capctl", rootCmd.Version, store, resolver, tracker)
	return srv.Run(ctx, transport)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().BoolVar(&serveDemo, "demo", false, "Register the demo providers (echo, clock, notes)")
}
