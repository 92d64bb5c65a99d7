package cmd

import (
	"fmt"
	"os"

	"capctl/internal/builtin"
	"capctl/internal/capability"
	"capctl/internal/config"
	"capctl/internal/discovery"
	"capctl/internal/location"
	"capctl/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	toolsSearch    string
	toolsContainer string
	toolsPage      string
)

// toolsCmd inspects the built-in catalog without starting a server. Handy
// for checking what a scoped search or a location filter would return.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the built-in capability catalog",
	Long: `Lists the capabilities a default serve process would register, without
starting a server. --search runs the scoped discovery search (local matches
shadow global ones when --container is set); --page filters to capabilities
visible on that page.`,
	Args: cobra.NoArgs,
	RunE: runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)

	toolsCmd.Flags().StringVar(&toolsSearch, "search", "", "Free-text search query")
	toolsCmd.Flags().StringVar(&toolsContainer, "container", "", "Container scope for --search")
	toolsCmd.Flags().StringVar(&toolsPage, "page", "", "Only capabilities visible on this page")
}

func runTools(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logging.Init(logging.LevelWarn, os.Stderr)

	store := capability.NewStore()
	tracker := location.NewTracker()
	resolver := discovery.NewResolver(store, tracker, discovery.NewStaticResolver(cfg.Containers))

	builtin.RegisterIntrospection(store, resolver, tracker)
	builtin.RegisterDemo(store)

	var records []*capability.Record
	switch {
	case toolsSearch != "":
		records = resolver.SearchScoped(toolsSearch, toolsContainer)
	case toolsPage != "":
		records = resolver.VisibleAt(location.Location{Page: toolsPage}, true)
	default:
		records = store.All()
	}

	if len(records) == 0 {
		fmt.Println("no matching capabilities")
		return nil
	}
	for _, rec := range records {
		container := rec.ContainerID
		if container == "" {
			container = "-"
		}
		fmt.Printf("%-24s %-10s %-12s %s\n", rec.ID, container, rec.Danger, rec.Description)
	}
	return nil
}
