package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// cacheCmd represents the cache command.
var cacheCmd = &cobra.Command{
	Use:   "cache <directory>...",
	Short: "Build or refresh the metric cache for directories",
	Long: `Parse the model files in each directory and write the metric cache,
without opening the browser. Useful after a pipeline run finishes, so the
first interactive visit is instant. Combine with --force to rebuild a
cache from scratch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCache,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
}

func runCache(cmd *cobra.Command, args []string) error {
	if loaderService == nil {
		return errors.New("group loader not configured")
	}

	for _, directory := range args {
		group, err := loaderService.LoadGroup(cmd.Context(), directory, loadOptions())
		if err != nil {
			return fmt.Errorf("caching %q: %w", directory, err)
		}
		cmd.Printf("%s: %d models, %d metrics\n",
			group.Directory, group.Len(), len(group.DefinedMetrics()))
	}
	return nil
}
