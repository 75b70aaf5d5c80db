package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var pathsOutput string

// pathsCmd represents the paths command.
var pathsCmd = &cobra.Command{
	Use:   "paths <directory>...",
	Short: "Print the representative model path for each directory",
	Long: `Print the representative model's file path for each directory, one per
line. The output feeds downstream tools: resfile generation, fragment
picking, or the next design round's input list.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPaths,
}

func init() {
	pathsCmd.Flags().StringVarP(&pathsOutput, "output", "o", "", "write paths to a file instead of stdout")
	rootCmd.AddCommand(pathsCmd)
}

func runPaths(cmd *cobra.Command, args []string) error {
	if loaderService == nil {
		return errors.New("group loader not configured")
	}

	collection, err := loaderService.LoadGroups(cmd.Context(), args, loadOptions())
	if err != nil {
		return fmt.Errorf("loading model directories: %w", err)
	}

	var lines []string
	for _, group := range collection.Groups() {
		path, err := group.RepresentativePath()
		if err != nil {
			return err
		}
		lines = append(lines, filepath.Join(group.Directory, path))
	}
	output := strings.Join(lines, "\n") + "\n"

	if pathsOutput == "" {
		cmd.Print(output)
		return nil
	}
	if err := os.WriteFile(pathsOutput, []byte(output), 0644); err != nil {
		return fmt.Errorf("writing %q: %w", pathsOutput, err)
	}
	cmd.Printf("Wrote %d paths to %s.\n", len(lines), pathsOutput)
	return nil
}
