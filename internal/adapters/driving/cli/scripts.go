package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// scriptsCmd represents the scripts command.
var scriptsCmd = &cobra.Command{
	Use:   "scripts <directory>",
	Short: "List the helper scripts that apply to a directory",
	Long: `List the *.sho helper scripts discovered for a directory. Scripts in
the directory itself come first, then scripts from each parent directory
up to the filesystem root, so a project-wide script can sit at the
project root while a directory keeps its own overrides nearby.`,
	Args: cobra.ExactArgs(1),
	RunE: runScripts,
}

func init() {
	rootCmd.AddCommand(scriptsCmd)
}

func runScripts(cmd *cobra.Command, args []string) error {
	if actionService == nil {
		return errors.New("action service not configured")
	}

	actions, err := actionService.DiscoverScripts(args[0])
	if err != nil {
		return fmt.Errorf("discovering scripts for %q: %w", args[0], err)
	}
	if len(actions) == 0 {
		cmd.Println("No scripts found.")
		return nil
	}
	for _, action := range actions {
		cmd.Printf("%-30s %s\n", action.Title, action.Path)
	}
	return nil
}
